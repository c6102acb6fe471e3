package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/TemirB/order-pipeline/internal/domain"
)

// Spammer posts generated orders to the order API at a fixed rate.
type Spammer struct {
	client    *http.Client
	target    string
	users     []int64
	products  []int64
	logger    *zap.Logger
	isRunning atomic.Bool
	wg        sync.WaitGroup
	mu        sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
	totalSent atomic.Int64
	statuses  sync.Map // int -> *atomic.Int64
}

type SpamRequest struct {
	Rate     int    `json:"rate"`
	Duration string `json:"duration"`
}

type SpamStats struct {
	IsRunning bool             `json:"is_running"`
	TotalSent int64            `json:"total_sent"`
	Statuses  map[string]int64 `json:"statuses"`
}

func NewSpammer(target string, users, products []int64, logger *zap.Logger) *Spammer {
	ctx, cancel := context.WithCancel(context.Background())
	return &Spammer{
		client:   &http.Client{Timeout: 10 * time.Second},
		target:   strings.TrimRight(target, "/") + "/api/v1/orders",
		users:    users,
		products: products,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *Spammer) StartSpam(rate int, duration time.Duration) {
	if !s.isRunning.CompareAndSwap(false, true) {
		return
	}
	s.totalSent.Store(0)
	s.statuses.Range(func(k, _ any) bool { s.statuses.Delete(k); return true })

	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	s.logger.Info("starting spam", zap.Int("rate", rate), zap.Duration("duration", duration))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.isRunning.Store(false)

		r := rand.New(rand.NewSource(time.Now().UnixNano()))
		ticker := time.NewTicker(time.Second / time.Duration(rate))
		defer ticker.Stop()

		timer := time.NewTimer(duration)
		defer timer.Stop()

		for {
			select {
			case <-ticker.C:
				s.send(ctx, generateDraft(r, s.users, s.products))
			case <-timer.C:
				s.logger.Info("spam completed", zap.Int64("total_sent", s.totalSent.Load()))
				return
			case <-ctx.Done():
				s.logger.Info("spam stopped", zap.Int64("total_sent", s.totalSent.Load()))
				return
			}
		}
	}()
}

func (s *Spammer) send(ctx context.Context, draft domain.Order) {
	body, err := json.Marshal(draft)
	if err != nil {
		s.logger.Error("marshal draft", zap.Error(err))
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.target, bytes.NewReader(body))
	if err != nil {
		s.logger.Error("build request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("order request failed", zap.Error(err))
		s.count(0)
		return
	}
	_ = resp.Body.Close()
	s.totalSent.Add(1)
	s.count(resp.StatusCode)
}

func (s *Spammer) count(status int) {
	v, _ := s.statuses.LoadOrStore(status, new(atomic.Int64))
	v.(*atomic.Int64).Add(1)
}

func (s *Spammer) StopSpam() {
	if !s.isRunning.Load() {
		return
	}
	s.mu.Lock()
	s.cancel()
	s.mu.Unlock()
	s.wg.Wait()

	// Recreate context for next run
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.mu.Unlock()
}

func (s *Spammer) GetStats() SpamStats {
	st := SpamStats{
		IsRunning: s.isRunning.Load(),
		TotalSent: s.totalSent.Load(),
		Statuses:  map[string]int64{},
	}
	s.statuses.Range(func(k, v any) bool {
		name := strconv.Itoa(k.(int))
		if k.(int) == 0 {
			name = "transport_error"
		}
		st.Statuses[name] = v.(*atomic.Int64).Load()
		return true
	})
	return st
}

func (s *Spammer) Close() {
	s.StopSpam()
	s.client.CloseIdleConnections()
}

// generateDraft builds a valid order for one of the given users. Product ids are
// drawn from products, so ids the catalog does not know produce 404s on purpose.
func generateDraft(r *rand.Rand, users, products []int64) domain.Order {
	statuses := []domain.Status{domain.StatusCreated, domain.StatusProcessing}
	draft := domain.Order{
		Notes:        fmt.Sprintf("load test %d", r.Intn(100000)),
		Status:       statuses[r.Intn(len(statuses))],
		ContactPhone: fmt.Sprintf("+79%09d", r.Intn(1000000000)),
		UserID:       users[r.Intn(len(users))],
	}
	n := 1 + r.Intn(3)
	for i := 0; i < n; i++ {
		draft.Items = append(draft.Items, domain.Item{
			ProductID: products[r.Intn(len(products))],
			Quantity:  1 + r.Intn(5),
		})
	}
	return draft
}

func parseIDs(raw string, def []int64) []int64 {
	var out []int64
	for _, p := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err == nil && id > 0 {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	target := "http://localhost:8080"
	if env := os.Getenv("ORDER_API_URL"); env != "" {
		target = env
	}
	users := parseIDs(os.Getenv("SPAM_USER_IDS"), []int64{1, 2, 3})
	products := parseIDs(os.Getenv("SPAM_PRODUCT_IDS"), []int64{1, 2, 3, 4, 5})

	spammer := NewSpammer(target, users, products, logger)
	defer spammer.Close()

	r := chi.NewRouter()
	r.Post("/start", func(w http.ResponseWriter, r *http.Request) {
		var req SpamRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Rate <= 0 {
			req.Rate = 10
		}
		duration, err := time.ParseDuration(req.Duration)
		if err != nil {
			http.Error(w, "Invalid duration format: "+err.Error(), http.StatusBadRequest)
			return
		}

		spammer.StartSpam(req.Rate, duration)
		writeJSON(w, map[string]any{
			"status":   "started",
			"rate":     req.Rate,
			"duration": duration.String(),
		})
	})
	r.Post("/stop", func(w http.ResponseWriter, _ *http.Request) {
		spammer.StopSpam()
		writeJSON(w, spammer.GetStats())
	})
	r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, spammer.GetStats())
	})

	port := ":8082"
	if envPort := os.Getenv("SPAMMER_PORT"); envPort != "" {
		port = ":" + envPort
	}

	logger.Info("spammer server started", zap.String("addr", port), zap.String("target", target))
	srv := &http.Server{Addr: port, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("spammer server", zap.Error(err))
	}
}
