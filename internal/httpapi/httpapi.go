package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/text/message"

	"github.com/TemirB/order-pipeline/internal/application/service"
	"github.com/TemirB/order-pipeline/internal/domain"
	"github.com/TemirB/order-pipeline/internal/i18n"
	"github.com/TemirB/order-pipeline/internal/observability"
)

//go:generate mockgen -source httpapi.go -destination=httpapi_mock_test.go -package=httpapi

type OrderService interface {
	GetWithStats(ctx context.Context, id int64) (*domain.Order, service.LookupStats, error)
	ListByUserWithStats(ctx context.Context, userID int64) ([]domain.Order, service.LookupStats, error)
	Create(ctx context.Context, draft domain.Order) (*domain.Order, error)
	Update(ctx context.Context, id int64, patch domain.Patch) error
	Delete(ctx context.Context, id int64) error
}

const (
	maxBody         = 1 << 20
	shutdownTimeout = 10 * time.Second
)

type Option func(*Server)

// WithDebugMetrics exposes the in-memory sink at GET /debug/metrics.
func WithDebugMetrics(sink *observability.Inmem) Option {
	return func(s *Server) { s.debug = sink }
}

type Server struct {
	service OrderService
	router  chi.Router
	tr      *i18n.Translator
	logger  *zap.Logger
	metrics observability.Metrics
	debug   *observability.Inmem
}

func New(svc OrderService, tr *i18n.Translator, logger *zap.Logger, metrics observability.Metrics, opts ...Option) *Server {
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	s := &Server{
		service: svc,
		tr:      tr,
		logger:  logger,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, ServerTimingApp(s.metrics))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.debug != nil {
		r.Get("/debug/metrics", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, s.debug.Snapshot())
		})
	}

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", s.createOrder)
		r.Get("/user", s.listByUser)
		r.Get("/{id}", s.getOrder)
		r.Patch("/{id}", s.updateOrder)
		r.Delete("/{id}", s.deleteOrder)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeProblem(w, r, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeProblem(w, r, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})
	s.router = r
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	order, st, err := s.service.GetWithStats(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	observability.WriteLookupHeaders(w, string(st.Source), st.CacheMs, st.DBMs)
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) listByUser(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("userId")
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.badRequest(w, r, "userId must be an integer")
		return
	}

	orders, st, err := s.service.ListByUserWithStats(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	observability.WriteLookupHeaders(w, string(st.Source), st.CacheMs, st.DBMs)
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var draft domain.Order
	if !s.decode(w, r, &draft) {
		return
	}

	order, err := s.service.Create(r.Context(), draft)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/orders/"+strconv.FormatInt(order.ID, 10))
	writeJSON(w, http.StatusCreated, order)
}

// patchRequest accepts the full order representation. Server-owned fields are ignored.
type patchRequest struct {
	domain.Patch
	ID        json.RawMessage `json:"id"`
	UserID    json.RawMessage `json:"userId"`
	CreatedAt json.RawMessage `json:"createdAt"`
	UpdatedAt json.RawMessage `json:"updatedAt"`
}

func (s *Server) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var req patchRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.service.Update(r.Context(), id, req.Patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeMessage(w, r, domain.MsgOrderUpdated)
}

func (s *Server) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.service.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeMessage(w, r, domain.MsgOrderDeleted)
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.badRequest(w, r, "order id must be an integer")
		return 0, false
	}
	return id, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		p := s.printer(r)
		s.writeProblem(w, r, http.StatusUnsupportedMediaType, s.tr.Text(p, domain.Message{Key: domain.MsgUnsupportedMedia}))
		return false
	}

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		s.logger.Debug("Error while decoding JSON", zap.Error(err))
		s.badRequest(w, r, err.Error())
		return false
	}
	return true
}

func (s *Server) printer(r *http.Request) *message.Printer {
	return s.tr.Printer(r.Header.Get("Accept-Language"))
}

func (s *Server) writeMessage(w http.ResponseWriter, r *http.Request, key string) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": s.tr.Text(s.printer(r), domain.Message{Key: key}),
	})
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, reason string) {
	detail := s.tr.Text(s.printer(r), domain.Message{Key: domain.MsgBadRequest}) + ": " + reason
	s.writeProblem(w, r, http.StatusBadRequest, detail)
}

func statusOf(k domain.Kind) int {
	switch k {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnavailable:
		return http.StatusServiceUnavailable
	case domain.KindServiceError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(domain.KindOf(err))
	p := s.printer(r)

	var detail string
	var de *domain.Error
	if errors.As(err, &de) {
		detail = de.Detail
		if detail == "" {
			detail = s.tr.Join(p, de.Msgs)
		}
	}
	if detail == "" {
		detail = s.tr.Text(p, domain.Message{Key: domain.MsgInternal})
	}

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", fields...)
	} else {
		s.logger.Debug("Request rejected", fields...)
	}
	s.writeProblem(w, r, status, detail)
}

// problem is an RFC 7807 body.
type problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

func (s *Server) writeProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problem{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve handles connections on ln until ctx is done, then shuts down and
// returns only after in-flight requests have finished or the shutdown
// timeout expired.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	<-serveErr
	return err
}

func (s *Server) Handler() http.Handler { return s.router }
