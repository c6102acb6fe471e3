package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/TemirB/order-pipeline/internal/domain"
	"github.com/TemirB/order-pipeline/internal/observability"
)

//go:generate mockgen -source service.go -destination=service_mock_test.go -package=service

type Cache interface {
	GetOrder(ctx context.Context, id int64) (*domain.Order, bool, error)
	SetOrder(ctx context.Context, o *domain.Order) error
	EvictOrder(ctx context.Context, id int64) error
	GetUserOrders(ctx context.Context, userID int64) ([]domain.Order, bool, error)
	SetUserOrders(ctx context.Context, userID int64, orders []domain.Order) error
	EvictUserOrders(ctx context.Context, userID int64) error
}

type Storage interface {
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	FindByUserID(ctx context.Context, userID int64) ([]domain.Order, error)
	Save(ctx context.Context, o *domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}

type UserGateway interface {
	Get(ctx context.Context, id int64) (*domain.RemoteUser, error)
}

type ProductGateway interface {
	Get(ctx context.Context, id int64) (*domain.RemoteProduct, error)
}

type Dispatcher interface {
	Dispatch(order domain.Order) bool
}

// productLookups bounds concurrent product checks of one create.
const productLookups = 8

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service is the order pipeline: cache-aside reads, referential checks on
// create and cache eviction after every durable write.
type Service struct {
	cache      Cache
	storage    Storage
	users      UserGateway
	products   ProductGateway
	dispatcher Dispatcher
	logger     *zap.Logger
	metrics    observability.Metrics
	now        func() time.Time
}

func NewService(cache Cache, storage Storage, users UserGateway, products ProductGateway, dispatcher Dispatcher, logger *zap.Logger, metrics observability.Metrics, opts ...Option) *Service {
	s := &Service{
		cache:      cache,
		storage:    storage,
		users:      users,
		products:   products,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	o, _, err := s.GetWithStats(ctx, id)
	return o, err
}

func (s *Service) GetWithStats(ctx context.Context, id int64) (*domain.Order, LookupStats, error) {
	var st LookupStats

	tCacheStart := time.Now()
	order, ok, err := s.cache.GetOrder(ctx, id)
	st.CacheMs = sinceMs(tCacheStart)
	if err != nil {
		s.cacheFailed("get order", err, zap.Int64("order_id", id))
	}
	if ok {
		st.Source = SourceCache
		s.metrics.IncCacheHit()
		s.metrics.ObserveLookup(string(st.Source), st.CacheMs, 0)
		s.logger.Info("Order fetched", append(st.fields(), zap.Int64("order_id", id))...)
		return order, st, nil
	}
	s.metrics.IncCacheMiss()

	tDbStart := time.Now()
	order, err = s.storage.FindByID(ctx, id)
	if err != nil {
		s.readFailed("Can't find order", err, zap.Int64("order_id", id), zap.Float64("cache_ms", st.CacheMs))
		return nil, st, err
	}
	st.Source = SourceDB
	st.DBMs = sinceMs(tDbStart)

	if err := s.cache.SetOrder(ctx, order); err != nil {
		s.cacheFailed("set order", err, zap.Int64("order_id", id))
	}

	s.metrics.ObserveLookup(string(st.Source), st.CacheMs, st.DBMs)
	s.logger.Info("Order fetched", append(st.fields(), zap.Int64("order_id", id))...)
	return order, st, nil
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, _, err := s.ListByUserWithStats(ctx, userID)
	return orders, err
}

// ListByUserWithStats returns the user's orders. An empty list is a result and is cached too.
func (s *Service) ListByUserWithStats(ctx context.Context, userID int64) ([]domain.Order, LookupStats, error) {
	var st LookupStats

	tCacheStart := time.Now()
	orders, ok, err := s.cache.GetUserOrders(ctx, userID)
	st.CacheMs = sinceMs(tCacheStart)
	if err != nil {
		s.cacheFailed("get user orders", err, zap.Int64("user_id", userID))
	}
	if ok {
		st.Source = SourceCache
		s.metrics.IncCacheHit()
		s.metrics.ObserveLookup(string(st.Source), st.CacheMs, 0)
		s.logger.Info("User orders fetched", append(st.fields(), zap.Int64("user_id", userID), zap.Int("count", len(orders)))...)
		return orders, st, nil
	}
	s.metrics.IncCacheMiss()

	tDbStart := time.Now()
	orders, err = s.storage.FindByUserID(ctx, userID)
	if err != nil {
		s.readFailed("Can't list user orders", err, zap.Int64("user_id", userID))
		return nil, st, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	st.Source = SourceDB
	st.DBMs = sinceMs(tDbStart)

	if err := s.cache.SetUserOrders(ctx, userID, orders); err != nil {
		s.cacheFailed("set user orders", err, zap.Int64("user_id", userID))
	}

	s.metrics.ObserveLookup(string(st.Source), st.CacheMs, st.DBMs)
	s.logger.Info("User orders fetched", append(st.fields(), zap.Int64("user_id", userID), zap.Int("count", len(orders)))...)
	return orders, st, nil
}

// Create checks that the user and every referenced product exist, persists the
// order and evicts the user's cached list. The notification is queued last and
// never affects the result.
func (s *Service) Create(ctx context.Context, draft domain.Order) (*domain.Order, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, draft); err != nil {
		s.logger.Warn("Order rejected",
			zap.Int64("user_id", draft.UserID),
			zap.Stringer("kind", domain.KindOf(err)),
			zap.Error(err),
		)
		return nil, err
	}

	now := s.stamp()
	draft.ID = 0
	draft.CreatedAt = now
	draft.UpdatedAt = now
	items := make([]domain.Item, len(draft.Items))
	for i, it := range draft.Items {
		items[i] = domain.Item{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	draft.Items = items

	t0 := time.Now()
	saved, err := s.storage.Save(ctx, &draft)
	if err != nil {
		s.logger.Error("Error while saving order", zap.Int64("user_id", draft.UserID), zap.Error(err))
		return nil, err
	}
	dbWriteMs := sinceMs(t0)
	s.metrics.ObserveWrite("create", dbWriteMs)

	s.evict(ctx, "create", saved.ID, saved.UserID, false)

	notice := *saved
	notice.Items = append([]domain.Item(nil), saved.Items...)
	s.dispatcher.Dispatch(notice)

	s.logger.Info("Order created",
		zap.Int64("order_id", saved.ID),
		zap.Int64("user_id", saved.UserID),
		zap.Int("items", len(saved.Items)),
		zap.Float64("db_write_ms", dbWriteMs),
	)
	return saved, nil
}

func (s *Service) checkReferences(ctx context.Context, draft domain.Order) error {
	if _, err := s.users.Get(ctx, draft.UserID); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(productLookups)
	for _, pid := range draft.ProductIDs() {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := s.products.Get(gctx, pid)
			return err
		})
	}
	return g.Wait()
}

// Update replaces the mutable part of an order. Identity, owner and creation
// time are kept. No remote checks are made.
func (s *Service) Update(ctx context.Context, id int64, patch domain.Patch) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	current, err := s.storage.FindByID(ctx, id)
	if err != nil {
		s.readFailed("Can't find order to update", err, zap.Int64("order_id", id))
		return err
	}

	next := current.Apply(patch, s.after(current.UpdatedAt))

	t0 := time.Now()
	if _, err := s.storage.Save(ctx, &next); err != nil {
		s.logger.Error("Error while updating order", zap.Int64("order_id", id), zap.Error(err))
		return err
	}
	dbWriteMs := sinceMs(t0)
	s.metrics.ObserveWrite("update", dbWriteMs)

	s.evict(ctx, "update", id, current.UserID, true)

	s.logger.Info("Order updated",
		zap.Int64("order_id", id),
		zap.String("status", string(next.Status)),
		zap.Float64("db_write_ms", dbWriteMs),
	)
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	current, err := s.storage.FindByID(ctx, id)
	if err != nil {
		s.readFailed("Can't find order to delete", err, zap.Int64("order_id", id))
		return err
	}

	t0 := time.Now()
	if err := s.storage.Delete(ctx, id); err != nil {
		s.logger.Error("Error while deleting order", zap.Int64("order_id", id), zap.Error(err))
		return err
	}
	dbWriteMs := sinceMs(t0)
	s.metrics.ObserveWrite("delete", dbWriteMs)

	s.evict(ctx, "delete", id, current.UserID, true)

	s.logger.Info("Order deleted",
		zap.Int64("order_id", id),
		zap.Int64("user_id", current.UserID),
		zap.Float64("db_write_ms", dbWriteMs),
	)
	return nil
}

// evict runs after a successful write. The user list is always dropped, the
// single order entry only when it may exist.
func (s *Service) evict(ctx context.Context, op string, id, userID int64, order bool) {
	if order {
		if err := s.cache.EvictOrder(ctx, id); err != nil {
			s.metrics.IncCacheError()
			s.logger.Error("Cache eviction failed", zap.String("op", op), zap.Int64("order_id", id), zap.Error(err))
		}
	}
	if err := s.cache.EvictUserOrders(ctx, userID); err != nil {
		s.metrics.IncCacheError()
		s.logger.Error("Cache eviction failed", zap.String("op", op), zap.Int64("user_id", userID), zap.Error(err))
	}
}

func (s *Service) cacheFailed(op string, err error, fields ...zap.Field) {
	s.metrics.IncCacheError()
	s.logger.Warn("Cache unavailable, falling through", append(fields, zap.String("op", op), zap.Error(err))...)
}

func (s *Service) readFailed(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if domain.IsKind(err, domain.KindNotFound) {
		s.logger.Info(msg, fields...)
		return
	}
	s.logger.Error(msg, fields...)
}

// stamp is the server time at the precision the store keeps.
func (s *Service) stamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// after returns a stamp strictly later than prev.
func (s *Service) after(prev time.Time) time.Time {
	now := s.stamp()
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}
