package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ventadesk/ventadesk/internal/catalog"
	"github.com/ventadesk/ventadesk/internal/platform/cache"
	"github.com/ventadesk/ventadesk/internal/shared"
)

// Session is one UI session's open cart. The ambient component state of the
// sales floor screen becomes an explicit object the caller threads through
// every operation; the engine keeps no globals.
type Session struct {
	ID        string    `json:"id"`
	Cart      Cart      `json:"cart"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store keeps session carts between requests. Sessions are owned by exactly
// one caller and mutated sequentially, so no locking is layered on top.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

type redisStore struct {
	cache *cache.JSONCache
}

// NewRedisStore builds a Store on the shared Redis cache. The cache TTL acts
// as the session lifetime: an untouched cart eventually evaporates.
func NewRedisStore(c *cache.JSONCache) Store {
	return &redisStore{cache: c}
}

func (s *redisStore) key(id string) string {
	return "cart:" + id
}

func (s *redisStore) Get(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := s.cache.Get(ctx, s.key(id), &sess)
	if errors.Is(err, cache.ErrMiss) {
		return nil, fmt.Errorf("%w: cart %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *redisStore) Put(ctx context.Context, sess *Session) error {
	return s.cache.Set(ctx, s.key(sess.ID), sess)
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	return s.cache.Invalidate(ctx, s.key(id))
}

type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

// NewMemoryStore builds a process-local Store for running without Redis.
// Sessions then live only as long as the process.
func NewMemoryStore() Store {
	return &memoryStore{sessions: make(map[string]Session)}
}

func (s *memoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: cart %s", shared.ErrNotFound, id)
	}
	return &sess, nil
}

func (s *memoryStore) Put(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Service exposes cart composition to the HTTP layer: create a session cart,
// mutate its lines against the current catalog snapshot, read priced totals.
type Service struct {
	logger  *slog.Logger
	store   Store
	catalog *catalog.Service
	taxRate float64
	now     func() time.Time
}

// NewService constructs the cart service.
func NewService(logger *slog.Logger, store Store, cat *catalog.Service, taxRate float64) *Service {
	return &Service{
		logger:  logger,
		store:   store,
		catalog: cat,
		taxRate: taxRate,
		now:     time.Now,
	}
}

// CreateSession opens an empty cart for one UI session.
func (s *Service) CreateSession(ctx context.Context) (*Session, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		UpdatedAt: s.now(),
	}
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("store cart: %w", err)
	}
	s.logger.Info("cart session opened", slog.String("cart_id", sess.ID))
	return sess, nil
}

// GetSession returns the session cart with its current totals.
func (s *Service) GetSession(ctx context.Context, id string) (*Session, Totals, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, Totals{}, err
	}
	return sess, ComputeTotals(sess.Cart, s.taxRate), nil
}

// AddItem adds a product to the session cart, snapshotting its unit price
// from the catalog at this moment. The cart is stored only after the price
// lookup succeeded, so a failed lookup adds nothing.
func (s *Service) AddItem(ctx context.Context, id string, productID int64) (*Session, Totals, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, Totals{}, err
	}

	snapshot, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, Totals{}, fmt.Errorf("load catalog snapshot: %w", err)
	}

	next, err := sess.Cart.AddItem(snapshot, productID)
	if err != nil {
		return nil, Totals{}, err
	}
	return s.save(ctx, sess, next)
}

// RemoveItem drops a line from the session cart.
func (s *Service) RemoveItem(ctx context.Context, id, tempID string) (*Session, Totals, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, Totals{}, err
	}
	return s.save(ctx, sess, sess.Cart.RemoveItem(tempID))
}

// UpdateQuantity replaces a line's quantity.
func (s *Service) UpdateQuantity(ctx context.Context, id, tempID string, quantity int) (*Session, Totals, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, Totals{}, err
	}
	next, err := sess.Cart.UpdateQuantity(tempID, quantity)
	if err != nil {
		return nil, Totals{}, err
	}
	return s.save(ctx, sess, next)
}

// DiscardSession drops the cart once the composition is done or abandoned.
func (s *Service) DiscardSession(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) save(ctx context.Context, sess *Session, next Cart) (*Session, Totals, error) {
	updated := &Session{
		ID:        sess.ID,
		Cart:      next,
		UpdatedAt: s.now(),
	}
	if err := s.store.Put(ctx, updated); err != nil {
		return nil, Totals{}, fmt.Errorf("store cart: %w", err)
	}
	return updated, ComputeTotals(next, s.taxRate), nil
}
