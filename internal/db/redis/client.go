package redis

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/ipadhilfe/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for a Redis or Valkey store.
type Config struct {
	Addrs       []string
	Username    string
	Password    string
	DB          int
	KeyPrefix   string
	DialTimeout time.Duration
}

// Store implements db.Store via rueidis.
// The client is dialed on first use, so a store that is down at boot only fails requests.
type Store struct {
	mu     sync.Mutex
	client rueidis.Client
	dial   func() (rueidis.Client, error)
	prefix string
}

// NewStore creates a Redis store. It does not fail when the server is unreachable.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}

	opt := rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
		Dialer:       net.Dialer{Timeout: dialTimeout},
	}

	return &Store{
		prefix: cfg.KeyPrefix,
		dial: func() (rueidis.Client, error) {
			return rueidis.NewClient(opt)
		},
	}, nil
}

// conn returns the shared client, dialing it if needed.
func (s *Store) conn() (rueidis.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}
	c, err := s.dial()
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	s.client = c
	return c, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	c, err := s.conn()
	if err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	if err := c.Do(ctx, c.B().Ping().Build()).Error(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// EnsureSchema is a no-op: keys need no declaration.
func (s *Store) EnsureSchema(_ context.Context) error {
	return nil
}

// Close shuts down the client if it was dialed.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		s.client.Close()
		s.client = nil
	}
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

func (s *Store) itemKey(id string) string { return s.prefix + "faq:item:" + id }

func (s *Store) itemsKey() string { return s.prefix + "faq:items" }

func (s *Store) categoryKey(name string) string { return s.prefix + "faq:category:" + name }

func (s *Store) seedKey() string { return s.prefix + "faq:seeded" }

func (s *Store) prefsKey(userID string) string { return s.prefix + "prefs:" + userID }

// listKey picks the ordered id list that backs a filter.
func (s *Store) listKey(f db.ItemFilter) string {
	if f.Category != "" {
		return s.categoryKey(f.Category)
	}
	return s.itemsKey()
}
