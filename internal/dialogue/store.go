package dialogue

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/ivanoskov/smartbalance_bot/internal/cache"
)

// Store хранилище сессий диалога. Отсутствующая сессия читается как пустая.
type Store interface {
	Get(ctx context.Context, userID int64) (Session, error)
	Put(ctx context.Context, userID int64, session Session) error
	Delete(ctx context.Context, userID int64) error
}

const (
	defaultMaxSessions = 10000
	// сессии без срока жизни держим столько, сколько живет процесс
	noExpiry = 100 * 365 * 24 * time.Hour
)

// MemoryStore хранит сессии в памяти процесса. Самые старые вытесняются
// при превышении maxSessions, ttl > 0 задает срок жизни незавершенного диалога.
type MemoryStore struct {
	sessions *cache.LRUCache[Session]
}

func NewMemoryStore(maxSessions int, ttl time.Duration, opts ...cache.Option) *MemoryStore {
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	if ttl <= 0 {
		ttl = noExpiry
	}
	return &MemoryStore{sessions: cache.NewLRUCache[Session](maxSessions, ttl, opts...)}
}

func storeKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func (s *MemoryStore) Get(_ context.Context, userID int64) (Session, error) {
	session, _ := s.sessions.Get(storeKey(userID))
	return session, nil
}

func (s *MemoryStore) Put(_ context.Context, userID int64, session Session) error {
	if session.Idle() {
		s.sessions.Delete(storeKey(userID))
		return nil
	}
	s.sessions.Set(storeKey(userID), session)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID int64) error {
	s.sessions.Delete(storeKey(userID))
	return nil
}

// CleanExpired удаляет брошенные диалоги, у которых истек срок жизни
func (s *MemoryStore) CleanExpired() int {
	return s.sessions.CleanExpired()
}

// userLocks выдает отдельный мьютекс на каждого пользователя.
// Запись удаляется, когда ее больше никто не держит.
type userLocks struct {
	mu    sync.Mutex
	locks map[int64]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[int64]*userLock)}
}

func (l *userLocks) lock(userID int64) func() {
	l.mu.Lock()
	ul, ok := l.locks[userID]
	if !ok {
		ul = &userLock{}
		l.locks[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()
	return func() {
		ul.mu.Unlock()
		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}
