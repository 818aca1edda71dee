package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shouni/gemini-graffiti-kit/pkg/session"
)

// ControllerFactory はセッションごとの Controller を作成します。
type ControllerFactory func() (*session.Controller, error)

type sessionEntry struct {
	ctrl     *session.Controller
	lastSeen time.Time
}

// SessionStore はブラウザセッションごとの Controller をメモリ上に保持します。
// 永続化は行わず、TTL を過ぎたセッションはアクセス時に破棄されます。
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	factory  ControllerFactory
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore は SessionStore を初期化します。
func NewSessionStore(factory ControllerFactory, ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get は id に対応する Controller を返します。存在しない、または期限切れの場合は false です。
func (s *SessionStore) Get(id string) (*session.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	entry, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = now
	return entry.ctrl, true
}

// Create は新しいセッションを作成し、その id と Controller を返します。
func (s *SessionStore) Create() (string, *session.Controller, error) {
	ctrl, err := s.factory()
	if err != nil {
		return "", nil, err
	}

	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweepLocked(now)
	s.sessions[id] = &sessionEntry{ctrl: ctrl, lastSeen: now}
	return id, ctrl, nil
}

// Len は保持しているセッション数を返します。
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) sweepLocked(now time.Time) {
	for id, entry := range s.sessions {
		if now.Sub(entry.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
