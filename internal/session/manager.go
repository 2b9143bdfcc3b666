package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"github.com/pageza/healthara/backend/internal/service"
	"github.com/pageza/healthara/backend/internal/storage"
)

// RecordStoreFactory opens the record a new session loads its profile from
type RecordStoreFactory func(ctx context.Context) (storage.RecordStore, error)

// Manager keeps the live sessions in a bounded LRU cache.
// The least recently used session is dropped once capacity is reached.
type Manager struct {
	sessions *lru.Cache[string, *Session]
	records  RecordStoreFactory
	chat     service.ChatClient
	tokens   *TokenSigner
	now      func() time.Time
}

func NewManager(capacity int, records RecordStoreFactory, chat service.ChatClient, tokens *TokenSigner) (*Manager, error) {
	cache, err := lru.NewWithEvict(capacity, func(id string, s *Session) {
		log.Info().Str("session_id", id).Msg("Session closed")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}

	return &Manager{
		sessions: cache,
		records:  records,
		chat:     chat,
		tokens:   tokens,
		now:      time.Now,
	}, nil
}

// Start loads the profile into a fresh session and returns it with its token
func (m *Manager) Start(ctx context.Context) (*Session, string, error) {
	records, err := m.records(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open profile record: %w", err)
	}

	s := newSession(uuid.NewString(), service.NewProfileStore(ctx, records), m.chat, m.now())

	token, err := m.tokens.Issue(s.ID)
	if err != nil {
		return nil, "", err
	}

	m.sessions.Add(s.ID, s)
	log.Info().Str("session_id", s.ID).Msg("Session started")
	return s, token, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	s, ok := m.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Authenticate resolves a bearer token to its live session
func (m *Manager) Authenticate(token string) (*Session, error) {
	id, err := m.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	return m.Get(id)
}

// End drops the session. It reports whether the session was live.
func (m *Manager) End(id string) bool {
	return m.sessions.Remove(id)
}

func (m *Manager) Len() int {
	return m.sessions.Len()
}
