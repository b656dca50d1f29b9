package game

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iamasit07/connect4-negamax/internal/domain"
	"github.com/iamasit07/connect4-negamax/internal/service/bot"
	"github.com/iamasit07/connect4-negamax/pkg/uid"
)

const ErrGameNotFound domain.Error = "game not found"

type entry struct {
	session    *Session
	lastActive time.Time
}

// Manager keeps the live sessions in memory, keyed by game id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	searcher bot.Searcher
	logger   *zap.SugaredLogger
	now      func() time.Time
}

func NewManager(searcher bot.Searcher, logger *zap.SugaredLogger) *Manager {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Manager{
		sessions: make(map[string]*entry),
		searcher: searcher,
		logger:   logger,
		now:      time.Now,
	}
}

func (m *Manager) Create(config *bot.SearchConfig, opts Options) (string, *Session, error) {
	session, err := NewSession(m.searcher, config, opts)
	if err != nil {
		return "", nil, err
	}

	gameID := uid.GenerateGameID()

	m.mu.Lock()
	m.sessions[gameID] = &entry{session: session, lastActive: m.now()}
	m.mu.Unlock()

	m.logger.Infow("[SESSION] created", "gameId", gameID,
		"player1", opts.Player1, "player2", opts.Player2, "depth", session.Depth())
	return gameID, session, nil
}

// Get returns the session and marks it as active.
func (m *Manager) Get(gameID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	e.lastActive = m.now()
	return e.session, nil
}

func (m *Manager) Remove(gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[gameID]; !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	delete(m.sessions, gameID)
	m.logger.Infow("[SESSION] removed", "gameId", gameID)
	return nil
}

// CleanupIdle drops every session untouched for longer than maxIdle.
func (m *Manager) CleanupIdle(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, e := range m.sessions {
		if e.lastActive.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
