package game

import (
	"fmt"
	"sync"

	"github.com/iamasit07/connect4-negamax/internal/domain"
	"github.com/iamasit07/connect4-negamax/internal/service/bot"
)

type PlayerKind string

const (
	Human PlayerKind = "human"
	AI    PlayerKind = "ai"
)

func ParsePlayerKind(s string) (PlayerKind, error) {
	switch PlayerKind(s) {
	case Human, AI:
		return PlayerKind(s), nil
	default:
		return "", fmt.Errorf("%w: unknown player kind %q", domain.ErrInvalidConfig, s)
	}
}

type Options struct {
	Player1   PlayerKind
	Player2   PlayerKind
	Rows      int
	Columns   int
	WinLength int
}

// DefaultOptions is a human (Player1) against the engine on the classic board.
func DefaultOptions() Options {
	return Options{
		Player1:   Human,
		Player2:   AI,
		Rows:      domain.StandardRows,
		Columns:   domain.StandardColumns,
		WinLength: domain.StandardWinLength,
	}
}

// MoveOutcome describes one applied move. Score and Searched are only set
// for engine moves.
type MoveOutcome struct {
	Player     domain.PlayerID `json:"player"`
	Column     int             `json:"column"`
	Row        int             `json:"row"`
	Outcome    domain.Outcome  `json:"outcome"`
	NextPlayer domain.PlayerID `json:"nextPlayer"`
	Score      int             `json:"score,omitempty"`
	Searched   *bot.Stats      `json:"searched,omitempty"`
}

// Session runs one game: it owns the board, enforces turn order and asks
// the searcher for engine moves.
type Session struct {
	mu       sync.Mutex
	opts     Options
	board    *domain.Board
	current  domain.PlayerID
	outcome  domain.Outcome
	moves    []int
	config   *bot.SearchConfig
	searcher bot.Searcher
}

// NewSession starts a game with an empty board and Player1 to move. A nil
// config means the default difficulty.
func NewSession(searcher bot.Searcher, config *bot.SearchConfig, opts Options) (*Session, error) {
	if searcher == nil {
		return nil, fmt.Errorf("%w: a searcher is required", domain.ErrInvalidConfig)
	}
	if _, err := ParsePlayerKind(string(opts.Player1)); err != nil {
		return nil, err
	}
	if _, err := ParsePlayerKind(string(opts.Player2)); err != nil {
		return nil, err
	}
	board, err := domain.NewBoard(opts.Rows, opts.Columns, opts.WinLength)
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = bot.DefaultSearchConfig()
	}

	return &Session{
		opts:     opts,
		board:    board,
		current:  domain.Player1,
		outcome:  domain.InProgress,
		config:   config,
		searcher: searcher,
	}, nil
}

func (s *Session) kindOf(p domain.PlayerID) PlayerKind {
	if p == domain.Player1 {
		return s.opts.Player1
	}
	return s.opts.Player2
}

// SubmitMove plays column for the human whose turn it is.
func (s *Session) SubmitMove(column int) (MoveOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.outcome.IsOver() {
		return MoveOutcome{}, domain.ErrGameOver
	}
	if s.kindOf(s.current) != Human {
		return MoveOutcome{}, fmt.Errorf("%w: %s is played by the engine", domain.ErrNotYourTurn, s.current)
	}
	if !s.board.IsValidMove(column) {
		// Apply produces the precise error and leaves the board alone
		_, err := s.board.Apply(column, s.current)
		return MoveOutcome{}, err
	}

	return s.applyLocked(column)
}

// RequestAIMove lets the engine play for the side to move.
func (s *Session) RequestAIMove() (MoveOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.outcome.IsOver() {
		return MoveOutcome{}, domain.ErrGameOver
	}
	if s.kindOf(s.current) != AI {
		return MoveOutcome{}, fmt.Errorf("%w: %s is played by a human", domain.ErrNotYourTurn, s.current)
	}

	depth := s.config.Depth()
	result, err := s.searcher.Search(s.board.Clone(), s.current, depth)
	if err != nil {
		return MoveOutcome{}, fmt.Errorf("engine search at depth %d: %w", depth, err)
	}
	if result.Move == bot.NoMove {
		return MoveOutcome{}, domain.ErrNoLegalMove
	}

	out, err := s.applyLocked(result.Move)
	if err != nil {
		return MoveOutcome{}, fmt.Errorf("engine chose column %d: %w", result.Move, err)
	}
	stats := result.Stats
	out.Score = result.Score
	out.Searched = &stats
	return out, nil
}

func (s *Session) applyLocked(column int) (MoveOutcome, error) {
	player := s.current
	row, err := s.board.Apply(column, player)
	if err != nil {
		return MoveOutcome{}, err
	}
	s.moves = append(s.moves, column)

	// only the mover can have completed a line
	switch {
	case domain.HasWon(s.board, player):
		if player == domain.Player1 {
			s.outcome = domain.Player1Wins
		} else {
			s.outcome = domain.Player2Wins
		}
	case s.board.IsFull():
		s.outcome = domain.Draw
	default:
		s.current = player.Opponent()
	}

	next := s.current
	if s.outcome.IsOver() {
		next = domain.Empty
	}
	return MoveOutcome{
		Player:     player,
		Column:     column,
		Row:        row,
		Outcome:    s.outcome,
		NextPlayer: next,
	}, nil
}

func (s *Session) Outcome() domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Reset empties the board and gives the move back to Player1. Player kinds
// and search depth are kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, _ := domain.NewBoard(s.opts.Rows, s.opts.Columns, s.opts.WinLength)
	s.board = board
	s.current = domain.Player1
	s.outcome = domain.InProgress
	s.moves = nil
}

func (s *Session) CurrentPlayer() domain.PlayerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// PlayerKind reports who controls player in this session.
func (s *Session) PlayerKind(player domain.PlayerID) PlayerKind {
	return s.kindOf(player)
}

// AwaitingAI is true while the game runs and the engine is to move.
func (s *Session) AwaitingAI() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.outcome.IsOver() && s.kindOf(s.current) == AI
}

func (s *Session) Cell(row, col int) domain.PlayerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Cell(row, col)
}

// Board returns a copy; changing it has no effect on the game.
func (s *Session) Board() *domain.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

func (s *Session) MoveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.moves)
}

func (s *Session) Moves() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.moves))
	copy(out, s.moves)
	return out
}

func (s *Session) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.Depth()
}

func (s *Session) SetDepth(depth int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.SetDepth(depth)
}

func (s *Session) SetDifficulty(d bot.Difficulty) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.SetDifficulty(d)
}

func (s *Session) Difficulty() (bot.Difficulty, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.Difficulty()
}

// Snapshot is a consistent read of the whole session.
type Snapshot struct {
	Board         [][]int         `json:"board"`
	Rows          int             `json:"rows"`
	Columns       int             `json:"columns"`
	WinLength     int             `json:"winLength"`
	CurrentPlayer domain.PlayerID `json:"currentPlayer"`
	Player1       PlayerKind      `json:"player1"`
	Player2       PlayerKind      `json:"player2"`
	Outcome       domain.Outcome  `json:"outcome"`
	Winner        domain.PlayerID `json:"winner,omitempty"`
	Depth         int             `json:"depth"`
	Difficulty    bot.Difficulty  `json:"difficulty,omitempty"`
	BotName       string          `json:"botName,omitempty"`
	Moves         []int           `json:"moves"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	difficulty, named := s.config.Difficulty()
	botName := ""
	if named {
		botName = difficulty.BotName()
	}
	moves := make([]int, len(s.moves))
	copy(moves, s.moves)

	return Snapshot{
		Board:         s.board.Rows(),
		Rows:          s.board.Height(),
		Columns:       s.board.Width(),
		WinLength:     s.board.WinLength(),
		CurrentPlayer: s.current,
		Player1:       s.opts.Player1,
		Player2:       s.opts.Player2,
		Outcome:       s.outcome,
		Winner:        s.outcome.Winner(),
		Depth:         s.config.Depth(),
		Difficulty:    difficulty,
		BotName:       botName,
		Moves:         moves,
	}
}
