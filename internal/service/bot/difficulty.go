package bot

import (
	"fmt"
	"strings"

	"github.com/iamasit07/connect4-negamax/internal/domain"
)

// Difficulty only selects a search depth; evaluation and rules never change with it.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

const DefaultDifficulty = Medium

// MaxRequestDepth bounds the depth a client may ask for over a transport.
const MaxRequestDepth = 10

var difficultyDepths = map[Difficulty]int{
	Easy:   3,
	Medium: 5,
	Hard:   7,
}

var botNames = map[Difficulty]string{
	Easy:   "Alice",
	Medium: "Bob",
	Hard:   "Charles",
}

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := difficultyDepths[d]; !ok {
		return "", fmt.Errorf("%w: unknown difficulty %q", domain.ErrInvalidConfig, s)
	}
	return d, nil
}

func (d Difficulty) Depth() int {
	return difficultyDepths[d]
}

// BotName is the display name of the engine at this level.
func (d Difficulty) BotName() string {
	if name, ok := botNames[d]; ok {
		return name
	}
	return "BOT"
}

// CheckRequestDepth rejects client depths above MaxRequestDepth. Zero means
// "not given" and passes.
func CheckRequestDepth(depth int) error {
	if depth > MaxRequestDepth {
		return fmt.Errorf("%w: depth %d exceeds %d", domain.ErrInvalidConfig, depth, MaxRequestDepth)
	}
	return nil
}

// DifficultyForDepth maps a depth back to its named level, if it has one.
func DifficultyForDepth(depth int) (Difficulty, bool) {
	for d, n := range difficultyDepths {
		if n == depth {
			return d, true
		}
	}
	return "", false
}

// SearchConfig holds the depth budget of the engine. It may change between
// searches but a running search reads it once.
type SearchConfig struct {
	depth int
}

func NewSearchConfig(depth int) (*SearchConfig, error) {
	c := &SearchConfig{depth: DefaultDifficulty.Depth()}
	if err := c.SetDepth(depth); err != nil {
		return nil, err
	}
	return c, nil
}

func DefaultSearchConfig() *SearchConfig {
	return &SearchConfig{depth: DefaultDifficulty.Depth()}
}

func (c *SearchConfig) Depth() int {
	return c.depth
}

// SetDepth rejects non-positive depths and keeps the previous value in that case.
func (c *SearchConfig) SetDepth(depth int) error {
	if depth < 1 {
		return fmt.Errorf("%w: search depth must be positive, got %d", domain.ErrInvalidConfig, depth)
	}
	c.depth = depth
	return nil
}

func (c *SearchConfig) SetDifficulty(d Difficulty) error {
	depth, ok := difficultyDepths[d]
	if !ok {
		return fmt.Errorf("%w: unknown difficulty %q", domain.ErrInvalidConfig, string(d))
	}
	return c.SetDepth(depth)
}

func (c *SearchConfig) Difficulty() (Difficulty, bool) {
	return DifficultyForDepth(c.depth)
}
