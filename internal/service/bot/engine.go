package bot

import (
	"github.com/iamasit07/connect4-negamax/internal/domain"
)

// Searcher chooses a move for player on board. Implementations must not
// modify board.
type Searcher interface {
	Search(board *domain.Board, player domain.PlayerID, depth int) (Result, error)
}

var (
	_ Searcher = (*Engine)(nil)
	_ Searcher = (*CachedSearcher)(nil)
)
