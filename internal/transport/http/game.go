package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/iamasit07/connect4-negamax/internal/domain"
	"github.com/iamasit07/connect4-negamax/internal/service/bot"
	"github.com/iamasit07/connect4-negamax/internal/service/game"
	"github.com/iamasit07/connect4-negamax/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-negamax/pkg/auth"
	"github.com/iamasit07/connect4-negamax/pkg/httputil"
)

type GameHandler struct {
	Games             *game.Manager
	Tokens            *auth.TokenIssuer
	Defaults          game.Options
	DefaultDifficulty bot.Difficulty
	logger            *zap.SugaredLogger
}

func NewGameHandler(games *game.Manager, tokens *auth.TokenIssuer, defaults game.Options, difficulty bot.Difficulty, logger *zap.SugaredLogger) *GameHandler {
	return &GameHandler{
		Games:             games,
		Tokens:            tokens,
		Defaults:          defaults,
		DefaultDifficulty: difficulty,
		logger:            logger,
	}
}

type createGameRequest struct {
	Difficulty string `json:"difficulty"`
	Depth      int    `json:"depth"`
	Player1    string `json:"player1"`
	Player2    string `json:"player2"`
}

type createGameResponse struct {
	GameID string        `json:"gameId"`
	Token  string        `json:"token"`
	State  game.Snapshot `json:"state"`
}

type moveRequest struct {
	Column *int `json:"column"`
}

type moveResponse struct {
	Move  game.MoveOutcome `json:"move"`
	State game.Snapshot    `json:"state"`
}

type difficultyRequest struct {
	Difficulty string `json:"difficulty"`
	Depth      int    `json:"depth"`
}

// StatusFor maps service errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotYourTurn),
		errors.Is(err, domain.ErrGameOver),
		errors.Is(err, domain.ErrNoLegalMove):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidMove),
		errors.Is(err, domain.ErrInvalidConfig):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *GameHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Errorw("[HTTP] request failed", "path", r.URL.Path, "error", err)
		httputil.WriteError(w, status, "Internal server error")
		return
	}
	httputil.WriteError(w, status, err.Error())
}

// searchConfig resolves an explicit depth first, then a named difficulty,
// then the server default.
func (h *GameHandler) searchConfig(difficulty string, depth int) (*bot.SearchConfig, error) {
	if err := bot.CheckRequestDepth(depth); err != nil {
		return nil, err
	}
	if depth != 0 {
		return bot.NewSearchConfig(depth)
	}
	if difficulty == "" {
		return bot.NewSearchConfig(h.DefaultDifficulty.Depth())
	}
	d, err := bot.ParseDifficulty(difficulty)
	if err != nil {
		return nil, err
	}
	return bot.NewSearchConfig(d.Depth())
}

func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	// an empty body, chunked or not, means all defaults
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	config, err := h.searchConfig(req.Difficulty, req.Depth)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	opts := h.Defaults
	if req.Player1 != "" {
		opts.Player1 = game.PlayerKind(req.Player1)
	}
	if req.Player2 != "" {
		opts.Player2 = game.PlayerKind(req.Player2)
	}

	id, session, err := h.Games.Create(config, opts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	token, err := h.Tokens.GenerateGameToken(id)
	if err != nil {
		h.logger.Errorw("[HTTP] failed to sign game token", "gameId", id, "error", err)
		_ = h.Games.Remove(id)
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, createGameResponse{
		GameID: id,
		Token:  token,
		State:  session.Snapshot(),
	})
}

// gameID is the id GameAuth checked the token against.
func gameID(r *http.Request) string {
	if id, ok := middleware.GameIDFromContext(r.Context()); ok {
		return id
	}
	return chi.URLParam(r, "id")
}

func (h *GameHandler) session(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	session, err := h.Games.Get(gameID(r))
	if err != nil {
		h.writeError(w, r, err)
		return nil, false
	}
	return session, true
}

func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, session.Snapshot())
}

func (h *GameHandler) SubmitMove(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Column == nil {
		httputil.WriteError(w, http.StatusBadRequest, "Request must contain a column")
		return
	}

	move, err := session.SubmitMove(*req.Column)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, moveResponse{Move: move, State: session.Snapshot()})
}

func (h *GameHandler) RequestAIMove(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	move, err := session.RequestAIMove()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Debugw("[HTTP] engine moved", "gameId", gameID(r),
		"column", move.Column, "score", move.Score)
	httputil.WriteJSON(w, http.StatusOK, moveResponse{Move: move, State: session.Snapshot()})
}

func (h *GameHandler) SetDifficulty(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req difficultyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var err error
	switch {
	case req.Depth != 0:
		if err = bot.CheckRequestDepth(req.Depth); err == nil {
			err = session.SetDepth(req.Depth)
		}
	case req.Difficulty != "":
		var d bot.Difficulty
		if d, err = bot.ParseDifficulty(req.Difficulty); err == nil {
			err = session.SetDifficulty(d)
		}
	default:
		httputil.WriteError(w, http.StatusBadRequest, "Request must contain a difficulty or a depth")
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, session.Snapshot())
}

func (h *GameHandler) ResetGame(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	session.Reset()
	httputil.WriteJSON(w, http.StatusOK, session.Snapshot())
}

func (h *GameHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := h.Games.Remove(gameID(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
