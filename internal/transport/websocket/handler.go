package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/iamasit07/connect4-negamax/internal/domain"
	"github.com/iamasit07/connect4-negamax/internal/service/bot"
	"github.com/iamasit07/connect4-negamax/internal/service/game"
	"github.com/iamasit07/connect4-negamax/pkg/auth"
	"github.com/iamasit07/connect4-negamax/pkg/httputil"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

type TokenValidator interface {
	ValidateGameToken(token string) (*auth.GameClaims, error)
}

type Handler struct {
	ConnManager *ConnectionManager
	Games       *game.Manager
	Tokens      TokenValidator
	Upgrader    websocket.Upgrader
	logger      *zap.SugaredLogger
}

// NewHandler accepts upgrades from requests without an Origin header and
// from allowedOrigins.
func NewHandler(cm *ConnectionManager, games *game.Manager, tokens TokenValidator, allowedOrigins []string, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		ConnManager: cm,
		Games:       games,
		Tokens:      tokens,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("[WS] Upgrade error", "error", err)
		return
	}

	// browsers cannot set headers on the upgrade, init may carry the token instead
	queryToken, _ := httputil.BearerToken(r)
	h.handleConnection(conn, queryToken)
}

func (h *Handler) handleConnection(conn *websocket.Conn, queryToken string) {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	gameID, session, ok := h.initialize(conn, queryToken)
	if !ok {
		conn.Close()
		return
	}

	done := make(chan struct{})
	defer func() {
		close(done)
		h.ConnManager.RemoveConnectionIfMatching(gameID, conn)
		h.logger.Infow("[WS] Connection closed", "gameId", gameID)
	}()

	if session.AwaitingAI() {
		h.playEngine(gameID, session)
	}

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if !h.ConnManager.IsCurrentConnection(gameID, conn) {
					return
				}
				if err := h.ConnManager.Ping(gameID); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Infow("[WS] Disconnected unexpectedly", "gameId", gameID, "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.send(gameID, errorMessage(gameID, "invalid message format"))
			continue
		}
		h.processMessage(gameID, msg)
	}
}

// initialize waits for the init message and binds the connection to the
// game its token was issued for.
func (h *Handler) initialize(conn *websocket.Conn, queryToken string) (string, *game.Session, bool) {
	_, data, err := conn.ReadMessage()
	if err != nil {
		h.logger.Debugw("[WS] Read error during init", "error", err)
		return "", nil, false
	}

	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil || msg.Type != TypeInit {
		conn.WriteJSON(errorMessage("", "first message must be init"))
		return "", nil, false
	}

	token := msg.Token
	if token == "" {
		token = queryToken
	}
	claims, err := h.Tokens.ValidateGameToken(token)
	if err != nil {
		conn.WriteJSON(errorMessage(msg.GameID, "invalid or expired token"))
		return "", nil, false
	}
	if msg.GameID != "" && msg.GameID != claims.GameID {
		conn.WriteJSON(errorMessage(msg.GameID, "token does not belong to this game"))
		return "", nil, false
	}

	session, err := h.Games.Get(claims.GameID)
	if err != nil {
		conn.WriteJSON(errorMessage(claims.GameID, err.Error()))
		return "", nil, false
	}

	h.ConnManager.AddConnection(claims.GameID, conn)
	h.logger.Infow("[WS] Connection initialized", "gameId", claims.GameID)

	h.sendState(claims.GameID, session)
	return claims.GameID, session, true
}

func (h *Handler) processMessage(gameID string, msg ClientMessage) {
	session, err := h.Games.Get(gameID)
	if err != nil {
		h.send(gameID, errorMessage(gameID, err.Error()))
		return
	}

	switch msg.Type {
	case TypeMakeMove:
		if msg.Column == nil {
			h.send(gameID, errorMessage(gameID, "make_move requires a column"))
			return
		}
		move, err := session.SubmitMove(*msg.Column)
		if err != nil {
			h.send(gameID, errorMessage(gameID, err.Error()))
			return
		}
		h.sendMove(gameID, session, move)

		if session.AwaitingAI() {
			h.playEngine(gameID, session)
		}

	case TypeAIMove:
		h.playEngine(gameID, session)

	case TypeReset:
		session.Reset()
		h.sendState(gameID, session)
		if session.AwaitingAI() {
			h.playEngine(gameID, session)
		}

	case TypeSetDifficulty:
		if err := applyDifficulty(session, msg); err != nil {
			h.send(gameID, errorMessage(gameID, err.Error()))
			return
		}
		h.sendState(gameID, session)

	default:
		h.send(gameID, errorMessage(gameID, "unknown message type: "+msg.Type))
	}
}

func applyDifficulty(session *game.Session, msg ClientMessage) error {
	if msg.Depth != 0 {
		if err := bot.CheckRequestDepth(msg.Depth); err != nil {
			return err
		}
		return session.SetDepth(msg.Depth)
	}
	if msg.Difficulty == "" {
		return fmt.Errorf("%w: set_difficulty requires a difficulty or a depth", domain.ErrInvalidConfig)
	}
	d, err := bot.ParseDifficulty(msg.Difficulty)
	if err != nil {
		return err
	}
	return session.SetDifficulty(d)
}

func (h *Handler) playEngine(gameID string, session *game.Session) {
	move, err := session.RequestAIMove()
	if err != nil {
		h.logger.Debugw("[WS] Engine move rejected", "gameId", gameID, "error", err)
		h.send(gameID, errorMessage(gameID, err.Error()))
		return
	}
	h.sendMove(gameID, session, move)
}

func (h *Handler) sendMove(gameID string, session *game.Session, move game.MoveOutcome) {
	state := session.Snapshot()
	h.send(gameID, ServerMessage{
		Type:   TypeMoveMade,
		GameID: gameID,
		Move:   &move,
		State:  &state,
		Winner: move.Outcome.Winner(),
	})
}

func (h *Handler) sendState(gameID string, session *game.Session) {
	state := session.Snapshot()
	h.send(gameID, ServerMessage{Type: TypeGameState, GameID: gameID, State: &state})
}

func (h *Handler) send(gameID string, msg ServerMessage) {
	if err := h.ConnManager.SendMessage(gameID, msg); err != nil {
		h.logger.Debugw("[WS] Write failed", "gameId", gameID, "type", msg.Type, "error", err)
	}
}
