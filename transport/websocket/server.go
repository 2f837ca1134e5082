package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/battleship-backend/internal/config"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	Connect(playerID string) (*entity.Player, error)
	Disconnect(playerID string)

	SetName(playerID, name string) error
	Join(playerID string) error

	SubmitBoard(roomID, playerID string, board entity.Board, name string) error
	Attack(roomID, attackerID string, targetIndex int) error
	ReportAttackResult(roomID, reporterID string, targetIndex int, hit bool) error
	ShipSunk(roomID, playerID, shipName, attackerName string) error
}

type Server struct {
	logger *slog.Logger
	conf   config.WebSocket

	hub      *Hub
	game     gameUseCase
	upgrader websocket.Upgrader

	handlers map[string]func(playerID string, msg *Message) error
}

func New(logger *slog.Logger, conf config.WebSocket, hub *Hub, game gameUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "ws_server"),
		conf:   conf,
		hub:    hub,
		game:   game,

		handlers: make(map[string]func(string, *Message) error),
	}

	server.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     server.checkOrigin,
	}

	server.handlers[entity.ActionSetName] = server.handleSetName
	server.handlers[entity.ActionFindMatch] = server.handleFindMatch
	server.handlers[entity.ActionReady] = server.handleReady
	server.handlers[entity.ActionAttack] = server.handleAttack
	server.handlers[entity.ActionAttackResult] = server.handleAttackResult
	server.handlers[entity.ActionShipSunk] = server.handleShipSunk

	return server
}

// Router - routes /ws to the upgrade handler.
func (that *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/ws", that.serveWS).Methods(http.MethodGet)

	return router
}

// Start - starts WebSocket server, it returns once ctx is done and the server is shut down.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) checkOrigin(req *http.Request) bool {
	if len(that.conf.AllowedOrigins) == 0 {
		return true
	}

	origin := req.Header.Get("Origin")
	if origin == "" {
		return true
	}

	for _, allowed := range that.conf.AllowedOrigins {
		if allowed == origin {
			return true
		}
	}

	return false
}

// serveWS - upgrades the connection and runs it until the peer goes away.
func (that *Server) serveWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Warn("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(uuid.New().String(), conn, that.conf.SendBuffer)
	log = log.With("playerID", c.id)

	that.hub.register(c)

	go func() {
		if writeErr := c.writePump(that.conf.PingInterval); writeErr != nil {
			log.Debug("write pump stopped", "error", writeErr)
		}

		_ = conn.Close()
	}()

	if _, err = that.game.Connect(c.id); err != nil {
		log.Error("failed to connect player", "error", err)
	}

	log.Info("WebSocket connection established")

	err = c.readPump(that.conf.ReadTimeout, func(data []byte) {
		that.dispatch(c.id, data)
	})
	if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		log.Warn("connection closed unexpectedly", "error", err)
	}

	that.hub.unregister(c)
	that.game.Disconnect(c.id)

	log.Info("WebSocket connection closed")
}

// dispatch - decodes the envelope and runs the handler for its action.
func (that *Server) dispatch(playerID string, data []byte) {
	log := that.logger.With("method", "dispatch", "playerID", playerID)

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Debug("failed to unmarshal message", "error", err)
		that.sendError(playerID, "", fmt.Errorf("%w: %w", errMalformedMessage, err))

		return
	}

	handler, ok := that.handlers[msg.Action]
	if !ok {
		log.Debug("unknown action", "action", msg.Action)
		that.sendError(playerID, msg.Action, errUnknownAction)

		return
	}

	if err := handler(playerID, &msg); err != nil {
		that.handleError(playerID, msg.Action, err)
	}
}
