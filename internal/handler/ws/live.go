package ws

import (
	"net/http"
	"sync"
	"time"

	"StockLens/internal/usecase"
	xlogger "StockLens/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// PanelPushRecorder counts panel updates delivered to live subscribers.
type PanelPushRecorder interface {
	RecordPanelPush()
}

// LiveHandler streams panel updates over a websocket. Each connection owns
// one lookup session; commands start lookups or switch periods, and every
// slot that settles is pushed as soon as it applies, mirroring the
// independently resolving result panels.
type LiveHandler struct {
	logger  *xlogger.Logger
	svc     *usecase.LookupService
	metrics PanelPushRecorder

	upgrader websocket.Upgrader
}

// Command is a client message on the live socket.
type Command struct {
	Action string `json:"action"` // "lookup" or "period"
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Period string `json:"period"`
}

func NewLiveHandler(logger *xlogger.Logger, svc *usecase.LookupService, metrics PanelPushRecorder) *LiveHandler {
	return &LiveHandler{
		logger:  logger,
		svc:     svc,
		metrics: metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (h *LiveHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/lookup", h.Serve)
}

func (h *LiveHandler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()
	session := h.svc.NewSession()
	updates, cancel := session.Subscribe()
	defer cancel()

	var writeMu sync.Mutex
	writeJSON := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	// push loop; exits when the subscription is cancelled or the conn dies
	go func() {
		for u := range updates {
			if err := writeJSON(u); err != nil {
				return
			}
			if h.metrics != nil {
				h.metrics.RecordPanelPush()
			}
		}
	}()

	// ping loop
	pingDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-pingDone:
				return
			case <-ticker.C:
				writeMu.Lock()
				_ = conn.WriteMessage(websocket.PingMessage, nil)
				writeMu.Unlock()
			}
		}
	}()
	defer close(pingDone)

	// command loop
	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("live socket read error", xlogger.Error(err))
			}
			return nil
		}

		switch cmd.Action {
		case "lookup":
			period := h.svc.NormalizePeriod(cmd.Period)
			if _, _, err := session.StartLookup(ctx, cmd.Name, cmd.Symbol, period); err != nil {
				// Rejected submit: nothing will settle, so push the
				// banner-only view directly.
				update := usecase.PanelUpdate{Source: usecase.SourceValidation, View: session.View()}
				if werr := writeJSON(update); werr != nil {
					return nil
				}
			}
		case "period":
			_, _, _ = session.SwitchPeriod(ctx, h.svc.NormalizePeriod(cmd.Period))
		default:
			h.logger.Warn("live socket unknown action", xlogger.String("action", cmd.Action))
		}
	}
}
