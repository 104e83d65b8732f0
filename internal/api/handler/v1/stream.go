package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// HandleStream godoc
// @Summary      Stream session snapshots
// @Description  Upgrades to a WebSocket and pushes a response.SessionResponse on every session change.
// @Tags         session
// @Success      101
// @Router       /session/stream [get]
func (h *SessionHandler) HandleStream(allowedOrigins []string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin(allowedOrigins),
	}

	return func(ctx *gin.Context) {
		snapshots, unsubscribe, err := h.ctrl.Subscribe(ctx.Request.Context())
		if err != nil {
			h.renderSessionErr(ctx, "HandleStream -> h.ctrl.Subscribe", "", err)
			return
		}
		defer unsubscribe()

		conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			zap.L().Debug("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		closed := make(chan struct{})
		go readPump(conn, closed)

		ping := time.NewTicker(pingPeriod)
		defer ping.Stop()

		for {
			select {
			case snap := <-snapshots:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(h.toResponse(snap)); err != nil {
					return
				}
			case <-ping.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-closed:
				return
			case <-h.ctrl.Done():
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
					time.Now().Add(writeWait))
				return
			}
		}
	}
}

// readPump drains client frames so pongs and close frames are processed.
func readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}

		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}

		return false
	}
}
