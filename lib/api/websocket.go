package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(req *http.Request) bool {
		return true
	},
}

// wsConn serialises writes to one client; the stats ticker and the close
// path may race otherwise.
type wsConn struct {
	sync.Mutex
	*websocket.Conn
}

func (c *wsConn) writeJSON(v any, timeout time.Duration) error {
	packet, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.Lock()
	defer c.Unlock()
	if err := c.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	return c.WriteMessage(websocket.TextMessage, packet)
}

// @Summary	Open websocket for realtime status information
// @Router		/api/ws [get]
// @Param		Upgrade	header	string	true	"websocket"
// @Tags		base
// @Success	101
func (a *Api) handleWebsocket(w http.ResponseWriter, req *http.Request) {
	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		http.Error(w, fmt.Sprintf("couldn't make websocket: %s", err), 400)
		return
	}
	conn := &wsConn{Conn: ws}
	defer func(conn *wsConn) {
		err := conn.Close()
		if err != nil {
			slog.Error(fmt.Sprintf("could not close websocket: %s", err), slog.String("module", "api"))
		}
	}(conn)
	a.wsClients[conn] = true

	go a.websocketWriter(conn)

	a.Stats.WsClients = len(a.wsClients)

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			delete(a.wsClients, conn)
			a.Stats.WsClients = len(a.wsClients)
			break
		}
	}
}

func (a *Api) websocketWriter(conn *wsConn) {
	pingTicker := time.NewTicker(2 * time.Second)
	defer func() {
		pingTicker.Stop()
		err := conn.Close()
		if err != nil {
			slog.Error(fmt.Sprintf("could not close websocket: %s", err), slog.String("module", "api"))
			return
		}
	}()
	timeout := 10 * time.Second
	for range pingTicker.C {
		if err := conn.writeJSON(a.Stats, timeout); err != nil {
			return
		}
	}
}
