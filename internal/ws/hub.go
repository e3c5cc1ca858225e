package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/peetznvr/prsi-414/internal/game"
)

// Hub accepts websocket connections for one table and shuttles messages
// between the connections and the game. The game serializes on its own
// mutex, so concurrent reader goroutines never interleave mutations.
type Hub struct {
	game       *game.Game
	minPlayers int
	log        *logrus.Logger

	startMu sync.Mutex // serializes the auto-start decision
}

// NewHub creates a hub for the given table. The hand auto-starts once
// minPlayers seats are taken.
func NewHub(g *game.Game, minPlayers int, log *logrus.Logger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{game: g, minPlayers: minPlayers, log: log}
}

// ServeWS upgrades the request, seats the player (display name from the
// "name" query parameter) and runs the read loop until disconnect.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.WithError(err).Warn("websocket accept failed")
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "Player"
	}

	client := newClient(conn, h.log)
	id, err := h.game.Join(client, name)
	if err != nil {
		conn.Close(websocket.StatusPolicyViolation, "Game already in progress.")
		return
	}
	client.id = id
	h.log.WithFields(logrus.Fields{"player": id, "name": name}).Info("client connected")

	ctx := r.Context()
	go client.writePump(ctx)

	h.startMu.Lock()
	if !h.game.Started() && h.game.PlayerCount() >= h.minPlayers {
		h.game.Start()
	}
	h.startMu.Unlock()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			break
		}
		var act game.Action
		if err := json.Unmarshal(data, &act); err != nil {
			_ = client.Send(game.Notice{Message: "Invalid message."})
			continue
		}
		h.game.HandleAction(id, act)
	}

	h.game.RemovePlayer(id)
	close(client.send)
	h.log.WithField("player", id).Info("client disconnected")
}
