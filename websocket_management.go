package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/orhalimi/avalon_server/game"
)

// Message is the envelope of everything sent to a socket.
type Message struct {
	Type    string          `json:"ty"`
	Sender  string          `json:"sender,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

type ErrorMessage struct {
	Type     string `json:"ty"`
	Category string `json:"category"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// outbound is queued on a manager. With board set every recipient gets its
// own snapshot and message is ignored. A nil target means every client.
type outbound struct {
	board   bool
	sender  string
	target  *Client
	message []byte
}

// ClientManager is the hub of one guild. Only start touches clients.
type ClientManager struct {
	guild      string
	server     *Server
	clients    map[*Client]bool
	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client

	// sockets handed this hub and not yet unregistered, guarded by the
	// server's hubsMu
	refs int
}

type Client struct {
	id      string
	guild   string
	socket  *websocket.Conn
	send    chan []byte
	manager *ClientManager
	limiter *rate.Limiter
}

func newClientManager(guild string, s *Server) *ClientManager {
	return &ClientManager{
		guild:      guild,
		server:     s,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan outbound, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (manager *ClientManager) start() {
	for {
		select {
		case conn := <-manager.register:
			manager.clients[conn] = true
			log.Info().Str("guild", manager.guild).Str("player", conn.id).Msg("socket connected")
			manager.deliver(outbound{board: true, target: conn})

		case conn := <-manager.unregister:
			if _, ok := manager.clients[conn]; ok {
				manager.drop(conn)
				log.Info().Str("guild", manager.guild).Str("player", conn.id).Msg("socket disconnected")
				manager.leaveIfGone(conn.id)
			}
			if manager.server.release(manager) {
				log.Debug().Str("guild", manager.guild).Msg("hub closed")
				return
			}

		case message := <-manager.broadcast:
			manager.deliver(message)
		}
	}
}

func (manager *ClientManager) connected(id string) bool {
	for conn := range manager.clients {
		if conn.id == id {
			return true
		}
	}
	return false
}

func (manager *ClientManager) drop(conn *Client) {
	close(conn.send)
	delete(manager.clients, conn)
}

// leaveIfGone takes id out of the lobby once its last socket is gone. Seats
// in a running game are kept.
func (manager *ClientManager) leaveIfGone(id string) {
	if manager.connected(id) {
		return
	}
	if err := manager.server.games.Leave(manager.guild, id); err == nil {
		manager.deliver(outbound{board: true})
	}
}

func (manager *ClientManager) deliver(msg outbound) {
	var dropped []string
	for conn := range manager.clients {
		if msg.target != nil && msg.target != conn {
			continue
		}
		message := msg.message
		if msg.board {
			gm := manager.server.games.Snapshot(manager.guild, conn.id)
			content, err := json.Marshal(&gm)
			if err != nil {
				log.Error().Err(err).Str("guild", manager.guild).Msg("marshal board")
				continue
			}
			message, _ = json.Marshal(&Message{Type: "board", Sender: msg.sender, Content: content})
		}

		select {
		case conn.send <- message:
		default:
			log.Warn().Str("guild", manager.guild).Str("player", conn.id).Msg("slow socket dropped")
			manager.drop(conn)
			dropped = append(dropped, conn.id)
		}
	}
	for _, id := range dropped {
		manager.leaveIfGone(id)
	}
}

func (c *Client) write() {
	defer func() {
		c.socket.Close()
	}()

	for message := range c.send {
		if err := c.socket.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Debug().Err(err).Str("player", c.id).Msg("write failed")
			return
		}
	}
	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) read() {
	defer func() {
		c.manager.unregister <- c
		c.socket.Close()
	}()

	for {
		_, message, err := c.socket.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Str("player", c.id).Msg("read stopped")
			return
		}
		if !c.limiter.Allow() {
			c.reject(errRateLimited)
			continue
		}

		res, err := c.manager.server.dispatch(c.guild, c.id, message)
		if err != nil {
			c.reject(err)
			continue
		}

		if res.boardToSender {
			c.manager.broadcast <- outbound{board: true, sender: c.id, target: c}
		} else if res.board {
			c.manager.broadcast <- outbound{board: true, sender: c.id}
		}
		if res.private != nil {
			c.manager.broadcast <- outbound{target: c, message: res.private}
		}
		if res.announce != nil {
			c.manager.broadcast <- outbound{message: res.announce}
		}
	}
}

// reject tells the sender why its command was refused.
func (c *Client) reject(err error) {
	msg := ErrorMessage{Type: "error", Message: err.Error()}
	var gameErr *game.Error
	var reqErr *requestError
	switch {
	case errors.As(err, &gameErr):
		msg.Category, msg.Code = string(gameErr.Category), gameErr.Code
	case errors.As(err, &reqErr):
		msg.Category, msg.Code = "request", reqErr.code
	default:
		msg.Category, msg.Code = "internal", "internal"
		log.Error().Err(err).Str("guild", c.guild).Str("player", c.id).Msg("command failed")
	}
	log.Debug().Str("guild", c.guild).Str("player", c.id).Str("code", msg.Code).Msg("command rejected")

	payload, _ := json.Marshal(&msg)
	c.manager.broadcast <- outbound{target: c, message: payload}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func (s *Server) wsPage(res http.ResponseWriter, req *http.Request) {
	guild := mux.Vars(req)["guild"]
	userName, err := parseToken(s.secret, req.URL.Query().Get("token"))
	if err != nil {
		log.Debug().Err(err).Msg("websocket auth failed")
		http.Error(res, "Request failed!", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(res, req, nil)
	if err != nil {
		log.Debug().Err(err).Msg("upgrade failed")
		return
	}

	manager := s.acquireHub(guild)
	client := &Client{
		id:      userName,
		guild:   guild,
		socket:  conn,
		send:    make(chan []byte, 256),
		manager: manager,
		limiter: rate.NewLimiter(s.limit, s.burst),
	}
	manager.register <- client

	go client.read()
	go client.write()
}
