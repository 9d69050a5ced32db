package main

import (
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/orhalimi/avalon_server/boardimage"
	"github.com/orhalimi/avalon_server/game"
)

type Server struct {
	games   *game.Registry
	pending *PendingInteractions
	users   *userRouter
	secret  string
	limit   rate.Limit
	burst   int

	hubsMu sync.Mutex
	hubs   map[string]*ClientManager
}

func NewServer(cfg Config, games *game.Registry, users UserStore, hash HashAbs) *Server {
	return &Server{
		games:   games,
		pending: NewPendingInteractions(),
		users:   &userRouter{users: users, hash: hash, secret: cfg.JWTSecret, ttl: cfg.TokenTTL},
		secret:  cfg.JWTSecret,
		limit:   rate.Limit(cfg.CommandRate),
		burst:   cfg.CommandBurst,
		hubs:    make(map[string]*ClientManager),
	}
}

// acquireHub returns the running manager of guild, starting one on first
// use. Every acquire is paired with a release when the socket unregisters.
func (s *Server) acquireHub(guild string) *ClientManager {
	s.hubsMu.Lock()
	defer s.hubsMu.Unlock()
	manager, ok := s.hubs[guild]
	if !ok {
		manager = newClientManager(guild, s)
		s.hubs[guild] = manager
		go manager.start()
	}
	manager.refs++
	return manager
}

// release drops one socket of manager. It reports true when that was the
// last one; the hub is then forgotten and its goroutine must stop.
func (s *Server) release(manager *ClientManager) bool {
	s.hubsMu.Lock()
	defer s.hubsMu.Unlock()
	manager.refs--
	if manager.refs > 0 {
		return false
	}
	if s.hubs[manager.guild] == manager {
		delete(s.hubs, manager.guild)
	}
	return true
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/ws/{guild}", s.wsPage).Methods("GET")
	router.HandleFunc("/guilds/{guild}/board.png", s.boardImage).Methods("GET")
	router.HandleFunc("/register", s.users.createUserHandler).Methods("PUT", "OPTIONS", "POST")
	router.HandleFunc("/login", s.users.login).Methods("POST", "OPTIONS")
	return cors.AllowAll().Handler(router)
}

func (s *Server) boardImage(w http.ResponseWriter, r *http.Request) {
	guild := mux.Vars(r)["guild"]
	outcomes, rejects, players, ok := s.games.BoardInputs(guild)
	if !ok {
		http.NotFound(w, r)
		return
	}
	img, err := boardimage.Render(outcomes, rejects, players)
	if err != nil {
		log.Error().Err(err).Str("guild", guild).Msg("rendering board")
		http.Error(w, "board unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(img)
}
