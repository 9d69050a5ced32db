package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/orhalimi/avalon_server/game"
)

func main() {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	setupLogger(cfg.LogLevel)

	session, err := NewSession(cfg.MongoURL())
	if err != nil {
		log.Fatal().Err(err).Str("mongo", cfg.MongoURL()).Msg("connecting to mongo")
	}
	defer session.Close()

	hash := Hash{}
	userService, err := NewUserService(session.Copy(), cfg.DBName, cfg.UserCollectionName, &hash)
	if err != nil {
		log.Fatal().Err(err).Msg("preparing user collection")
	}

	server := NewServer(cfg, game.NewRegistry(), userService, &hash)
	log.Info().Str("addr", cfg.ListenAddr).Msg("starting server")
	if err := http.ListenAndServe(cfg.ListenAddr, server.Handler()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
