package main

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config is read from the environment on startup.
type Config struct {
	ListenAddr string        `env:"LISTEN_ADDR" envDefault:":12345"`
	JWTSecret  string        `env:"JWT_SECRET" envDefault:"42isTheAnswer"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"300h"`

	MongoAddress       string `env:"MONGO_ADDRESS" envDefault:"127.0.0.1"`
	MongoPort          string `env:"MONGO_PORT" envDefault:"27017"`
	DBName             string `env:"MONGO_DB_NAME" envDefault:"test_db"`
	UserCollectionName string `env:"MONGO_USER_NAME" envDefault:"user"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// commands per second per socket, and the burst allowed on top
	CommandRate  float64 `env:"COMMAND_RATE" envDefault:"1"`
	CommandBurst int     `env:"COMMAND_BURST" envDefault:"5"`
}

func (c Config) MongoURL() string {
	return fmt.Sprintf("%s:%s", c.MongoAddress, c.MongoPort)
}

func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func setupLogger(level string) {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level, using info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
