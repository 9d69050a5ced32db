package main

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

type Murder struct {
	Target string `json:"target"`
}

// HandleMurder is the assassin's single guess at Merlin.
func (s *Server) HandleMurder(guild, user string, content json.RawMessage) (result, error) {
	var m Murder
	if err := decodeContent(content, &m); err != nil {
		return result{}, err
	}
	if err := s.games.Assassinate(guild, user, m.Target); err != nil {
		return result{}, err
	}
	log.Info().Str("guild", guild).Str("assassin", user).Str("target", m.Target).Msg("murder")
	return everyoneSeesBoard, nil
}
