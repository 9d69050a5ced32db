package main

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/orhalimi/avalon_server/game"
)

// LadyResult is sent only to the holder who used the lady.
type LadyResult struct {
	Target  string       `json:"target"`
	Faction game.Faction `json:"faction"`
}

func (s *Server) LadySuggestHandler(guild, user string, content json.RawMessage) (result, error) {
	var target string
	if err := decodeContent(content, &target); err != nil {
		return result{}, err
	}
	faction, err := s.games.UseLady(guild, user, target)
	if err != nil {
		return result{}, err
	}
	log.Info().Str("guild", guild).Str("holder", user).Str("target", target).Msg("lady used")

	payload, _ := json.Marshal(&LadyResult{Target: target, Faction: faction})
	private, _ := json.Marshal(&Message{Type: "lady_result", Content: payload})
	return result{board: true, private: private}, nil
}
