package main

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/orhalimi/avalon_server/game"
)

func (s *Server) HandleAddRoles(guild string, content json.RawMessage) (result, error) {
	var roles []game.Character
	if err := decodeContent(content, &roles); err != nil {
		return result{}, err
	}
	return everyoneSeesBoard, s.games.AddRoles(guild, roles...)
}

func (s *Server) HandleRemoveRoles(guild string, content json.RawMessage) (result, error) {
	var roles []game.Character
	if err := decodeContent(content, &roles); err != nil {
		return result{}, err
	}
	return everyoneSeesBoard, s.games.RemoveRoles(guild, roles...)
}

// HandleToggleLady flips the Lady of the Lake, or sets it when the content is
// a boolean.
func (s *Server) HandleToggleLady(guild string, content json.RawMessage) (result, error) {
	var on *bool
	if len(content) > 0 {
		if err := decodeContent(content, &on); err != nil {
			return result{}, err
		}
	}
	lady, err := s.games.ToggleLady(guild, on)
	if err != nil {
		return result{}, err
	}
	log.Info().Str("guild", guild).Bool("lady", lady).Msg("lady of the lake toggled")
	return everyoneSeesBoard, nil
}

func (s *Server) StartGameHandler(guild string) (result, error) {
	if err := s.games.Start(guild); err != nil {
		return result{}, err
	}
	if n := s.pending.CloseGuild(guild); n > 0 {
		log.Debug().Str("guild", guild).Int("closed", n).Msg("interactions closed")
	}
	return everyoneSeesBoard, nil
}
