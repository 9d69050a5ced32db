package main

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/orhalimi/avalon_server/game"
)

// InteractionPosted announces a new button or menu to a guild.
type InteractionPosted struct {
	ID      string           `json:"id"`
	Kind    string           `json:"kind"`
	Options []game.Character `json:"options,omitempty"`
}

type Press struct {
	ID     string           `json:"id"`
	Values []game.Character `json:"values,omitempty"`
}

func announce(posted InteractionPosted) []byte {
	content, _ := json.Marshal(&posted)
	message, _ := json.Marshal(&Message{Type: "interaction", Content: content})
	return message
}

func (s *Server) OpenJoinHandler(guild string) (result, error) {
	id := s.pending.Open(JoinRequest{Guild: guild})
	return result{announce: announce(InteractionPosted{ID: id, Kind: "join"})}, nil
}

func (s *Server) OpenRolesHandler(guild string) (result, error) {
	options := specialCharacters()
	id := s.pending.Open(RoleSelection{Guild: guild, Options: options})
	return result{announce: announce(InteractionPosted{ID: id, Kind: "roles", Options: options})}, nil
}

// PressHandler resolves a press on a posted interaction.
func (s *Server) PressHandler(guild, user string, content json.RawMessage) (result, error) {
	var press Press
	if err := decodeContent(content, &press); err != nil {
		return result{}, err
	}
	pending, ok := s.pending.Get(press.ID)
	if !ok || pending.guild() != guild {
		return result{}, errUnknownInteraction
	}

	switch i := pending.(type) {
	case JoinRequest:
		if err := s.games.Join(i.Guild, user); err != nil {
			return result{}, err
		}
	case RoleSelection:
		for _, ch := range press.Values {
			if !i.allows(ch) {
				return result{}, errInvalidOption
			}
		}
		if err := s.games.SetRoles(i.Guild, press.Values...); err != nil {
			return result{}, err
		}
		log.Info().Str("guild", guild).Str("player", user).Int("roles", len(press.Values)).Msg("roles selected")
	}
	return everyoneSeesBoard, nil
}
