package main

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

type requestError struct {
	code string
	msg  string
}

func (e *requestError) Error() string {
	return e.msg
}

var (
	errBadRequest         = &requestError{"bad_request", "malformed command"}
	errUnknownCommand     = &requestError{"unknown_command", "unknown command type"}
	errRateLimited        = &requestError{"rate_limited", "too many commands, slow down"}
	errUnknownInteraction = &requestError{"unknown_interaction", "this button is no longer active"}
	errInvalidOption      = &requestError{"invalid_option", "option is not offered by this menu"}
)

// Command is what clients send: {"type": ..., "content": ...}.
type Command struct {
	Tp      string          `json:"type"`
	Content json.RawMessage `json:"content,omitempty"`
}

// result says who hears about an accepted command.
type result struct {
	board         bool
	boardToSender bool
	private       []byte
	announce      []byte
}

var everyoneSeesBoard = result{board: true}

func decodeContent(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return errBadRequest
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// dispatch runs one command of user in guild.
func (s *Server) dispatch(guild, user string, message []byte) (result, error) {
	var cmd Command
	if err := json.Unmarshal(message, &cmd); err != nil {
		return result{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	log.Debug().Str("guild", guild).Str("player", user).Str("type", cmd.Tp).Msg("command")

	switch cmd.Tp {
	case "join":
		return everyoneSeesBoard, s.games.Join(guild, user)
	case "leave":
		return everyoneSeesBoard, s.games.Leave(guild, user)
	case "add_roles":
		return s.HandleAddRoles(guild, cmd.Content)
	case "remove_roles":
		return s.HandleRemoveRoles(guild, cmd.Content)
	case "clear_roles":
		return everyoneSeesBoard, s.games.ClearRoles(guild)
	case "toggle_lady":
		return s.HandleToggleLady(guild, cmd.Content)
	case "start_game":
		return s.StartGameHandler(guild)
	case "suggestion":
		return s.HandleNewSuggest(guild, user, cmd.Content)
	case "vote_for_suggestion":
		return s.HandleSuggestionVote(guild, user, cmd.Content)
	case "vote_for_journey":
		return s.HandleJourneyVote(guild, user, cmd.Content)
	case "lady_suggest":
		return s.LadySuggestHandler(guild, user, cmd.Content)
	case "assassinate":
		return s.HandleMurder(guild, user, cmd.Content)
	case "open_join":
		return s.OpenJoinHandler(guild)
	case "open_roles":
		return s.OpenRolesHandler(guild)
	case "press":
		return s.PressHandler(guild, user, cmd.Content)
	case "refresh":
		return result{boardToSender: true}, nil
	}
	return result{}, errUnknownCommand
}
