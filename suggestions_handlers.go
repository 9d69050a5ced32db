package main

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

type Suggestion struct {
	Players []string `json:"players,omitempty"`
}

type VoteForSuggestion struct {
	Vote bool `json:"vote"`
}

func (s *Server) HandleNewSuggest(guild, user string, content json.RawMessage) (result, error) {
	var pl Suggestion
	if err := decodeContent(content, &pl); err != nil {
		return result{}, err
	}
	if err := s.games.ProposeTeam(guild, user, pl.Players); err != nil {
		return result{}, err
	}
	log.Info().Str("guild", guild).Str("suggester", user).Strs("suggestedPlayers", pl.Players).Msg("team suggested")
	return everyoneSeesBoard, nil
}

func (s *Server) HandleSuggestionVote(guild, user string, content json.RawMessage) (result, error) {
	var vote VoteForSuggestion
	if err := decodeContent(content, &vote); err != nil {
		return result{}, err
	}
	if err := s.games.Vote(guild, user, vote.Vote); err != nil {
		return result{}, err
	}
	log.Debug().Str("guild", guild).Str("player", user).Msg("voted for suggestion")
	return everyoneSeesBoard, nil
}
