package main

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

const (
	// Possible votes
	VoteFail    = 0
	VoteSuccess = 1
)

type VoteForJourney struct {
	Vote *int `json:"vote"`
}

func (s *Server) HandleJourneyVote(guild, user string, content json.RawMessage) (result, error) {
	var vote VoteForJourney
	if err := decodeContent(content, &vote); err != nil {
		return result{}, err
	}
	if vote.Vote == nil || (*vote.Vote != VoteFail && *vote.Vote != VoteSuccess) {
		return result{}, errBadRequest
	}
	if err := s.games.QuestVote(guild, user, *vote.Vote == VoteSuccess); err != nil {
		return result{}, err
	}
	log.Debug().Str("guild", guild).Str("player", user).Msg("voted for journey")
	return everyoneSeesBoard, nil
}
