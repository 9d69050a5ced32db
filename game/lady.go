package game

import "github.com/rs/zerolog/log"

// LadyExamination is the public record of a Lady of the Lake use. The
// faction learned is private to the holder.
type LadyExamination struct {
	Round  int    `json:"round"`
	Holder string `json:"holder"`
	Target string `json:"target"`
}

type LadyFinding struct {
	Target  string  `json:"target"`
	Faction Faction `json:"faction"`
}

type ladyOfTheLake struct {
	holder int
	// examined holds every seat that held the token or was examined
	examined map[int]bool
	log      []LadyExamination
	findings map[int][]LadyFinding
}

func newLadyOfTheLake(holder int) *ladyOfTheLake {
	return &ladyOfTheLake{
		holder:   holder,
		examined: map[int]bool{holder: true},
		findings: make(map[int][]LadyFinding),
	}
}

// LadyHolder returns who holds the Lady of the Lake token, if it is in play.
func (e *Engine) LadyHolder() (string, bool) {
	if e.lady == nil {
		return "", false
	}
	return e.players[e.lady.holder].User, true
}

// LadyLog is the public history of examinations.
func (e *Engine) LadyLog() []LadyExamination {
	if e.lady == nil {
		return nil
	}
	return append([]LadyExamination(nil), e.lady.log...)
}

// LadyFindings returns what user learned while holding the token.
func (e *Engine) LadyFindings(user string) []LadyFinding {
	seat, ok := e.seats[user]
	if !ok || e.lady == nil {
		return nil
	}
	return append([]LadyFinding(nil), e.lady.findings[seat]...)
}

// UseLady lets the holder learn the loyalty of target. The token passes to
// target and the next team is built.
func (e *Engine) UseLady(holder, target string) (Faction, error) {
	if err := e.checkPhase(LadyOfTheLake); err != nil {
		return Unknown, err
	}
	seat, ok := e.seats[holder]
	if !ok || seat != e.lady.holder {
		return Unknown, ErrNotLadyHolder
	}
	t, ok := e.seats[target]
	if !ok {
		return Unknown, ErrUnknownPlayer
	}
	if e.lady.examined[t] {
		return Unknown, ErrAlreadyExamined
	}

	faction := e.players[t].Character.Faction()
	e.lady.findings[seat] = append(e.lady.findings[seat], LadyFinding{Target: target, Faction: faction})
	e.lady.log = append(e.lady.log, LadyExamination{Round: e.round, Holder: holder, Target: target})
	e.lady.examined[t] = true
	e.lady.holder = t
	e.phase = TeamBuilding
	log.Info().Str("holder", holder).Str("target", target).Msg("lady of the lake used")
	return faction, nil
}
