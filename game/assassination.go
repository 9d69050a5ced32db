package game

import "github.com/rs/zerolog/log"

// Guess resolves the assassination phase. The Assassin names one good
// player; naming Merlin wins the game for Evil. There is a single guess.
func (e *Engine) Guess(assassin, target string) error {
	if err := e.checkPhase(Assassination); err != nil {
		return err
	}
	a, ok := e.PlayerRef(assassin)
	if !ok || a.Character != Assassin {
		return ErrNotAssassin
	}
	t, ok := e.PlayerRef(target)
	if !ok || t.Character.Faction() != Good {
		return ErrInvalidTarget
	}

	merlinSeat, ok := e.seatOf(Merlin)
	if !ok {
		log.Panic().Msg("assassination phase without Merlin in the game")
	}
	merlin := e.players[merlinSeat].User

	if t.Character == Merlin {
		log.Info().Str("target", target).Msg("assassin murder success")
		e.finish(Outcome{Winner: Evil, Reason: ReasonMerlinFound, Merlin: merlin, Target: target})
		return nil
	}
	log.Info().Str("target", target).Stringer("role", t.Character).Msg("assassin murder failed")
	e.finish(Outcome{Winner: Good, Reason: ReasonMerlinSurvived, Merlin: merlin, Target: target})
	return nil
}
