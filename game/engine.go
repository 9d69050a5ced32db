package game

import (
	"github.com/rs/zerolog/log"
)

type Phase int

const (
	NotStarted Phase = iota
	TeamBuilding
	Voting
	Questing
	LadyOfTheLake
	Assassination
	GameOver
)

var phaseNames = [...]string{
	NotStarted:    "not_started",
	TeamBuilding:  "team_building",
	Voting:        "voting",
	Questing:      "questing",
	LadyOfTheLake: "lady_of_the_lake",
	Assassination: "assassination",
	GameOver:      "game_over",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

const (
	ReasonTooManyRejections = "too many rejections"
	ReasonQuestsFailed      = "quests failed"
	ReasonQuestsSucceeded   = "quests succeeded"
	ReasonMerlinFound       = "Merlin found"
	ReasonMerlinSurvived    = "Merlin survived"
)

type Player struct {
	User      string    `json:"user"`
	Character Character `json:"character"`
}

type QuestResult struct {
	Round     int      `json:"round"`
	Team      []string `json:"team"`
	Fails     int      `json:"fails"`
	Succeeded bool     `json:"succeeded"`
}

// TeamVote is a resolved approval vote. Team votes are public once everyone
// has voted.
type TeamVote struct {
	Round    int      `json:"round"`
	Leader   string   `json:"leader"`
	Team     []string `json:"team"`
	Approved []string `json:"approved"`
	Rejected []string `json:"rejected"`
	Accepted bool     `json:"accepted"`
}

type Outcome struct {
	Winner Faction `json:"winner"`
	Reason string  `json:"reason"`
	// Merlin and Target are set when the game ended in the assassination phase.
	Merlin string `json:"merlin,omitempty"`
	Target string `json:"target,omitempty"`
}

// Engine is a running game. It is not safe for concurrent use; the Registry
// serializes access per guild.
type Engine struct {
	players []Player
	seats   map[string]int

	phase   Phase
	round   int
	leader  int
	rejects int

	team       []int
	votes      map[int]bool
	questVotes map[int]bool
	lastVote   *TeamVote
	history    []QuestResult

	lady    *ladyOfTheLake
	outcome *Outcome
}

func newEngine(roster []Player, withLady bool) *Engine {
	e := &Engine{
		players: roster,
		seats:   make(map[string]int, len(roster)),
		phase:   TeamBuilding,
		round:   1,
	}
	for i, p := range roster {
		e.seats[p.User] = i
	}
	if withLady {
		// the token starts with the seat before the first leader
		e.lady = newLadyOfTheLake(len(roster) - 1)
	}
	return e
}

func (e *Engine) Phase() Phase { return e.phase }

func (e *Engine) Round() int { return e.round }

func (e *Engine) Rejects() int { return e.rejects }

func (e *Engine) Outcome() *Outcome { return e.outcome }

func (e *Engine) NumOfPlayers() int { return len(e.players) }

func (e *Engine) Leader() string { return e.players[e.leader].User }

func (e *Engine) LastVote() *TeamVote { return e.lastVote }

// CurrentRound is the quest the table is working on.
func (e *Engine) CurrentRound() Round {
	return RoundFor(len(e.players), e.round)
}

func (e *Engine) Players() []Player {
	return append([]Player(nil), e.players...)
}

func (e *Engine) Team() []string {
	return e.users(e.team)
}

func (e *Engine) History() []QuestResult {
	return append([]QuestResult(nil), e.history...)
}

// Outcomes is the pass/fail sequence of the completed quests.
func (e *Engine) Outcomes() []bool {
	out := make([]bool, len(e.history))
	for i, q := range e.history {
		out[i] = q.Succeeded
	}
	return out
}

// PlayerRef looks a player up by platform identity.
func (e *Engine) PlayerRef(user string) (Player, bool) {
	seat, ok := e.seats[user]
	if !ok {
		return Player{}, false
	}
	return e.players[seat], true
}

func (e *Engine) hasCharacter(ch Character) bool {
	_, ok := e.seatOf(ch)
	return ok
}

func (e *Engine) seatOf(ch Character) (int, bool) {
	for i, p := range e.players {
		if p.Character == ch {
			return i, true
		}
	}
	return -1, false
}

func (e *Engine) users(seats []int) []string {
	if seats == nil {
		return nil
	}
	out := make([]string, len(seats))
	for i, s := range seats {
		out[i] = e.players[s].User
	}
	return out
}

func (e *Engine) onTeam(seat int) bool {
	for _, s := range e.team {
		if s == seat {
			return true
		}
	}
	return false
}

func (e *Engine) checkPhase(want Phase) error {
	if e.phase == GameOver {
		return ErrGameAlreadyOver
	}
	if e.phase != want {
		return ErrWrongPhase
	}
	return nil
}

// ProposeTeam puts the leader's team up for an approval vote.
func (e *Engine) ProposeTeam(leader string, team []string) error {
	if err := e.checkPhase(TeamBuilding); err != nil {
		return err
	}
	if seat, ok := e.seats[leader]; !ok || seat != e.leader {
		return ErrWrongLeader
	}
	if len(team) != e.CurrentRound().Players {
		return ErrWrongSize
	}
	seats := make([]int, 0, len(team))
	picked := make(map[int]bool, len(team))
	for _, user := range team {
		seat, ok := e.seats[user]
		if !ok {
			return ErrUnknownPlayer
		}
		if picked[seat] {
			// a repeated member leaves the team one short
			return ErrWrongSize
		}
		picked[seat] = true
		seats = append(seats, seat)
	}

	e.team = seats
	e.votes = make(map[int]bool, len(e.players))
	e.phase = Voting
	log.Debug().Str("leader", leader).Strs("team", team).Int("round", e.round).Msg("team proposed")
	return nil
}

// CastVote records an approve/reject vote on the proposed team and resolves
// the vote once every player has voted.
func (e *Engine) CastVote(player string, approve bool) error {
	if err := e.checkPhase(Voting); err != nil {
		return err
	}
	seat, ok := e.seats[player]
	if !ok {
		return ErrUnknownPlayer
	}
	if _, voted := e.votes[seat]; voted {
		return ErrAlreadyVoted
	}
	e.votes[seat] = approve
	if len(e.votes) == len(e.players) {
		e.resolveVote()
	}
	return nil
}

// Voted lists who already voted on the proposed team, in seat order.
func (e *Engine) Voted() []string {
	return e.votedSeats(e.votes)
}

// QuestVoted lists team members who already played a quest card.
func (e *Engine) QuestVoted() []string {
	return e.votedSeats(e.questVotes)
}

func (e *Engine) votedSeats(votes map[int]bool) []string {
	if e.phase != Voting && e.phase != Questing {
		return nil
	}
	out := make([]string, 0, len(votes))
	for i, p := range e.players {
		if _, ok := votes[i]; ok {
			out = append(out, p.User)
		}
	}
	return out
}

func (e *Engine) resolveVote() {
	vote := &TeamVote{
		Round:    e.round,
		Leader:   e.Leader(),
		Team:     e.Team(),
		Approved: make([]string, 0),
		Rejected: make([]string, 0),
	}
	for i, p := range e.players {
		if e.votes[i] {
			vote.Approved = append(vote.Approved, p.User)
		} else {
			vote.Rejected = append(vote.Rejected, p.User)
		}
	}
	// strict majority, a tie rejects
	vote.Accepted = 2*len(vote.Approved) > len(e.players)
	e.lastVote = vote
	e.votes = nil
	e.leader = (e.leader + 1) % len(e.players)

	log.Info().Int("round", e.round).Int("yes", len(vote.Approved)).Int("no", len(vote.Rejected)).
		Bool("accepted", vote.Accepted).Msg("team vote is over")

	if vote.Accepted {
		e.rejects = 0
		e.questVotes = make(map[int]bool, len(e.team))
		e.phase = Questing
		return
	}

	e.rejects++
	e.team = nil
	if e.rejects >= MaxRejects {
		e.finish(Outcome{Winner: Evil, Reason: ReasonTooManyRejections})
		return
	}
	e.phase = TeamBuilding
}

// QuestVote plays a team member's secret quest card.
func (e *Engine) QuestVote(member string, pass bool) error {
	if err := e.checkPhase(Questing); err != nil {
		return err
	}
	seat, ok := e.seats[member]
	if !ok || !e.onTeam(seat) {
		return ErrNotOnTeam
	}
	if _, voted := e.questVotes[seat]; voted {
		return ErrAlreadyVoted
	}
	if !pass && e.players[seat].Character.Faction() == Good {
		return ErrFailNotAllowed
	}
	e.questVotes[seat] = pass
	if len(e.questVotes) == len(e.team) {
		e.resolveQuest()
	}
	return nil
}

func (e *Engine) resolveQuest() {
	fails := 0
	for _, pass := range e.questVotes {
		if !pass {
			fails++
		}
	}
	completed := e.round
	result := QuestResult{
		Round:     completed,
		Team:      e.Team(),
		Fails:     fails,
		Succeeded: fails < e.CurrentRound().Fails,
	}
	e.history = append(e.history, result)
	e.team = nil
	e.questVotes = nil
	log.Info().Int("round", completed).Int("fails", fails).Bool("succeeded", result.Succeeded).Msg("quest result")

	successes, failures := 0, 0
	for _, q := range e.history {
		if q.Succeeded {
			successes++
		} else {
			failures++
		}
	}

	switch {
	case failures >= questsToWin:
		e.finish(Outcome{Winner: Evil, Reason: ReasonQuestsFailed})
	case successes >= questsToWin:
		if e.hasCharacter(Assassin) && e.hasCharacter(Merlin) {
			e.phase = Assassination
			log.Info().Msg("good completed three quests, the Assassin may name Merlin")
			return
		}
		e.finish(Outcome{Winner: Good, Reason: ReasonQuestsSucceeded})
	default:
		e.round++
		if e.lady != nil && completed >= firstLadyRound {
			e.phase = LadyOfTheLake
			return
		}
		e.phase = TeamBuilding
	}
}

func (e *Engine) finish(outcome Outcome) {
	e.phase = GameOver
	e.team = nil
	e.votes = nil
	e.questVotes = nil
	e.outcome = &outcome
	log.Info().Stringer("winner", outcome.Winner).Str("reason", outcome.Reason).Msg("game over")
}
