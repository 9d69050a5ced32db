package game

// Reveal is one line of what a viewer knows about another player. Exactly
// one of Faction or Candidates is set.
type Reveal struct {
	Player     string      `json:"player"`
	Faction    Faction     `json:"faction,omitempty"`
	Candidates []Character `json:"candidates,omitempty"`
}

type Secrets struct {
	Character    Character     `json:"character"`
	Faction      Faction       `json:"faction"`
	Abilities    string        `json:"abilities"`
	Reveals      []Reveal      `json:"reveals"`
	LadyFindings []LadyFinding `json:"ladyFindings,omitempty"`
}

type LobbyState struct {
	Players    []string    `json:"players"`
	Characters []Character `json:"characters"`
	Lady       bool        `json:"lady"`
	Startable  bool        `json:"startable"`
}

// GameState is what one viewer of a guild is allowed to see.
type GameState struct {
	Guild   string      `json:"guild"`
	Running bool        `json:"running"`
	Lobby   *LobbyState `json:"lobby,omitempty"`

	State        Phase                `json:"state"`
	Players      []string             `json:"players,omitempty"`
	CurrentQuest int                  `json:"current,omitempty"`
	Quest        Round                `json:"quest"`
	Suggester    string               `json:"suggester,omitempty"`
	Suggested    []string             `json:"suggestedPlayers,omitempty"`
	Voted        []string             `json:"playersVoted,omitempty"`
	QuestVoted   []string             `json:"playersVotedForCurrQuest,omitempty"`
	LastVote     *TeamVote            `json:"lastVote,omitempty"`
	Results      []QuestResult        `json:"results"`
	Rejects      int                  `json:"rejects"`
	LadyHolder   string               `json:"ladyHolder,omitempty"`
	LadyLog      []LadyExamination    `json:"ladyLog,omitempty"`
	Secrets      *Secrets             `json:"secrets,omitempty"`
	PlayerInfo   map[string]Character `json:"playerToCharacters,omitempty"`
	Outcome      *Outcome             `json:"outcome,omitempty"`
}

// Secrets builds the private view of user: the own character and the
// players revealed through Sees. Nil for someone outside the game.
func (e *Engine) Secrets(user string) *Secrets {
	seat, ok := e.seats[user]
	if !ok {
		return nil
	}
	me := e.players[seat].Character
	s := &Secrets{
		Character:    me,
		Faction:      me.Faction(),
		Abilities:    me.Abilities(),
		Reveals:      make([]Reveal, 0),
		LadyFindings: e.LadyFindings(user),
	}

	for i, p := range e.players {
		if i == seat || !me.CanSee(p.Character) {
			continue
		}
		if me.Ambiguous() {
			s.Reveals = append(s.Reveals, Reveal{Player: p.User, Candidates: me.Sees()})
		} else {
			s.Reveals = append(s.Reveals, Reveal{Player: p.User, Faction: p.Character.Faction()})
		}
	}
	return s
}

func newLobbyState(cfg *Config) *LobbyState {
	return &LobbyState{
		Players:    cfg.Players(),
		Characters: cfg.Characters(),
		Lady:       cfg.LadyOfTheLake(),
		Startable:  cfg.Startable(),
	}
}

func newGameState(guild string, cfg *Config, e *Engine, viewer string) GameState {
	state := GameState{Guild: guild, Results: make([]QuestResult, 0)}
	if cfg != nil {
		state.Lobby = newLobbyState(cfg)
	}
	if e == nil {
		return state
	}

	state.Running = e.phase != GameOver
	state.State = e.phase
	for _, p := range e.players {
		state.Players = append(state.Players, p.User)
	}
	state.CurrentQuest = e.round
	state.Quest = e.CurrentRound()
	state.Suggester = e.Leader()
	state.Suggested = e.Team()
	state.Voted = e.Voted()
	state.QuestVoted = e.QuestVoted()
	state.LastVote = e.lastVote
	state.Results = e.History()
	state.Rejects = e.rejects
	state.LadyHolder, _ = e.LadyHolder()
	state.LadyLog = e.LadyLog()
	state.Secrets = e.Secrets(viewer)
	state.Outcome = e.outcome

	if e.phase == GameOver {
		state.PlayerInfo = make(map[string]Character, len(e.players))
		for _, p := range e.players {
			state.PlayerInfo[p.User] = p.Character
		}
	}
	return state
}
