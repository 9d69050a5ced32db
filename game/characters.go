package game

import (
	"fmt"
	"strings"
)

type Faction int

const (
	// Unknown is what a viewer gets for a player whose loyalty is hidden.
	Unknown Faction = iota
	Good
	Evil
)

func (f Faction) String() string {
	switch f {
	case Good:
		return "Good"
	case Evil:
		return "Evil"
	}
	return "Unknown"
}

func (f Faction) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

type Character int

const (
	LoyalServant Character = iota
	MinionOfMordred
	Assassin
	Merlin
	Mordred
	Morgana
	Oberon
	Percival
)

type characterDescription struct {
	name      string
	faction   Faction
	abilities string
	sees      []Character
}

var minionsOfMordred = []Character{MinionOfMordred, Mordred, Morgana, Assassin}

var charactersDescription = [...]characterDescription{
	LoyalServant: {
		name:      "Loyal-Servant-Of-Arthur",
		faction:   Good,
		abilities: "No special knowledge. Must always succeed quests.",
	},
	MinionOfMordred: {
		name:      "Minion-Of-Mordred",
		faction:   Evil,
		abilities: "Knows the other minions of Mordred, except Oberon.",
		sees:      minionsOfMordred,
	},
	Assassin: {
		name:      "Assassin",
		faction:   Evil,
		abilities: "Knows the other minions of Mordred. If the good side completes three quests, gets one guess at Merlin.",
		sees:      []Character{MinionOfMordred, Morgana, Mordred},
	},
	Merlin: {
		name:      "Merlin",
		faction:   Good,
		abilities: "Knows the minions of Mordred, except Mordred and Oberon. Must stay hidden from the Assassin.",
		sees:      []Character{Assassin, Morgana, MinionOfMordred},
	},
	Mordred: {
		name:      "Mordred",
		faction:   Evil,
		abilities: "Knows the other minions of Mordred. Hidden from Merlin.",
		sees:      minionsOfMordred,
	},
	Morgana: {
		name:      "Morgana",
		faction:   Evil,
		abilities: "Knows the other minions of Mordred. Appears as Merlin to Percival.",
		sees:      minionsOfMordred,
	},
	Oberon: {
		name:      "Oberon",
		faction:   Evil,
		abilities: "Does not know the other minions and is not known by them or by Merlin.",
	},
	Percival: {
		name:      "Percival",
		faction:   Good,
		abilities: "Sees Merlin and Morgana, but cannot tell which is which.",
		sees:      []Character{Merlin, Morgana},
	},
}

// Characters lists every character in declaration order.
var Characters = []Character{LoyalServant, MinionOfMordred, Assassin, Merlin, Mordred, Morgana, Oberon, Percival}

func (c Character) valid() bool {
	return c >= LoyalServant && int(c) < len(charactersDescription)
}

func (c Character) Name() string {
	if !c.valid() {
		return fmt.Sprintf("Character(%d)", int(c))
	}
	return charactersDescription[c].name
}

func (c Character) String() string { return c.Name() }

func (c Character) Faction() Faction {
	if !c.valid() {
		return Unknown
	}
	return charactersDescription[c].faction
}

func (c Character) Abilities() string {
	if !c.valid() {
		return ""
	}
	return charactersDescription[c].abilities
}

// Sees returns the characters whose holders are revealed to a holder of c.
// The returned slice is a copy.
func (c Character) Sees() []Character {
	if !c.valid() {
		return nil
	}
	return append([]Character(nil), charactersDescription[c].sees...)
}

// CanSee reports whether a holder of c is shown the holder of other.
func (c Character) CanSee(other Character) bool {
	if !c.valid() {
		return false
	}
	for _, ch := range charactersDescription[c].sees {
		if ch == other {
			return true
		}
	}
	return false
}

// Ambiguous reports whether c learns the players it sees only as a group of
// candidates rather than by loyalty.
func (c Character) Ambiguous() bool {
	return c == Percival
}

// Mandatory reports whether c is one of the two filler characters that are
// dealt implicitly and never toggled in the lobby.
func (c Character) Mandatory() bool {
	return c == LoyalServant || c == MinionOfMordred
}

func (c Character) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("unknown character %d", int(c))
	}
	return []byte(c.Name()), nil
}

func (c *Character) UnmarshalText(text []byte) error {
	ch, ok := ParseCharacter(string(text))
	if !ok {
		return fmt.Errorf("unknown character %q", string(text))
	}
	*c = ch
	return nil
}

// ParseCharacter accepts the display name in any case, with or without dashes.
func ParseCharacter(name string) (Character, bool) {
	norm := normalizeName(name)
	for _, c := range Characters {
		if normalizeName(c.Name()) == norm {
			return c, true
		}
	}
	switch norm {
	case "loyalservant", "servant":
		return LoyalServant, true
	case "minion":
		return MinionOfMordred, true
	}
	return 0, false
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, " ", "")
}
