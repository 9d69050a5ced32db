package main

import (
	"sync"

	"github.com/google/uuid"

	"github.com/orhalimi/avalon_server/game"
)

// Interaction is a button or menu posted to a guild and waiting for presses.
// The concrete types are JoinRequest and RoleSelection.
type Interaction interface {
	guild() string
}

// JoinRequest is a join button: every press seats the presser.
type JoinRequest struct {
	Guild string
}

// RoleSelection is a role menu: a press replaces the enabled roles with the
// chosen options.
type RoleSelection struct {
	Guild   string
	Options []game.Character
}

func (j JoinRequest) guild() string { return j.Guild }
func (r RoleSelection) guild() string { return r.Guild }

func (r RoleSelection) allows(ch game.Character) bool {
	for _, o := range r.Options {
		if o == ch {
			return true
		}
	}
	return false
}

type PendingInteractions struct {
	mu      sync.Mutex
	pending map[string]Interaction
}

func NewPendingInteractions() *PendingInteractions {
	return &PendingInteractions{pending: make(map[string]Interaction)}
}

// Open stores i and returns the id clients press it by.
func (p *PendingInteractions) Open(i Interaction) string {
	id := uuid.New().String()
	p.mu.Lock()
	p.pending[id] = i
	p.mu.Unlock()
	return id
}

func (p *PendingInteractions) Get(id string) (Interaction, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i, ok := p.pending[id]
	return i, ok
}

// CloseGuild drops every interaction posted to guild.
func (p *PendingInteractions) CloseGuild(guild string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for id, i := range p.pending {
		if i.guild() == guild {
			delete(p.pending, id)
			n++
		}
	}
	return n
}

// specialCharacters are the options of a role menu.
func specialCharacters() []game.Character {
	var chars []game.Character
	for _, ch := range game.Characters {
		if !ch.Mandatory() {
			chars = append(chars, ch)
		}
	}
	return chars
}
