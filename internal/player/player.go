// Package player defines the immutable player record shared by the engine,
// scoring and the bot.
package player

import (
	"slices"

	"github.com/lox/finest9/cards"
)

// Player is a value object. The With* methods return updated copies so that
// snapshots handed to observers never change underneath them.
type Player struct {
	ID       string
	Name     string
	IsBot    bool
	Tableau  []cards.Card // face-up hand
	Captured []cards.Card // scored pile
	Score    int
}

// New creates a player with an empty tableau and captured pile.
func New(id, name string, isBot bool) Player {
	return Player{ID: id, Name: name, IsBot: isBot}
}

// WithTableau returns a copy of p holding tableau.
func (p Player) WithTableau(tableau []cards.Card) Player {
	p.Tableau = slices.Clone(tableau)
	p.Captured = slices.Clone(p.Captured)
	return p
}

// WithCaptured returns a copy of p holding captured.
func (p Player) WithCaptured(captured []cards.Card) Player {
	p.Tableau = slices.Clone(p.Tableau)
	p.Captured = slices.Clone(captured)
	return p
}

// WithScore returns a copy of p with the given running score.
func (p Player) WithScore(score int) Player {
	c := p.Clone()
	c.Score = score
	return c
}

// Clone returns a deep copy of p.
func (p Player) Clone() Player {
	p.Tableau = slices.Clone(p.Tableau)
	p.Captured = slices.Clone(p.Captured)
	return p
}

// Reset returns p with no cards and a zero score, keeping its identity.
func (p Player) Reset() Player {
	return New(p.ID, p.Name, p.IsBot)
}

// HasCard reports whether the tableau holds a card with the given ID.
func (p Player) HasCard(id string) bool {
	return slices.ContainsFunc(p.Tableau, func(c cards.Card) bool { return c.ID() == id })
}
