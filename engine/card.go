// Package engine implements the Prší card primitives.
//
// This package is deliberately dependency-free: a packed integer card
// codec and a mutable deck, with no game policy. The table state machine
// in internal/game builds the rules on top of it.
package engine

const (
	NumSuits = 4
	NumRanks = 8
	DeckSize = NumSuits * NumRanks // 32
	HandSize = 4
)

// Rank constants — the ranks that carry special effects.
const (
	RankSeven uint8 = 0 // forces the next player to draw, stackable
	RankQueen uint8 = 5 // wild: the player chooses the effective suit
	RankAce   uint8 = 7 // skips the following player's turn
)

// Card is a packed uint8 in [0, DeckSize): suit*NumRanks + rank.
type Card uint8

// NewCard constructs a Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card(suit*NumRanks + rank)
}

// Suit returns the suit index (0–3).
func (c Card) Suit() uint8 { return uint8(c) / NumRanks }

// Rank returns the rank index (0–7).
func (c Card) Rank() uint8 { return uint8(c) % NumRanks }

// Valid reports whether c encodes one of the 32 deck cards.
func (c Card) Valid() bool { return uint8(c) < DeckSize }

// Matches reports whether c may be played on top of upcard under the
// plain suit-or-rank matching rule. Special-card chains are the table's
// concern, not the codec's.
func (c Card) Matches(upcard Card) bool {
	return c.Suit() == upcard.Suit() || c.Rank() == upcard.Rank()
}
