package engine

import "errors"

// ErrEmptyDeck is returned by DrawTop when no cards remain. Callers must
// treat it as "no more cards to deal", never as a fatal condition.
var ErrEmptyDeck = errors.New("deck is empty")

// Deck is the ordered sequence of cards not currently held by a player
// and not the upcard. Drawing removes from the top (end of the slice);
// recycled upcards re-enter at the bottom (front), so discards
// recirculate rather than vanish.
type Deck struct {
	cards []Card
	rng   uint64
}

// NewDeck returns a deck containing each of the 32 cards exactly once,
// shuffled with an unbiased Fisher–Yates permutation.
func NewDeck(seed uint64) *Deck {
	d := &Deck{
		cards: make([]Card, DeckSize),
		rng:   seed,
	}
	if d.rng == 0 {
		d.rng = 1 // xorshift can't start at 0
	}
	for i := range d.cards {
		d.cards[i] = Card(i)
	}
	for i := len(d.cards) - 1; i > 0; i-- {
		j := int(d.randN(uint64(i + 1)))
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	return d
}

// DeckFrom returns a deck holding exactly the given cards in order, the
// last one on top. Used to seed deterministic states in tests.
func DeckFrom(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards)), rng: 1}
	copy(d.cards, cards)
	return d
}

func (d *Deck) nextRand() uint64 {
	x := d.rng
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	d.rng = x
	return x
}

// randN returns a random number in [0, n).
func (d *Deck) randN(n uint64) uint64 {
	return d.nextRand() % n
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int { return len(d.cards) }

// DrawTop removes and returns the top card.
func (d *Deck) DrawTop() (Card, error) {
	if len(d.cards) == 0 {
		return 0, ErrEmptyDeck
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c, nil
}

// ReturnToBottom inserts a card at the bottom, the opposite end from
// DrawTop.
func (d *Deck) ReturnToBottom(c Card) {
	d.cards = append([]Card{c}, d.cards...)
}
