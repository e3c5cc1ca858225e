package game

import (
	"fmt"
	"sort"

	"github.com/peetznvr/prsi-414/engine"
)

// actionLabel describes the action demanded of the current player:
// "pass" while an ace is in effect, "draw N" for a forced multi-draw,
// plain "draw" for a normal turn (drawing one is always a legal
// alternative to playing).
// Assumes lock is held by caller.
func (g *Game) actionLabel() string {
	switch {
	case g.pendingDraw == 0:
		return "pass"
	case g.pendingDraw == 1:
		return "draw"
	default:
		return fmt.Sprintf("draw %d", g.pendingDraw)
	}
}

// stateFor projects the global state down to what seat i may see: its
// own hand, the shared upcard, the demanded action if and only if the
// seat is current, and the other seats by rotation-relative offset.
// No other player's hand ever enters the projection.
// Assumes lock is held by caller.
func (g *Game) stateFor(i int) StateMessage {
	n := len(g.players)
	msg := StateMessage{
		Cards:   sortedHand(g.players[i].Hand),
		Upcard:  int(g.upcard),
		Start:   n,
		Playing: (n - i) % n,
		Names:   make(map[int]string),
	}
	if i == g.current {
		msg.Action = g.actionLabel()
	}
	for j, p := range g.players {
		if j == i {
			continue
		}
		msg.Names[(j-i+n)%n] = p.Name
	}
	if g.upcard.Rank() == engine.RankQueen {
		suit := int(g.upcard.Suit())
		msg.Suit = &suit
	}
	return msg
}

// broadcastState sends every player their full state refresh.
// Assumes lock is held by caller.
func (g *Game) broadcastState() {
	for i, p := range g.players {
		g.sendTo(p, g.stateFor(i))
	}
}

// broadcastTurn sends every player the outcome of a resolved action:
// new upcard, the next player's demanded action, the actor's remaining
// hand size, the chosen wild suit if a queen was just played, and the
// terminal notice ("You won." to the winner, "You play." to the new
// current player).
// Assumes lock is held by caller.
func (g *Game) broadcastTurn(actorIdx int, chosenSuit *int, won bool) {
	n := len(g.players)
	count := len(g.players[actorIdx].Hand)
	for i, p := range g.players {
		isNext := i == g.current
		msg := TurnMessage{
			Upcard:  int(g.upcard),
			Playing: (n - i) % n,
			Count:   count,
			Suit:    chosenSuit,
		}
		if isNext {
			msg.Action = g.actionLabel()
		}
		switch {
		case won && i == actorIdx:
			msg.Message = "You won."
		case isNext:
			msg.Message = "You play."
		}
		g.sendTo(p, msg)
	}
}

// sortedHand returns the hand's card values in ascending order. Hands
// are unordered sets; sorting just keeps the wire output stable.
func sortedHand(hand map[engine.Card]struct{}) []int {
	cards := make([]int, 0, len(hand))
	for c := range hand {
		cards = append(cards, int(c))
	}
	sort.Ints(cards)
	return cards
}
