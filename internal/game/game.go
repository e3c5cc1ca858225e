// Package game implements the Prší table: seating, dealing, the turn
// state machine and the per-player state projection.
package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/peetznvr/prsi-414/engine"
	"github.com/peetznvr/prsi-414/internal/history"
)

// ErrGameInProgress is returned by Join while a hand is underway.
var ErrGameInProgress = errors.New("game already in progress")

const maxNameLen = 20

// Player is one seat at the table. Identity is assigned at join time and
// stable for the seat's lifetime.
type Player struct {
	ID   uuid.UUID
	Name string
	Sink Sink
	Hand map[engine.Card]struct{}
}

// Game is the authoritative state of one table. All exported methods
// serialize on the internal mutex; the game never calls itself
// re-entrantly and Sinks must not call back in.
type Game struct {
	ID uuid.UUID

	mu          sync.Mutex
	players     []*Player
	deck        *engine.Deck
	upcard      engine.Card
	pendingDraw int
	current     int
	started     bool
	finished    bool
	winner      uuid.UUID

	seed func() uint64

	log         *logrus.Entry
	history     *history.Publisher
	actionIndex int
}

// New creates an empty table. The history publisher may be nil.
func New(logger *logrus.Logger, hist *history.Publisher) *Game {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	id := uuid.New()
	return &Game{
		ID:          id,
		pendingDraw: 1,
		seed:        func() uint64 { return uint64(time.Now().UnixNano()) },
		log:         logger.WithField("game", id),
		history:     hist,
	}
}

// Join seats a new player with an empty hand at the end of the table and
// returns the assigned identity. Joins are refused while a hand is in
// progress; a table whose hand has finished accepts players again.
func (g *Game) Join(sink Sink, name string) (uuid.UUID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.started && !g.finished {
		return uuid.Nil, ErrGameInProgress
	}
	p := &Player{
		ID:   uuid.New(),
		Name: truncateName(name),
		Sink: sink,
		Hand: make(map[engine.Card]struct{}),
	}
	g.players = append(g.players, p)
	g.log.WithFields(logrus.Fields{"player": p.ID, "name": p.Name}).Info("player joined")
	g.logAction(p.ID, "player_join", map[string]any{"name": p.Name})
	return p.ID, nil
}

// Start deals a fresh hand: shuffled 32-card deck, four cards per seat in
// seating order, one upcard. No-op without players. Starting again after
// a finished hand resets the table.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.players) == 0 {
		return
	}
	g.deck = engine.NewDeck(g.seed())
	for _, p := range g.players {
		p.Hand = make(map[engine.Card]struct{})
		for i := 0; i < engine.HandSize; i++ {
			c, err := g.deck.DrawTop()
			if err != nil {
				break // more seats than the deck can serve
			}
			p.Hand[c] = struct{}{}
		}
	}
	up, err := g.deck.DrawTop()
	if err != nil {
		g.log.Warn("deck exhausted before upcard flip, start aborted")
		return
	}
	g.upcard = up
	switch up.Rank() {
	case engine.RankSeven:
		g.pendingDraw = 2
	case engine.RankAce:
		g.pendingDraw = 0
	default:
		g.pendingDraw = 1
	}
	g.current = 0
	g.started = true
	g.finished = false
	g.winner = uuid.Nil

	g.log.WithField("players", len(g.players)).Info("hand started")
	g.logAction(uuid.Nil, "game_start", map[string]any{"players": len(g.players)})
	g.broadcastState()
}

// HandleAction applies one inbound player message: rename, draw/pass, or
// play a card. Rule violations are answered with a Notice to the acting
// player only; nothing here mutates state on a rejected action.
func (g *Game) HandleAction(playerID uuid.UUID, act Action) {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx := g.indexOf(playerID)
	if idx == -1 {
		g.log.WithField("player", playerID).Debug("action from unseated player dropped")
		return
	}
	p := g.players[idx]

	if !g.started || g.finished {
		g.log.WithField("player", playerID).Debug("action outside an active hand dropped")
		return
	}
	if idx != g.current {
		g.sendTo(p, Notice{Message: "Not your turn."})
		return
	}
	if act.Name != "" {
		p.Name = truncateName(act.Name)
		g.logAction(playerID, "player_rename", map[string]any{"name": p.Name})
		g.broadcastState()
		return
	}
	if act.Card == nil {
		g.sendTo(p, Notice{Message: "Malformed action."})
		return
	}

	var chosenSuit *int

	if *act.Card == DrawCard {
		drawn := make([]int, 0, g.pendingDraw)
		for i := 0; i < g.pendingDraw; i++ {
			c, err := g.deck.DrawTop()
			if err != nil {
				break // deck ran dry: draw what was available
			}
			p.Hand[c] = struct{}{}
			drawn = append(drawn, int(c))
		}
		if len(drawn) > 0 {
			g.sendTo(p, DrawnMessage{Cards: drawn})
		}
		g.pendingDraw = 1
		g.logAction(playerID, "card_draw", map[string]any{"count": len(drawn)})
	} else {
		card := engine.Card(*act.Card)
		if !card.Valid() {
			g.sendTo(p, Notice{Message: "You don't have this card."})
			return
		}
		if _, ok := p.Hand[card]; !ok {
			g.sendTo(p, Notice{Message: "You don't have this card."})
			return
		}
		if g.pendingDraw > 1 && card.Rank() != engine.RankSeven {
			g.sendTo(p, Notice{Message: "You can play only Seven on top of Seven."})
			return
		}
		if g.pendingDraw == 0 && card.Rank() != engine.RankAce {
			g.sendTo(p, Notice{Message: "You can play only Ace on top of Ace."})
			return
		}
		if g.pendingDraw == 1 && !card.Matches(g.upcard) {
			g.sendTo(p, Notice{Message: "You can play only a card with the same suit or rank."})
			return
		}

		played := card
		if card.Rank() == engine.RankQueen {
			suit, ok := parseSuit(act.Suit)
			if !ok {
				g.sendTo(p, Notice{Message: "Choose suit."})
				return
			}
			// The chosen suit is re-encoded into the upcard so it drives
			// all subsequent matching.
			played = engine.NewCard(suit, engine.RankQueen)
			s := int(suit)
			chosenSuit = &s
		}

		delete(p.Hand, card)
		switch card.Rank() {
		case engine.RankSeven:
			g.pendingDraw += 2
		case engine.RankAce:
			g.pendingDraw = 0
		}
		g.deck.ReturnToBottom(g.upcard)
		g.upcard = played
		g.logAction(playerID, "card_play", map[string]any{"card": int(card), "upcard": int(played)})
	}

	won := len(p.Hand) == 0
	if won {
		g.finished = true
		g.winner = playerID
		g.log.WithField("player", playerID).Info("hand won")
		g.logAction(playerID, "game_win", nil)
	}

	next := (g.current + 1) % len(g.players)
	if g.pendingDraw == 0 {
		// An ace is in effect: the following player is skipped.
		next = (next + 1) % len(g.players)
	}
	g.current = next

	g.broadcastTurn(idx, chosenSuit, won)
}

// RemovePlayer unseats the given identity. The leaver's cards return to
// the bottom of the deck so the 32-card conservation invariant survives
// a mid-game departure, and the turn passes to the next still-seated
// player in rotation order.
func (g *Game) RemovePlayer(playerID uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx := g.indexOf(playerID)
	if idx == -1 {
		return
	}
	p := g.players[idx]
	if g.started && g.deck != nil {
		for c := range p.Hand {
			g.deck.ReturnToBottom(c)
		}
	}
	g.players = append(g.players[:idx], g.players[idx+1:]...)
	g.log.WithField("player", playerID).Info("player left")
	g.logAction(playerID, "player_leave", nil)

	if len(g.players) == 0 {
		return
	}
	if idx < g.current {
		g.current--
	}
	if g.current >= len(g.players) {
		g.current = 0
	}
	g.broadcastState()
}

// PlayerCount returns the number of seated players.
func (g *Game) PlayerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.players)
}

// Started reports whether a hand is currently in progress.
func (g *Game) Started() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.started && !g.finished
}

// indexOf resolves a player ID to a seat index, -1 if unseated.
// Assumes lock is held by caller.
func (g *Game) indexOf(playerID uuid.UUID) int {
	for i, p := range g.players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// sendTo delivers one message to one player, logging delivery failures.
// Assumes lock is held by caller.
func (g *Game) sendTo(p *Player, v any) {
	if p.Sink == nil {
		return
	}
	if err := p.Sink.Send(v); err != nil {
		g.log.WithField("player", p.ID).WithError(err).Warn("message delivery failed")
	}
}

// logAction publishes an audit record for the action trail.
// Assumes lock is held by caller.
func (g *Game) logAction(actorID uuid.UUID, actionType string, payload map[string]any) {
	g.actionIndex++
	rec := history.Record{
		GameID:    g.ID,
		Index:     g.actionIndex,
		ActorID:   actorID,
		Type:      actionType,
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	}
	if g.history == nil {
		return
	}
	go func(rec history.Record) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := g.history.Publish(ctx, rec); err != nil {
			g.log.WithError(err).Warnf("publishing action %d failed", rec.Index)
		}
	}(rec)
}

// truncateName clips a display name to 20 characters.
func truncateName(name string) string {
	r := []rune(name)
	if len(r) > maxNameLen {
		r = r[:maxNameLen]
	}
	return string(r)
}

// parseSuit interprets a single lowercase letter 'a'–'d' as a suit index.
func parseSuit(s string) (uint8, bool) {
	if len(s) != 1 || s[0] < 'a' {
		return 0, false
	}
	suit := s[0] - 'a'
	if suit >= engine.NumSuits {
		return 0, false
	}
	return suit, true
}
