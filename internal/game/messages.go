package game

// DrawCard is the inbound sentinel meaning "draw / pass" instead of
// playing a specific card.
const DrawCard = 32

// Sink is the one capability the table needs from the transport layer:
// deliver one message object to one player. Implementations must not
// call back into the table from Send.
type Sink interface {
	Send(v any) error
}

// Action is an inbound player message. Exactly one of Name or Card is
// expected; Suit accompanies Card only when playing a queen.
type Action struct {
	// Name requests a rename when non-empty.
	Name string `json:"name,omitempty"`
	// Card is a card value in [0,32), or DrawCard to draw/pass.
	Card *int `json:"card,omitempty"`
	// Suit is a single lowercase letter 'a'–'d' selecting the wild suit.
	Suit string `json:"suit,omitempty"`
}

// StateMessage is the full per-player state refresh sent on start, on
// rename and on membership changes. Cards holds only the recipient's own
// hand; other hands are never projected.
type StateMessage struct {
	Cards   []int          `json:"cards"`
	Upcard  int            `json:"upcard"`
	Action  string         `json:"action"` // required action if recipient is current, else ""
	Start   int            `json:"start"`  // total seat count
	Playing int            `json:"playing"`
	Names   map[int]string `json:"names"` // relative seat offset -> display name
	Suit    *int           `json:"suit,omitempty"`
}

// TurnMessage is the broadcast after each resolved play or draw.
type TurnMessage struct {
	Upcard  int    `json:"upcard"`
	Action  string `json:"action"`
	Playing int    `json:"playing"`
	Count   int    `json:"count"` // acting player's remaining hand size
	Suit    *int   `json:"suit,omitempty"`
	Message string `json:"message,omitempty"`
}

// Notice carries a human-readable rule-violation reply. Receiving one
// means no state changed.
type Notice struct {
	Message string `json:"message"`
}

// DrawnMessage tells the drawing player exactly which cards entered
// their hand. Sent only to that player.
type DrawnMessage struct {
	Cards []int `json:"cards"`
}
