package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peetznvr/prsi-414/engine"
)

func TestProjectionNeverLeaksOtherHands(t *testing.T) {
	g, sinks, _ := seedTable(t,
		[][]engine.Card{{1, 2}, {16, 17}, {24, 25}},
		engine.Card(3), 1, nil)

	g.mu.Lock()
	g.broadcastState()
	g.mu.Unlock()

	want := [][]int{{1, 2}, {16, 17}, {24, 25}}
	for i, s := range sinks {
		st := s.lastState()
		require.NotNil(t, st)
		assert.Equal(t, want[i], st.Cards, "seat %d must see exactly its own hand", i)
	}
}

func TestProjectionNamesByRelativeOffset(t *testing.T) {
	g, sinks, _ := seedTable(t,
		[][]engine.Card{{1}, {16}, {24}},
		engine.Card(3), 1, nil)

	g.mu.Lock()
	g.broadcastState()
	g.mu.Unlock()

	st := sinks[0].lastState()
	require.NotNil(t, st)
	assert.Equal(t, map[int]string{1: "P2", 2: "P3"}, st.Names)

	st = sinks[1].lastState()
	require.NotNil(t, st)
	assert.Equal(t, map[int]string{1: "P3", 2: "P1"}, st.Names)

	st = sinks[2].lastState()
	require.NotNil(t, st)
	assert.Equal(t, map[int]string{1: "P1", 2: "P2"}, st.Names)
}

func TestProjectionRotationCounter(t *testing.T) {
	g, sinks, _ := seedTable(t,
		[][]engine.Card{{1}, {16}, {24}},
		engine.Card(3), 1, nil)

	g.mu.Lock()
	g.broadcastState()
	g.mu.Unlock()

	for i, want := range []int{0, 2, 1} {
		st := sinks[i].lastState()
		require.NotNil(t, st)
		assert.Equal(t, want, st.Playing, "seat %d", i)
		assert.Equal(t, 3, st.Start)
	}
}

func TestProjectionActionOnlyForCurrent(t *testing.T) {
	g, sinks, _ := seedTable(t,
		[][]engine.Card{{1}, {16}},
		engine.Card(3), 2, nil)

	g.mu.Lock()
	g.broadcastState()
	g.mu.Unlock()

	st := sinks[0].lastState()
	require.NotNil(t, st)
	assert.Equal(t, "draw 2", st.Action)

	st = sinks[1].lastState()
	require.NotNil(t, st)
	assert.Empty(t, st.Action)
}

func TestProjectionSuitOnQueenUpcard(t *testing.T) {
	g, sinks, _ := seedTable(t,
		[][]engine.Card{{1}, {16}},
		engine.NewCard(3, engine.RankQueen), 1, nil)

	g.mu.Lock()
	g.broadcastState()
	g.mu.Unlock()

	for _, s := range sinks {
		st := s.lastState()
		require.NotNil(t, st)
		require.NotNil(t, st.Suit)
		assert.Equal(t, 3, *st.Suit)
	}
}

func TestActionLabel(t *testing.T) {
	g := New(nil, nil)
	cases := []struct {
		pending int
		want    string
	}{
		{0, "pass"},
		{1, "draw"},
		{2, "draw 2"},
		{5, "draw 5"},
	}
	for _, tc := range cases {
		g.pendingDraw = tc.pending
		assert.Equal(t, tc.want, g.actionLabel())
	}
}

func TestTurnMessageOmitsEmptyOptionals(t *testing.T) {
	data, err := json.Marshal(TurnMessage{Upcard: 3, Playing: 1, Count: 2})
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.NotContains(t, m, "suit")
	assert.NotContains(t, m, "message")
	assert.Contains(t, m, "action", "action stays present even when empty")

	suit := 2
	data, err = json.Marshal(TurnMessage{Suit: &suit, Message: "You play."})
	require.NoError(t, err)
	m = map[string]any{}
	require.NoError(t, json.Unmarshal(data, &m))
	assert.EqualValues(t, 2, m["suit"])
	assert.Equal(t, "You play.", m["message"])
}

func TestNoticeCarriesOnlyMessage(t *testing.T) {
	data, err := json.Marshal(Notice{Message: "Not your turn."})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Not your turn."}`, string(data))
}
