package history

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilPublisherIsNoOp(t *testing.T) {
	p := NewPublisher("")
	require.Nil(t, p)

	ctx := context.Background()
	assert.NoError(t, p.Publish(ctx, Record{GameID: uuid.New(), Type: "player_join"}))
	assert.NoError(t, p.Ping(ctx))
	assert.NoError(t, p.Close())
}

func TestRecordJSONShape(t *testing.T) {
	rec := Record{
		GameID:    uuid.New(),
		Index:     3,
		ActorID:   uuid.New(),
		Type:      "card_play",
		Payload:   map[string]any{"card": 12},
		Timestamp: 1700000000000,
	}
	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, rec.GameID.String(), decoded["gameId"])
	assert.Equal(t, "card_play", decoded["type"])
	assert.EqualValues(t, 3, decoded["index"])
	assert.EqualValues(t, 12, decoded["payload"].(map[string]any)["card"])
}
