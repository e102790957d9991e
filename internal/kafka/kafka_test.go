package kafka

import (
	"encoding/json"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"log/slog"
	"testing"
)

func TestUnwrapPayload(t *testing.T) {
	type payload struct {
		ID int64 `json:"id"`
	}
	got, err := UnwrapPayload[payload](json.RawMessage(`{"id":7}`))
	require.NoError(t, err)
	assert.EqualValues(t, 7, got.ID)

	_, err = UnwrapPayload[payload](json.RawMessage(`{`))
	assert.ErrorContains(t, err, "decode payload")
}

func TestMustMarshalPanicsOnUnsupported(t *testing.T) {
	assert.Equal(t, `{"a":1}`, string(MustMarshal(map[string]int{"a": 1})))
	assert.Panics(t, func() { MustMarshal(make(chan int)) })
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:1"}, "t", 1, nil)
	p.Close()
	p.Close()
	assert.NotPanics(t, func() { p.Publish([]byte("k"), []byte("v")) })
}

func TestEventHeaders(t *testing.T) {
	m := kafkago.Message{Headers: EventHeaders("catalog.products.created", 1)}
	assert.Equal(t, "catalog.products.created", HeaderValue(m, HeaderEventType))
	assert.Equal(t, "1", HeaderValue(m, HeaderEventVersion))
	assert.Equal(t, "", HeaderValue(m, "missing"))
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:1"}, "t", 1, slog.New(slog.NewTextHandler(io.Discard, nil)))
	p.Publish([]byte("a"), []byte("1"))
	assert.NotPanics(t, func() { p.Publish([]byte("b"), []byte("2")) })
	assert.Len(t, p.inbox, 1)
	p.Close()
}
