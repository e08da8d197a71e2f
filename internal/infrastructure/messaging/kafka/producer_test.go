package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/WellNodal/pkg/errors"
)

type capturingWriter struct {
	msgs []kafkago.Message
	err  error
}

func (w *capturingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *capturingWriter) Close() error { return nil }

func TestPublishWrapsPayloadInEnvelope(t *testing.T) {
	w := &capturingWriter{}
	p := newProducerWithWriter(w, logging.NewNopLogger())

	payload := DesignUpdatedPayload{WellID: "w1", Revision: 3, NodalPoint: 850}
	require.NoError(t, p.Publish(context.Background(), TopicDesignUpdated, "w1", payload))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, TopicDesignUpdated, msg.Topic)
	assert.Equal(t, []byte("w1"), msg.Key)

	var env EventEnvelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, TopicDesignUpdated, env.EventType)
	assert.Equal(t, "wellnodal", env.Source)
	assert.NotEmpty(t, env.EventID)
	assert.WithinDuration(t, time.Now(), env.Timestamp, time.Minute)

	var got DesignUpdatedPayload
	require.NoError(t, json.Unmarshal(env.Payload, &got))
	assert.Equal(t, payload, got)

	assert.Equal(t, int64(1), p.Sent())
	assert.Equal(t, int64(0), p.Failed())
}

func TestPublishWriteFailure(t *testing.T) {
	w := &capturingWriter{err: assert.AnError}
	p := newProducerWithWriter(w, logging.NewNopLogger())

	err := p.Publish(context.Background(), TopicRunFailed, "w1", RunFailedPayload{RunID: "r1"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeExternalService))
	assert.Equal(t, int64(1), p.Failed())
}

func TestPublishAfterClose(t *testing.T) {
	p := newProducerWithWriter(&capturingWriter{}, logging.NewNopLogger())
	require.NoError(t, p.Close())
	require.NoError(t, p.Close()) // idempotent

	err := p.Publish(context.Background(), TopicRunCompleted, "w1", RunCompletedPayload{})
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	var pub Publisher = NopPublisher{}
	assert.NoError(t, pub.Publish(context.Background(), TopicDesignUpdated, "k", nil))
	assert.NoError(t, pub.Close())
}
