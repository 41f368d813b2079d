package cache

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegisops/actiongate/pkg/infra/cache/event"
)

func TestRedisEventPublisher_Publish(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()
	publisher := NewRedisEventPublisher(&client{redisClient: redisClient})

	evt := event.BlockStateChangedEvent{
		SubjectKey: "ip:10.0.0.9",
		Blocked:    true,
		Reason:     "manual block",
		Actor:      "admin",
	}

	body, err := json.Marshal(evt)
	require.NoError(t, err)
	payload, err := json.Marshal(RedisMessage{Type: evt.Type(), Event: body})
	require.NoError(t, err)

	mock.ExpectPublish(string(EventsChannel), payload).SetVal(1)

	err = publisher.Publish(context.Background(), EventsChannel, evt)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisEventPublisher_PublishError(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()
	publisher := NewRedisEventPublisher(&client{redisClient: redisClient})

	evt := event.AlertRaisedEvent{
		Principal: "alice",
		Address:   "203.0.113.7",
		Kind:      "login",
		Severity:  "high",
		Reason:    "blocked address",
	}

	body, err := json.Marshal(evt)
	require.NoError(t, err)
	payload, err := json.Marshal(RedisMessage{Type: evt.Type(), Event: body})
	require.NoError(t, err)

	mock.ExpectPublish(string(EventsChannel), payload).SetErr(assert.AnError)

	err = publisher.Publish(context.Background(), EventsChannel, evt)
	assert.Error(t, err)
}
