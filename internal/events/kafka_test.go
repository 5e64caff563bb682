package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, sarama.NewConfig())
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var e Event
		if err := json.Unmarshal(val, &e); err != nil {
			return err
		}
		if e.Type != OrderPlaced || e.OrderID != 7 || !e.TotalAmount.Equal(decimal.NewFromInt(250)) {
			return errors.New("unexpected event payload")
		}
		return nil
	})

	pub := NewKafkaPublisherWithProducer(producer, "storefront.orders")
	err := pub.Publish(context.Background(), New(OrderPlaced, 7, 42, "pending", decimal.NewFromInt(250)))
	require.NoError(t, err)
	require.NoError(t, pub.Close())
}

func TestKafkaPublisher_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, sarama.NewConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewKafkaPublisherWithProducer(producer, "storefront.orders")
	err := pub.Publish(context.Background(), New(OrderStatusChanged, 7, 42, "paid", decimal.Zero))
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, pub.Close())
}

func TestKafkaPublisher_CanceledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, sarama.NewConfig())
	pub := NewKafkaPublisherWithProducer(producer, "storefront.orders")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, pub.Publish(ctx, New(OrderPlaced, 1, 1, "pending", decimal.Zero)), context.Canceled)
	require.NoError(t, pub.Close())
}

func TestNew_AssignsIdentity(t *testing.T) {
	a := New(OrderPlaced, 1, 2, "pending", decimal.Zero)
	b := New(OrderPlaced, 1, 2, "pending", decimal.Zero)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.OccurredAt.IsZero())
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), a))
}
