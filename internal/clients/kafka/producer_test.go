package kafka

import (
	"context"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/model/events"
)

func Test_Publish_ShouldSendEventKeyedByExpense(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	defer func() { _ = sp.Close() }()

	var sent *sarama.ProducerMessage
	sp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		sent = msg
		return nil
	})

	p := newProducer(sp, "expense-events")
	ev := events.New(events.ExpenseDeleted, expense.Expense{ID: 3, Name: "Taxi", AmountLocal: decimal.NewFromInt(200)})
	require.NoError(t, p.Publish(context.Background(), ev))

	require.NotNil(t, sent)
	assert.Equal(t, "expense-events", sent.Topic)
	key, _ := sent.Key.Encode()
	assert.Equal(t, "3", string(key))

	value, _ := sent.Value.Encode()
	back, err := events.Unmarshal(value)
	require.NoError(t, err)
	assert.Equal(t, ev.ID, back.ID)
}

func Test_Publish_ShouldReturnBrokerError(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	defer func() { _ = sp.Close() }()
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := newProducer(sp, "expense-events")
	err := p.Publish(context.Background(), events.New(events.ExpenseCreated, expense.Expense{ID: 1}))
	assert.Error(t, err)
}
