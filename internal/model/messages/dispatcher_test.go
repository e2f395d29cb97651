package messages_test

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/expense-tracker/internal/model/messages"
)

type handlerFunc func(ctx context.Context, msg messages.Message) error

func (f handlerFunc) HandleIncomingMessage(ctx context.Context, msg messages.Message) error {
	return f(ctx, msg)
}

func Test_Dispatcher_ShouldKeepPerUserOrder(t *testing.T) {
	const perUser = 10

	var (
		mu   sync.Mutex
		seen = map[int64][]string{}
		wg   sync.WaitGroup
	)
	d := messages.NewDispatcher(handlerFunc(func(_ context.Context, msg messages.Message) error {
		defer wg.Done()
		mu.Lock()
		seen[msg.UserID] = append(seen[msg.UserID], msg.Text)
		mu.Unlock()
		return nil
	}))
	defer d.Close()

	wg.Add(perUser * 2)
	for i := 0; i < perUser; i++ {
		for _, user := range []int64{1, 2} {
			ok := d.Dispatch(context.Background(), messages.Message{Text: strconv.Itoa(i), UserID: user})
			require.True(t, ok)
		}
	}
	wg.Wait()

	for _, user := range []int64{1, 2} {
		require.Len(t, seen[user], perUser)
		for i, text := range seen[user] {
			assert.Equal(t, strconv.Itoa(i), text)
		}
	}
}

func Test_Dispatcher_ShouldNotBlockOtherUsers(t *testing.T) {
	release := make(chan struct{})
	otherDone := make(chan struct{})

	d := messages.NewDispatcher(handlerFunc(func(_ context.Context, msg messages.Message) error {
		if msg.UserID == 1 {
			<-release
			return nil
		}
		close(otherDone)
		return nil
	}))

	d.Dispatch(context.Background(), messages.Message{Text: "slow", UserID: 1})
	d.Dispatch(context.Background(), messages.Message{Text: "fast", UserID: 2})

	select {
	case <-otherDone:
	case <-time.After(2 * time.Second):
		t.Fatal("second user waited for the first one")
	}
	close(release)
	d.Close()
}

func Test_Dispatcher_ShouldDropWhenUserQueueIsFull(t *testing.T) {
	release := make(chan struct{})
	otherDone := make(chan struct{})

	d := messages.NewDispatcher(handlerFunc(func(_ context.Context, msg messages.Message) error {
		if msg.UserID == 1 {
			<-release
			return nil
		}
		close(otherDone)
		return nil
	}))

	dropped := 0
	for i := 0; i < 40; i++ {
		if !d.Dispatch(context.Background(), messages.Message{Text: strconv.Itoa(i), UserID: 1}) {
			dropped++
		}
	}
	assert.GreaterOrEqual(t, dropped, 40-17)

	require.True(t, d.Dispatch(context.Background(), messages.Message{Text: "fast", UserID: 2}))
	select {
	case <-otherDone:
	case <-time.After(2 * time.Second):
		t.Fatal("second user waited for the flooding one")
	}
	close(release)
	d.Close()
}

func Test_Dispatcher_ShouldRejectAfterClose(t *testing.T) {
	d := messages.NewDispatcher(handlerFunc(func(context.Context, messages.Message) error { return nil }))
	d.Close()

	assert.False(t, d.Dispatch(context.Background(), messages.Message{Text: "late", UserID: 1}))
}
