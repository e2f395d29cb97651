package tg

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/expense-tracker/internal/model/messages"
)

type fakeBot struct {
	sent    []tgbotapi.Chattable
	err     error
	updates chan tgbotapi.Update
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, b.err
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) StopReceivingUpdates() {}

type recordingDispatcher struct {
	msgs []messages.Message
}

func (d *recordingDispatcher) Dispatch(_ context.Context, msg messages.Message) bool {
	d.msgs = append(d.msgs, msg)
	return true
}

func Test_SendKeyboard_ShouldPutEachOptionOnItsOwnRow(t *testing.T) {
	bot := &fakeBot{}
	c := &Client{client: bot}

	err := c.SendKeyboard("choose", []string{"a", "b"}, 7)
	require.NoError(t, err)

	require.Len(t, bot.sent, 1)
	msg := bot.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, int64(7), msg.ChatID)
	keyboard := msg.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	require.Len(t, keyboard.Keyboard, 2)
	assert.Equal(t, "b", keyboard.Keyboard[1][0].Text)
	assert.True(t, keyboard.ResizeKeyboard)
}

func Test_SendDocument_ShouldAttachBytesWithCaption(t *testing.T) {
	bot := &fakeBot{}
	c := &Client{client: bot}

	err := c.SendDocument(messages.Document{Name: "r.xlsx", Data: []byte("x"), Caption: "report"}, 7)
	require.NoError(t, err)

	doc := bot.sent[0].(tgbotapi.DocumentConfig)
	assert.Equal(t, "report", doc.Caption)
	assert.Equal(t, tgbotapi.FileBytes{Name: "r.xlsx", Bytes: []byte("x")}, doc.File)
}

func Test_SendMessage_ShouldWrapErrors(t *testing.T) {
	c := &Client{client: &fakeBot{err: errors.New("Forbidden: bot was blocked by the user")}}

	err := c.SendMessage("hi", 7)

	assert.ErrorContains(t, err, "client.Send")
}

func Test_ListenUpdates_ShouldDispatchTextMessages(t *testing.T) {
	bot := &fakeBot{updates: make(chan tgbotapi.Update, 3)}
	c := &Client{client: bot}
	d := &recordingDispatcher{}

	bot.updates <- tgbotapi.Update{Message: &tgbotapi.Message{Text: "/start", From: &tgbotapi.User{ID: 42}}}
	bot.updates <- tgbotapi.Update{}
	bot.updates <- tgbotapi.Update{Message: &tgbotapi.Message{Text: "Coffee", From: &tgbotapi.User{ID: 42}}}
	close(bot.updates)

	c.ListenUpdates(context.Background(), d)

	assert.Equal(t, []messages.Message{
		{Text: "/start", UserID: 42},
		{Text: "Coffee", UserID: 42},
	}, d.msgs)
}
