package tg

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/messages"
)

const (
	defaultUpdateOffset = 0
	updateTimeoutSecs   = 60
)

type tokenGetter interface {
	Token() string
}

type dispatcher interface {
	Dispatch(ctx context.Context, msg messages.Message) bool
}

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Client struct {
	client botAPI
}

func New(tokenGetter tokenGetter) (*Client, error) {
	client, err := tgbotapi.NewBotAPI(tokenGetter.Token())
	if err != nil {
		return nil, errors.Wrap(err, "cannot NewBotApi")
	}
	logger.Info("authorized on telegram", zap.String("bot", client.Self.UserName))
	return &Client{client}, nil
}

// SendMessage sends plain text and hides the menu keyboard while a flow asks for free input.
func (c *Client) SendMessage(text string, userID int64) error {
	msg := tgbotapi.NewMessage(userID, text)
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	return c.send(msg)
}

// SendKeyboard sends text with a reply keyboard, one option per row.
func (c *Client) SendKeyboard(text string, options []string, userID int64) error {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(options))
	for _, opt := range options {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(opt)))
	}
	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true

	msg := tgbotapi.NewMessage(userID, text)
	msg.ReplyMarkup = keyboard
	return c.send(msg)
}

func (c *Client) SendDocument(doc messages.Document, userID int64) error {
	file := tgbotapi.NewDocument(userID, tgbotapi.FileBytes{Name: doc.Name, Bytes: doc.Data})
	file.Caption = doc.Caption
	file.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	return c.send(file)
}

func (c *Client) send(msg tgbotapi.Chattable) error {
	_, err := c.client.Send(msg)
	if err != nil {
		return errors.Wrap(err, "client.Send")
	}
	return nil
}

// ListenUpdates hands every text message to the dispatcher until ctx is done.
func (c *Client) ListenUpdates(ctx context.Context, d dispatcher) {
	u := tgbotapi.NewUpdate(defaultUpdateOffset)
	u.Timeout = updateTimeoutSecs

	updates := c.client.GetUpdatesChan(u)
	defer c.client.StopReceivingUpdates()

	logger.Info("Start listening for messages")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stop listening for messages")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			c.listenOnce(ctx, update, d)
		}
	}
}

func (c *Client) listenOnce(ctx context.Context, update tgbotapi.Update, d dispatcher) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	logger.Debug("incoming message",
		zap.Int64("userID", update.Message.From.ID),
		zap.String("user", update.Message.From.UserName),
	)

	accepted := d.Dispatch(ctx, messages.Message{
		Text:   update.Message.Text,
		UserID: update.Message.From.ID,
	})
	if !accepted {
		logger.Warn("message dropped", zap.Int64("userID", update.Message.From.ID))
	}
}
