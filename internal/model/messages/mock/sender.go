package mock

import (
	"github.com/stretchr/testify/mock"
	"max.ks1230/expense-tracker/internal/model/messages"
)

type MessageSenderMock struct {
	mock.Mock
}

func (m *MessageSenderMock) SendMessage(text string, userID int64) error {
	return m.Called(text, userID).Error(0)
}

func (m *MessageSenderMock) SendKeyboard(text string, options []string, userID int64) error {
	return m.Called(text, options, userID).Error(0)
}

func (m *MessageSenderMock) SendDocument(doc messages.Document, userID int64) error {
	return m.Called(doc, userID).Error(0)
}
