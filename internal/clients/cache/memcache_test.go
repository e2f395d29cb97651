package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/expense-tracker/internal/model/session"
)

func Test_FormatKey_ShouldPrefixUserID(t *testing.T) {
	assert.Equal(t, "session:123", formatKey(123))
}

func Test_Decode_ShouldRestoreStateAndScratch(t *testing.T) {
	sess, err := decode([]byte(`{"state":"ADD_AMOUNT","scratch":{"name":"Coffee","date":"15.03.2024"}}`))

	require.NoError(t, err)
	assert.Equal(t, session.AddAmount, sess.State)
	assert.Equal(t, map[string]string{"name": "Coffee", "date": "15.03.2024"}, sess.Scratch)
}

func Test_Decode_ShouldDefaultToMenu(t *testing.T) {
	sess, err := decode([]byte(`{}`))

	require.NoError(t, err)
	assert.Equal(t, session.Menu, sess.State)
	assert.NotNil(t, sess.Scratch)
}
