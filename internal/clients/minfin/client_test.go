package minfin

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<html><body><table>
<tr><td>Евро</td><td><div>44,9821<span>+0,11</span></div></td></tr>
<tr><td>Доллар США</td><td><div>41,2534<span>-0,02</span></div></td></tr>
</table></body></html>`

func Test_ParseRate_ShouldReadUSDRow(t *testing.T) {
	rate, err := New("", nil).ParseRate([]byte(samplePage))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("41.25").Equal(rate), rate.String())
}

func Test_ParseRate_ShouldFailWithoutUSDRow(t *testing.T) {
	_, err := New("", nil).ParseRate([]byte(`<table><tr><td>Евро</td><td><div>44,98</div></td></tr></table>`))
	assert.Error(t, err)
}

func Test_ParseRate_ShouldFailOnGarbledValue(t *testing.T) {
	_, err := New("", nil).ParseRate([]byte(`<table><tr><td>Доллар США</td><td><div>—</div></td></tr></table>`))
	assert.Error(t, err)
}
