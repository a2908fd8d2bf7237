package money_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shopster-web/pkg/money"
)

func TestFormatter_Format(t *testing.T) {
	ru, err := money.NewFormatter("ru-RU", "RUB")
	require.NoError(t, err)
	en, err := money.NewFormatter("en-US", "USD")
	require.NoError(t, err)

	t.Run("Should use the locale decimal separator", func(t *testing.T) {
		got := ru.Format("1234.5", "RUB")
		assert.Contains(t, got, "234,50")
		assert.NotContains(t, got, ".")

		assert.Contains(t, en.Format("1234.5", "USD"), "1,234.50")
	})

	t.Run("Should put the amount before the sign in Russian", func(t *testing.T) {
		got := ru.Format("10", "")
		assert.True(t, strings.HasPrefix(got, "10,00"), got)
	})

	t.Run("Should put the sign first in English", func(t *testing.T) {
		got := en.Format("10", "USD")
		assert.True(t, strings.HasSuffix(got, "10.00"), got)
		assert.False(t, strings.HasPrefix(got, "10"), got)
	})

	t.Run("Should return unparseable amounts unchanged", func(t *testing.T) {
		assert.Equal(t, "n/a", ru.Format("n/a", "RUB"))
	})

	t.Run("Should fall back to the default currency for unknown codes", func(t *testing.T) {
		assert.Equal(t, ru.Format("5", "RUB"), ru.Format("5", "???"))
	})
}

func TestNewFormatter_RejectsBadInput(t *testing.T) {
	_, err := money.NewFormatter("ru-RU", "rubles")
	assert.Error(t, err)

	_, err = money.NewFormatter("", "RUB")
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	d, err := money.Parse(" 19.90 ")
	require.NoError(t, err)
	assert.Equal(t, "19.9", d.String())

	_, err = money.Parse("abc")
	assert.Error(t, err)
}
