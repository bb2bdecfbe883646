package balance

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTopList struct {
	symbols []string
	err     error
}

func (s *stubTopList) Symbols(context.Context) ([]string, error) {
	return s.symbols, s.err
}

func TestDemoSourceRestrictsToTopList(t *testing.T) {
	src := NewDemoSource("demo", &stubTopList{symbols: []string{"BTC", "ETH", "MIOTA"}})

	balances, err := src.Balances(context.Background())
	require.NoError(t, err)
	require.Len(t, balances, 3)

	// market symbols are reported under their exchange-native codes
	assert.Contains(t, balances, "BTC")
	assert.Contains(t, balances, "ETH")
	assert.Contains(t, balances, "IOTA")

	for currency, volume := range balances {
		assert.True(t, volume.IsPositive(), "volume of %s must be positive", currency)
	}
}

func TestDemoSourceDegradesToEmptyOnTopListFailure(t *testing.T) {
	src := NewDemoSource("demo", &stubTopList{err: errors.New("toplist down")})

	balances, err := src.Balances(context.Background())
	require.NoError(t, err, "top-list failure must not surface as a fetch failure")
	assert.Empty(t, balances)
}
