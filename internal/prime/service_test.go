package prime

import (
	"testing"

	"staking-ledger-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSelectDefaultPortfolio(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	portfolio, err := selectDefaultPortfolio([]models.PrimePortfolio{
		{Id: "p-1", Name: "Trading"},
		{Id: "p-2", Name: "Default Portfolio"},
	})
	require.NoError(t, err)
	assert.Equal(t, "p-2", portfolio.Id)
	assert.Equal(t, 1, logs.FilterMessage("Using default portfolio").Len())
}

func TestSelectDefaultPortfolio_NotFound(t *testing.T) {
	_, err := selectDefaultPortfolio([]models.PrimePortfolio{{Id: "p-1", Name: "Trading"}})
	assert.Error(t, err)

	_, err = selectDefaultPortfolio(nil)
	assert.Error(t, err)
}
