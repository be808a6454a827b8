package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igorcrp/alpha-quant/models"
)

type indexSourceMock struct {
	quotes []models.IndexQuote
	err    error
	calls  int
}

func (ism *indexSourceMock) LatestIndexQuotes() ([]models.IndexQuote, error) {
	ism.calls++
	if ism.err != nil {
		return nil, ism.err
	}
	return ism.quotes, nil
}

func TestQuotesRefreshesOnFirstAccessAndSortsBySymbol(t *testing.T) {
	source := &indexSourceMock{quotes: []models.IndexQuote{
		{Symbol: "NDX", Price: 18000},
		{Symbol: "DJI", Price: 39000},
		{Symbol: "SPX", Price: 5200},
	}}

	cache := NewIndexCacheService(source, time.Hour)
	quotes := cache.Quotes()

	require.Len(t, quotes, 3)
	assert.Equal(t, "DJI", quotes[0].Symbol)
	assert.Equal(t, "NDX", quotes[1].Symbol)
	assert.Equal(t, "SPX", quotes[2].Symbol)
	assert.Equal(t, 1, source.calls)
}

func TestQuotesServesCachedCopyInsideTTL(t *testing.T) {
	source := &indexSourceMock{quotes: []models.IndexQuote{{Symbol: "SPX"}}}
	cache := NewIndexCacheService(source, time.Hour)

	cache.Quotes()
	cache.Quotes()
	cache.Quotes()
	assert.Equal(t, 1, source.calls)
}

func TestQuotesRefetchesAfterTTL(t *testing.T) {
	source := &indexSourceMock{quotes: []models.IndexQuote{{Symbol: "SPX"}}}
	cache := NewIndexCacheService(source, time.Hour)

	now := time.Now()
	cache.now = func() time.Time { return now }
	cache.Quotes()
	assert.Equal(t, 1, source.calls)

	cache.now = func() time.Time { return now.Add(2 * time.Hour) }
	cache.Quotes()
	assert.Equal(t, 2, source.calls)
}

func TestFailedRefreshServesStaleQuotes(t *testing.T) {
	source := &indexSourceMock{quotes: []models.IndexQuote{{Symbol: "SPX", Price: 5200}}}
	cache := NewIndexCacheService(source, 0)

	require.NoError(t, cache.Refresh())

	source.err = fmt.Errorf("connection refused")
	quotes := cache.Quotes()

	require.Len(t, quotes, 1)
	assert.Equal(t, 5200.0, quotes[0].Price)
}

func TestExplicitRefreshReplacesWholesale(t *testing.T) {
	source := &indexSourceMock{quotes: []models.IndexQuote{{Symbol: "SPX"}, {Symbol: "NDX"}}}
	cache := NewIndexCacheService(source, time.Hour)
	require.NoError(t, cache.Refresh())

	source.quotes = []models.IndexQuote{{Symbol: "DJI"}}
	require.NoError(t, cache.Refresh())

	quotes := cache.Quotes()
	require.Len(t, quotes, 1)
	assert.Equal(t, "DJI", quotes[0].Symbol)
}
