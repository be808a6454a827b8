package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igorcrp/alpha-quant/interfaces"
	"github.com/igorcrp/alpha-quant/models"
	"github.com/igorcrp/alpha-quant/models/analytics"
)

type providerMock struct {
	runFunc    func(params models.AnalysisParams, progress interfaces.ProgressFunc) ([]analytics.AnalysisResult, error)
	detailFunc func(assetCode string, params models.AnalysisParams) (*analytics.DetailedResult, error)
}

func (pm *providerMock) RunAnalysis(params models.AnalysisParams, progress interfaces.ProgressFunc) ([]analytics.AnalysisResult, error) {
	return pm.runFunc(params, progress)
}

func (pm *providerMock) GetDetailedAnalysis(assetCode string, params models.AnalysisParams) (*analytics.DetailedResult, error) {
	return pm.detailFunc(assetCode, params)
}

type resolverMock struct {
	table string
	err   error
	calls int
}

func (rm *resolverMock) ResolveDataSource(country string, stockMarket string, assetClass string) (models.DataSource, error) {
	rm.calls++
	if rm.err != nil {
		return models.DataSource{}, rm.err
	}
	return models.DataSource{
		Country:     country,
		StockMarket: stockMarket,
		AssetClass:  assetClass,
		Table:       rm.table,
	}, nil
}

func analysisParams() models.AnalysisParams {
	return models.AnalysisParams{
		Country:         "usa",
		StockMarket:     "nasdaq",
		AssetClass:      "stocks",
		Operation:       models.OperationBuy,
		ReferencePrice:  models.ReferencePriceClose,
		EntryPercentage: 1,
		StopPercentage:  2,
		InitialCapital:  10000,
		Period:          "3m",
	}
}

func TestRunResolvesMissingDataTable(t *testing.T) {
	resolver := &resolverMock{table: "quotes_usa_nasdaq_stocks"}
	var seenTable string
	provider := &providerMock{
		runFunc: func(params models.AnalysisParams, progress interfaces.ProgressFunc) ([]analytics.AnalysisResult, error) {
			seenTable = params.DataTableName
			return []analytics.AnalysisResult{{AssetCode: "AAPL"}}, nil
		},
	}

	as := NewAnalysisService(provider, resolver)
	runID, results, err := as.Run(analysisParams(), nil)

	require.NoError(t, err)
	assert.NotEmpty(t, runID)
	assert.Len(t, results, 1)
	assert.Equal(t, 1, resolver.calls)
	assert.Equal(t, "quotes_usa_nasdaq_stocks", seenTable)
	assert.Equal(t, "quotes_usa_nasdaq_stocks", as.LastParams().DataTableName)
}

func TestRunSkipsResolverWhenTableAlreadySet(t *testing.T) {
	resolver := &resolverMock{table: "ignored"}
	provider := &providerMock{
		runFunc: func(params models.AnalysisParams, progress interfaces.ProgressFunc) ([]analytics.AnalysisResult, error) {
			return nil, nil
		},
	}

	as := NewAnalysisService(provider, resolver)
	params := analysisParams()
	params.DataTableName = "quotes_custom"
	_, _, err := as.Run(params, nil)

	require.NoError(t, err)
	assert.Equal(t, 0, resolver.calls)
}

func TestRunRejectsInvalidParamsWithoutCallingProvider(t *testing.T) {
	called := false
	provider := &providerMock{
		runFunc: func(params models.AnalysisParams, progress interfaces.ProgressFunc) ([]analytics.AnalysisResult, error) {
			called = true
			return nil, nil
		},
	}

	as := NewAnalysisService(provider, &resolverMock{table: "t"})
	params := analysisParams()
	params.InitialCapital = -5
	_, _, err := as.Run(params, nil)

	assert.Error(t, err)
	assert.False(t, called)
}

func TestFailedRunLeavesPreviousResultsUntouched(t *testing.T) {
	fail := false
	provider := &providerMock{
		runFunc: func(params models.AnalysisParams, progress interfaces.ProgressFunc) ([]analytics.AnalysisResult, error) {
			if fail {
				return nil, fmt.Errorf("provider unavailable")
			}
			return []analytics.AnalysisResult{{AssetCode: "AAPL"}, {AssetCode: "MSFT"}}, nil
		},
	}

	as := NewAnalysisService(provider, &resolverMock{table: "t"})
	firstRunID, _, err := as.Run(analysisParams(), nil)
	require.NoError(t, err)

	fail = true
	_, _, err = as.Run(analysisParams(), nil)
	assert.Error(t, err)

	assert.Equal(t, firstRunID, as.RunID())
	assert.Len(t, as.Results(), 2)
}

func TestSuccessfulRunReplacesStateWholesale(t *testing.T) {
	batch := []analytics.AnalysisResult{{AssetCode: "AAPL"}}
	provider := &providerMock{
		runFunc: func(params models.AnalysisParams, progress interfaces.ProgressFunc) ([]analytics.AnalysisResult, error) {
			return batch, nil
		},
		detailFunc: func(assetCode string, params models.AnalysisParams) (*analytics.DetailedResult, error) {
			return &analytics.DetailedResult{AnalysisResult: analytics.AnalysisResult{AssetCode: assetCode}}, nil
		},
	}

	as := NewAnalysisService(provider, &resolverMock{table: "t"})
	firstID, _, err := as.Run(analysisParams(), nil)
	require.NoError(t, err)

	_, err = as.FetchDetail("AAPL", as.LastParams())
	require.NoError(t, err)
	detail, _ := as.CurrentDetail()
	require.NotNil(t, detail)

	batch = []analytics.AnalysisResult{{AssetCode: "TSLA"}, {AssetCode: "NVDA"}}
	secondID, _, err := as.Run(analysisParams(), nil)
	require.NoError(t, err)

	assert.NotEqual(t, firstID, secondID)
	assert.Len(t, as.Results(), 2)
	detail, asset := as.CurrentDetail()
	assert.Nil(t, detail, "a new run clears the selected detail")
	assert.Empty(t, asset)
}

func TestDetailFetchLastRequestWins(t *testing.T) {
	slowEntered := make(chan struct{})
	slowRelease := make(chan struct{})

	provider := &providerMock{
		detailFunc: func(assetCode string, params models.AnalysisParams) (*analytics.DetailedResult, error) {
			if assetCode == "SLOW" {
				close(slowEntered)
				<-slowRelease
			}
			return &analytics.DetailedResult{AnalysisResult: analytics.AnalysisResult{AssetCode: assetCode}}, nil
		},
	}

	as := NewAnalysisService(provider, &resolverMock{table: "t"})
	params := analysisParams()
	params.DataTableName = "t"

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = as.FetchDetail("SLOW", params)
	}()

	// the second request goes out only after the first is in flight
	<-slowEntered
	_, err := as.FetchDetail("FAST", params)
	require.NoError(t, err)

	close(slowRelease)
	wg.Wait()

	detail, asset := as.CurrentDetail()
	require.NotNil(t, detail)
	assert.Equal(t, "FAST", asset)
	assert.Equal(t, "FAST", detail.AssetCode)
}

func TestStaleDetailResponseStillReturnsToCaller(t *testing.T) {
	provider := &providerMock{
		detailFunc: func(assetCode string, params models.AnalysisParams) (*analytics.DetailedResult, error) {
			return &analytics.DetailedResult{AnalysisResult: analytics.AnalysisResult{AssetCode: assetCode}}, nil
		},
	}

	as := NewAnalysisService(provider, &resolverMock{table: "t"})
	params := analysisParams()
	params.DataTableName = "t"

	detail, err := as.FetchDetail("AAPL", params)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", detail.AssetCode)
}
