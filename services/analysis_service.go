package services

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/igorcrp/alpha-quant/helpers"
	"github.com/igorcrp/alpha-quant/interfaces"
	"github.com/igorcrp/alpha-quant/models"
	"github.com/igorcrp/alpha-quant/models/analytics"
)

// AnalysisService owns the current run's state. A failed run never
// touches the previous results, and overlapping detail fetches resolve
// last-request-wins through a sequence token.
type AnalysisService struct {
	provider interfaces.AnalysisProvider
	resolver interfaces.DataSourceResolver

	mu          sync.RWMutex
	runID       string
	lastParams  models.AnalysisParams
	results     []analytics.AnalysisResult
	detail      *analytics.DetailedResult
	detailAsset string

	detailSeq uint64
}

func NewAnalysisService(provider interfaces.AnalysisProvider, resolver interfaces.DataSourceResolver) *AnalysisService {
	return &AnalysisService{
		provider: provider,
		resolver: resolver,
	}
}

// Run executes one analysis, resolving the data table from the market
// scope when the caller did not. On success the whole result state is
// replaced; on failure it is left as it was.
func (as *AnalysisService) Run(params models.AnalysisParams, progress interfaces.ProgressFunc) (string, []analytics.AnalysisResult, error) {
	if err := params.Validate(); err != nil {
		return "", nil, err
	}

	if params.DataTableName == "" {
		source, err := as.resolver.ResolveDataSource(params.Country, params.StockMarket, params.AssetClass)
		if err != nil {
			return "", nil, err
		}
		params.DataTableName = source.Table
	}

	results, err := as.provider.RunAnalysis(params, progress)
	if err != nil {
		helpers.Logger.Errorln("analysis run failed: " + err.Error())
		return "", nil, err
	}

	runID := uuid.NewString()
	as.mu.Lock()
	as.runID = runID
	as.lastParams = params
	as.results = results
	as.detail = nil
	as.detailAsset = ""
	as.mu.Unlock()

	helpers.Logger.Infoln("analysis run " + runID + " finished for period " + params.Period)
	return runID, results, nil
}

func (as *AnalysisService) RunID() string {
	as.mu.RLock()
	defer as.mu.RUnlock()
	return as.runID
}

func (as *AnalysisService) LastParams() models.AnalysisParams {
	as.mu.RLock()
	defer as.mu.RUnlock()
	return as.lastParams
}

func (as *AnalysisService) Results() []analytics.AnalysisResult {
	as.mu.RLock()
	defer as.mu.RUnlock()
	results := make([]analytics.AnalysisResult, len(as.results))
	copy(results, as.results)
	return results
}

// FetchDetail loads one asset's detailed result. Only the response of
// the most recently issued fetch is kept as the selected detail; a
// stale response is still returned to its caller but not applied.
func (as *AnalysisService) FetchDetail(assetCode string, params models.AnalysisParams) (*analytics.DetailedResult, error) {
	seq := atomic.AddUint64(&as.detailSeq, 1)

	detail, err := as.provider.GetDetailedAnalysis(assetCode, params)
	if err != nil {
		return nil, err
	}

	as.mu.Lock()
	if seq == atomic.LoadUint64(&as.detailSeq) {
		as.detail = detail
		as.detailAsset = assetCode
	}
	as.mu.Unlock()

	return detail, nil
}

// CurrentDetail is the detail applied by the latest winning fetch, or
// nil when no asset is selected.
func (as *AnalysisService) CurrentDetail() (*analytics.DetailedResult, string) {
	as.mu.RLock()
	defer as.mu.RUnlock()
	return as.detail, as.detailAsset
}
