package interfaces

import (
	"github.com/igorcrp/alpha-quant/models"
	"github.com/igorcrp/alpha-quant/models/analytics"
)

// ProgressFunc receives fractional progress in the 0-100 range while an
// analysis run executes. May be nil.
type ProgressFunc func(percentage float64)

type AnalysisProvider interface {
	RunAnalysis(params models.AnalysisParams, progress ProgressFunc) ([]analytics.AnalysisResult, error)
	GetDetailedAnalysis(assetCode string, params models.AnalysisParams) (*analytics.DetailedResult, error)
}

type DataSourceResolver interface {
	ResolveDataSource(country string, stockMarket string, assetClass string) (models.DataSource, error)
}

type SubscriptionService interface {
	IsSubscribed(email string) bool
}

// IndexQuoteSource feeds the market index cache.
type IndexQuoteSource interface {
	LatestIndexQuotes() ([]models.IndexQuote, error)
}
