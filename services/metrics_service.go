package services

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/igorcrp/alpha-quant/helpers"
	"github.com/igorcrp/alpha-quant/models"
	"github.com/igorcrp/alpha-quant/models/analytics"
)

const tradingDaysPerYear = 252

// DerivedMetrics are the display ratios computed on top of a result.
// Every division is guarded: an impossible denominator yields 0.
type DerivedMetrics struct {
	TotalReturnPercentage float64 `json:"totalReturnPercentage"`
	AnnualizedReturn      float64 `json:"annualizedReturn"`
	ProfitFactor          float64 `json:"profitFactor"`
	AverageWinLossRatio   float64 `json:"averageWinLossRatio"`
	Volatility            float64 `json:"volatility"`
	CalmarRatio           float64 `json:"calmarRatio"`
}

type MetricsService struct {
}

func NewMetricsService() MetricsService {
	return MetricsService{}
}

func (ms *MetricsService) Calculate(result analytics.AnalysisResult, params models.AnalysisParams) DerivedMetrics {
	metrics := DerivedMetrics{}

	if params.InitialCapital > 0 {
		metrics.TotalReturnPercentage = helpers.SafeDivide(result.Profit, params.InitialCapital) * 100
	}

	if result.TradingDays > 0 && params.InitialCapital > 0 && result.FinalCapital > 0 {
		growth := math.Pow(result.FinalCapital/params.InitialCapital,
			tradingDaysPerYear/float64(result.TradingDays))
		metrics.AnnualizedReturn = helpers.Finite((growth - 1) * 100)
	}

	if result.Losses > 0 && result.AverageLoss != 0 {
		metrics.ProfitFactor = helpers.SafeDivide(
			float64(result.Profits)*result.AverageGain,
			float64(result.Losses)*math.Abs(result.AverageLoss))
	}

	if math.Abs(result.AverageLoss) > 0 {
		metrics.AverageWinLossRatio = helpers.SafeDivide(result.AverageGain, math.Abs(result.AverageLoss))
	}

	metrics.Volatility = ms.volatility(result)

	if result.MaxDrawdown > 0 {
		metrics.CalmarRatio = helpers.SafeDivide(metrics.TotalReturnPercentage, result.MaxDrawdown)
	}

	return metrics
}

// volatility annualizes the root mean square of per-trade returns over
// the traded window.
func (ms *MetricsService) volatility(result analytics.AnalysisResult) float64 {
	if result.TradingDays == 0 || len(result.TradeHistory) == 0 {
		return 0
	}

	sumSq := 0.0
	for _, item := range result.TradeHistory {
		r := helpers.Finite(item.ProfitPercentage)
		sumSq += r * r
	}

	dailyVariance := helpers.SafeDivide(sumSq, float64(result.TradingDays))
	return math.Sqrt(tradingDaysPerYear) * math.Sqrt(dailyVariance)
}

var currencyPrinter = message.NewPrinter(language.English)

// FormatPercentage renders with two decimals; non-finite values render
// as N/A instead of reaching the display.
func FormatPercentage(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "N/A"
	}
	return currencyPrinter.Sprintf("%.2f%%", value)
}

// FormatCurrency renders with thousands separators and two decimals.
func FormatCurrency(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "N/A"
	}
	return currencyPrinter.Sprintf("%.2f", value)
}
