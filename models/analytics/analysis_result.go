package analytics

import "time"

type TradeAction string

const (
	TradeActionBuy  TradeAction = "Buy"
	TradeActionSell TradeAction = "Sell"
	TradeActionNone TradeAction = "-"
)

type StopStatus string

const (
	StopStatusExecuted StopStatus = "Executed"
	StopStatusNone     StopStatus = "-"
)

// AnalysisResult is the per-asset aggregate of one backtest run.
// Produced wholesale by the analysis provider and never mutated after.
type AnalysisResult struct {
	AssetCode string `json:"assetCode"`
	AssetName string `json:"assetName"`

	TradingDays int `json:"tradingDays"`
	Trades      int `json:"trades"`
	Profits     int `json:"profits"`
	Losses      int `json:"losses"`
	Stops       int `json:"stops"`

	TradePercentage  float64 `json:"tradePercentage"`
	ProfitPercentage float64 `json:"profitPercentage"`
	LossPercentage   float64 `json:"lossPercentage"`
	StopPercentage   float64 `json:"stopPercentage"`

	FinalCapital float64 `json:"finalCapital"`
	Profit       float64 `json:"profit"`
	AverageGain  float64 `json:"averageGain"`
	// AverageLoss is stored non-positive, the sign encodes direction.
	AverageLoss float64 `json:"averageLoss"`

	MaxDrawdown    float64 `json:"maxDrawdown"`
	SharpeRatio    float64 `json:"sharpeRatio"`
	SortinoRatio   float64 `json:"sortinoRatio"`
	RecoveryFactor float64 `json:"recoveryFactor"`
	SuccessRate    float64 `json:"successRate"`

	TradeHistory []TradeHistoryItem `json:"tradeHistory,omitempty"`
	TradeDetails string             `json:"tradeDetails,omitempty"`
}

// ComputePercentages derives the ratio fields from the counts, so the
// two can never disagree.
func (r *AnalysisResult) ComputePercentages() {
	r.TradePercentage = ratio(r.Trades, r.TradingDays)
	r.ProfitPercentage = ratio(r.Profits, r.Trades)
	r.LossPercentage = ratio(r.Losses, r.Trades)
	r.StopPercentage = ratio(r.Stops, r.Trades)
}

func ratio(part int, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// TradeHistoryItem is one simulated trade event.
type TradeHistoryItem struct {
	Date                time.Time   `json:"date"`
	EntryPrice          float64     `json:"entryPrice"`
	ExitPrice           float64     `json:"exitPrice"`
	ProfitLoss          float64     `json:"profitLoss"`
	ProfitPercentage    float64     `json:"profitPercentage"`
	Trade               TradeAction `json:"trade"`
	Stop                StopStatus  `json:"stop"`
	SuggestedEntryPrice float64     `json:"suggestedEntryPrice"`
	ActualPrice         float64     `json:"actualPrice"`
	LotSize             int         `json:"lotSize"`
	StopPrice           float64     `json:"stopPrice"`
	// CurrentCapital is the capital immediately after this trade; the
	// last entry must reproduce FinalCapital of the parent result.
	CurrentCapital float64 `json:"currentCapital"`
}

type CapitalPoint struct {
	Date    time.Time `json:"date"`
	Capital float64   `json:"capital"`
}

// DetailedResult adds the trade-by-trade view of a single asset.
type DetailedResult struct {
	AnalysisResult
	CapitalEvolution []CapitalPoint `json:"capitalEvolution"`
}
