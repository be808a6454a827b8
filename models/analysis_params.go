package models

import "fmt"

type Operation string

const (
	OperationBuy  Operation = "buy"
	OperationSell Operation = "sell"
)

type ReferencePrice string

const (
	ReferencePriceOpen  ReferencePrice = "open"
	ReferencePriceHigh  ReferencePrice = "high"
	ReferencePriceLow   ReferencePrice = "low"
	ReferencePriceClose ReferencePrice = "close"
)

// AnalysisParams is the full input of one backtest run. Treated as a
// value: every run gets its own copy.
type AnalysisParams struct {
	Country          string         `json:"country"`
	StockMarket      string         `json:"stockMarket"`
	AssetClass       string         `json:"assetClass"`
	Operation        Operation      `json:"operation"`
	ReferencePrice   ReferencePrice `json:"referencePrice"`
	EntryPercentage  float64        `json:"entryPercentage"`
	StopPercentage   float64        `json:"stopPercentage"`
	InitialCapital   float64        `json:"initialCapital"`
	Period           string         `json:"period"`
	DataTableName    string         `json:"dataTableName,omitempty"`
	ComparisonStocks []string       `json:"comparisonStocks,omitempty"`
}

func (p *AnalysisParams) Validate() error {
	if p.Period == "" {
		return fmt.Errorf("period is required")
	}
	if p.EntryPercentage < 0 {
		return fmt.Errorf("entryPercentage must be non-negative, got %f", p.EntryPercentage)
	}
	if p.StopPercentage < 0 {
		return fmt.Errorf("stopPercentage must be non-negative, got %f", p.StopPercentage)
	}
	if p.InitialCapital <= 0 {
		return fmt.Errorf("initialCapital must be positive, got %f", p.InitialCapital)
	}
	switch p.Operation {
	case OperationBuy, OperationSell:
	default:
		return fmt.Errorf("unknown operation '%s'", p.Operation)
	}
	switch p.ReferencePrice {
	case ReferencePriceOpen, ReferencePriceHigh, ReferencePriceLow, ReferencePriceClose:
	default:
		return fmt.Errorf("unknown reference price '%s'", p.ReferencePrice)
	}
	return nil
}
