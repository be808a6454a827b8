package backtest

import (
	"fmt"
	"math"
	"time"

	"github.com/sdcoffey/techan"
	"gonum.org/v1/gonum/stat"

	database "github.com/igorcrp/alpha-quant/database/models"
	"github.com/igorcrp/alpha-quant/helpers"
	"github.com/igorcrp/alpha-quant/interfaces"
	"github.com/igorcrp/alpha-quant/models"
	"github.com/igorcrp/alpha-quant/models/analytics"
)

const tradingDaysPerYear = 252

// MarketData is the slice of the data layer the engine reads.
type MarketData interface {
	ListAssets(source models.DataSource) ([]database.AssetInfo, error)
	GetSeries(source models.DataSource, code string, from time.Time, to time.Time) (*techan.TimeSeries, error)
}

// BacktestService simulates the entry/stop strategy over every asset of
// a resolved data source. One engine of possibly many; callers only rely
// on the result contract.
type BacktestService struct {
	marketData MarketData
	now        func() time.Time
}

func NewBacktestService(marketData MarketData) *BacktestService {
	return &BacktestService{
		marketData: marketData,
		now:        time.Now,
	}
}

func (bs *BacktestService) RunAnalysis(params models.AnalysisParams, progress interfaces.ProgressFunc) ([]analytics.AnalysisResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.DataTableName == "" {
		return nil, fmt.Errorf("data table not resolved for %s/%s/%s",
			params.Country, params.StockMarket, params.AssetClass)
	}

	source := bs.dataSource(params)
	assets, err := bs.marketData.ListAssets(source)
	if err != nil {
		return nil, err
	}

	today := bs.now()
	from := helpers.ResolvePeriod(params.Period, today)

	results := make([]analytics.AnalysisResult, 0, len(assets))
	for i, asset := range assets {
		series, err := bs.marketData.GetSeries(source, asset.Code, from, today)
		if err != nil {
			helpers.Logger.Errorln("skipping " + asset.Code + ": " + err.Error())
			continue
		}

		detailed := bs.simulateAsset(asset, series, params)
		result := detailed.AnalysisResult
		result.TradeHistory = nil
		results = append(results, result)

		if progress != nil {
			progress(float64(i+1) / float64(len(assets)) * 100)
		}
	}

	return results, nil
}

func (bs *BacktestService) GetDetailedAnalysis(assetCode string, params models.AnalysisParams) (*analytics.DetailedResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.DataTableName == "" {
		return nil, fmt.Errorf("data table not resolved for %s/%s/%s",
			params.Country, params.StockMarket, params.AssetClass)
	}

	source := bs.dataSource(params)
	assets, err := bs.marketData.ListAssets(source)
	if err != nil {
		return nil, err
	}

	var asset *database.AssetInfo
	for i := range assets {
		if assets[i].Code == assetCode {
			asset = &assets[i]
			break
		}
	}
	if asset == nil {
		return nil, fmt.Errorf("unknown asset '%s'", assetCode)
	}

	today := bs.now()
	from := helpers.ResolvePeriod(params.Period, today)
	series, err := bs.marketData.GetSeries(source, assetCode, from, today)
	if err != nil {
		return nil, err
	}

	detailed := bs.simulateAsset(*asset, series, params)
	return &detailed, nil
}

func (bs *BacktestService) dataSource(params models.AnalysisParams) models.DataSource {
	return models.DataSource{
		Country:     params.Country,
		StockMarket: params.StockMarket,
		AssetClass:  params.AssetClass,
		Table:       params.DataTableName,
	}
}

// simulateAsset walks the candle series day by day. The previous day's
// reference price sets the entry trigger; a triggered position exits the
// same day, at the stop when it is touched and at the close otherwise.
func (bs *BacktestService) simulateAsset(asset database.AssetInfo, series *techan.TimeSeries,
	params models.AnalysisParams) analytics.DetailedResult {

	result := analytics.DetailedResult{
		AnalysisResult: analytics.AnalysisResult{
			AssetCode:    asset.Code,
			AssetName:    asset.Name,
			TradingDays:  len(series.Candles),
			FinalCapital: params.InitialCapital,
		},
	}

	capital := params.InitialCapital
	peak := capital
	maxDrawdownPct := 0.0
	maxDrawdownAmount := 0.0

	var gains []float64
	var lossAmounts []float64
	var tradeReturns []float64

	action := analytics.TradeActionBuy
	if params.Operation == models.OperationSell {
		action = analytics.TradeActionSell
	}

	for i := 1; i < len(series.Candles); i++ {
		reference := referenceValue(series.Candles[i-1], params.ReferencePrice)
		day := series.Candles[i]

		entry, suggested, stopPrice, triggered := bs.entryForDay(day, reference, params)
		if !triggered {
			continue
		}

		lotSize := int(math.Floor(capital / entry))
		if lotSize <= 0 {
			continue
		}

		exit, stopped := bs.exitForDay(day, stopPrice, params.Operation)

		profitLoss := (exit - entry) * float64(lotSize)
		if params.Operation == models.OperationSell {
			profitLoss = (entry - exit) * float64(lotSize)
		}

		capitalAtEntry := capital
		capital += profitLoss

		result.Trades++
		if profitLoss > 0 {
			result.Profits++
			gains = append(gains, profitLoss)
		} else if profitLoss < 0 {
			result.Losses++
			lossAmounts = append(lossAmounts, profitLoss)
		}
		if stopped {
			result.Stops++
		}

		tradeReturn := helpers.SafeDivide(profitLoss, capitalAtEntry) * 100
		tradeReturns = append(tradeReturns, tradeReturn)

		stopStatus := analytics.StopStatusNone
		if stopped {
			stopStatus = analytics.StopStatusExecuted
		}

		result.TradeHistory = append(result.TradeHistory, analytics.TradeHistoryItem{
			Date:                day.Period.Start,
			EntryPrice:          entry,
			ExitPrice:           exit,
			ProfitLoss:          profitLoss,
			ProfitPercentage:    tradeReturn,
			Trade:               action,
			Stop:                stopStatus,
			SuggestedEntryPrice: suggested,
			ActualPrice:         day.ClosePrice.Float(),
			LotSize:             lotSize,
			StopPrice:           stopPrice,
			CurrentCapital:      capital,
		})
		result.CapitalEvolution = append(result.CapitalEvolution, analytics.CapitalPoint{
			Date:    day.Period.Start,
			Capital: capital,
		})

		if capital > peak {
			peak = capital
		}
		if peak > 0 {
			drawdownPct := (peak - capital) / peak * 100
			if drawdownPct > maxDrawdownPct {
				maxDrawdownPct = drawdownPct
			}
		}
		if peak-capital > maxDrawdownAmount {
			maxDrawdownAmount = peak - capital
		}
	}

	result.FinalCapital = capital
	result.Profit = capital - params.InitialCapital
	result.ComputePercentages()

	result.AverageGain = mean(gains)
	result.AverageLoss = -mean(absolutes(lossAmounts))
	result.MaxDrawdown = maxDrawdownPct
	result.RecoveryFactor = helpers.SafeDivide(result.Profit, maxDrawdownAmount)
	result.SuccessRate = result.ProfitPercentage
	result.SharpeRatio, result.SortinoRatio = riskAdjustedRatios(tradeReturns)

	return result
}

// entryForDay resolves whether the day triggered a position and at what
// prices. Buys trigger above the reference, sells below; a gap past the
// trigger fills at the open.
func (bs *BacktestService) entryForDay(day *techan.Candle, reference float64,
	params models.AnalysisParams) (entry float64, suggested float64, stopPrice float64, triggered bool) {

	open := day.OpenPrice.Float()
	high := day.MaxPrice.Float()
	low := day.MinPrice.Float()

	if params.Operation == models.OperationBuy {
		suggested = reference * (1 + params.EntryPercentage/100)
		if high < suggested {
			return 0, suggested, 0, false
		}
		entry = suggested
		if open > suggested {
			entry = open
		}
		stopPrice = entry * (1 - params.StopPercentage/100)
		return entry, suggested, stopPrice, true
	}

	suggested = reference * (1 - params.EntryPercentage/100)
	if low > suggested {
		return 0, suggested, 0, false
	}
	entry = suggested
	if open < suggested {
		entry = open
	}
	stopPrice = entry * (1 + params.StopPercentage/100)
	return entry, suggested, stopPrice, true
}

func (bs *BacktestService) exitForDay(day *techan.Candle, stopPrice float64,
	operation models.Operation) (exit float64, stopped bool) {

	high := day.MaxPrice.Float()
	low := day.MinPrice.Float()

	if operation == models.OperationBuy {
		if low <= stopPrice {
			return stopPrice, true
		}
		return day.ClosePrice.Float(), false
	}

	if high >= stopPrice {
		return stopPrice, true
	}
	return day.ClosePrice.Float(), false
}

func referenceValue(candle *techan.Candle, reference models.ReferencePrice) float64 {
	switch reference {
	case models.ReferencePriceOpen:
		return candle.OpenPrice.Float()
	case models.ReferencePriceHigh:
		return candle.MaxPrice.Float()
	case models.ReferencePriceLow:
		return candle.MinPrice.Float()
	default:
		return candle.ClosePrice.Float()
	}
}

// riskAdjustedRatios annualizes mean-over-deviation of per-trade
// returns. Sortino only penalizes the downside.
func riskAdjustedRatios(tradeReturns []float64) (sharpe float64, sortino float64) {
	if len(tradeReturns) < 2 {
		return 0, 0
	}

	meanReturn := stat.Mean(tradeReturns, nil)
	stdDev := stat.StdDev(tradeReturns, nil)
	sharpe = helpers.SafeDivide(meanReturn, stdDev) * math.Sqrt(tradingDaysPerYear)

	var downside []float64
	for _, r := range tradeReturns {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	if len(downside) < 2 {
		return helpers.Finite(sharpe), 0
	}
	downsideDev := stat.StdDev(downside, nil)
	sortino = helpers.SafeDivide(meanReturn, downsideDev) * math.Sqrt(tradingDaysPerYear)

	return helpers.Finite(sharpe), helpers.Finite(sortino)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return helpers.Sum(values) / float64(len(values))
}

func absolutes(values []float64) []float64 {
	result := make([]float64, len(values))
	for i, v := range values {
		result[i] = math.Abs(v)
	}
	return result
}
