package services

import (
	"sort"
	"strings"

	"github.com/igorcrp/alpha-quant/models/analytics"
)

// PageEllipsis marks a skipped stretch in a page window.
const PageEllipsis = -1

// FreeTierLimit caps how many results a free account ever sees.
const FreeTierLimit = 10

var pageSizes = []int{10, 50, 100, 500}

// ResultViewService sorts, paginates and tier-gates one run's results.
// Free accounts get the first ten rows in asset-code order and no sort
// controls; premium accounts sort any column and pick a page size.
type ResultViewService struct {
	results    []analytics.AnalysisResult
	subscribed bool
	sortField  string
	ascending  bool
	page       int
	pageSize   int
}

func NewResultViewService(subscribed bool) *ResultViewService {
	return &ResultViewService{
		subscribed: subscribed,
		sortField:  "assetCode",
		ascending:  true,
		page:       1,
		pageSize:   10,
	}
}

// SetResults replaces the whole list and rewinds to the first page.
func (rvs *ResultViewService) SetResults(results []analytics.AnalysisResult) {
	rvs.results = results
	rvs.page = 1
}

func (rvs *ResultViewService) HasResults() bool {
	return len(rvs.results) > 0
}

// ToggleSort reacts to a header click: the active field flips direction,
// a new field starts ascending. Ignored on the free tier.
func (rvs *ResultViewService) ToggleSort(field string) {
	if !rvs.subscribed {
		return
	}
	if rvs.sortField == field {
		rvs.ascending = !rvs.ascending
		return
	}
	rvs.sortField = field
	rvs.ascending = true
}

// SetSort sets field and direction in one call, for stateless callers
// like the HTTP layer that rebuild the view per request. Ignored on
// the free tier.
func (rvs *ResultViewService) SetSort(field string, ascending bool) {
	if !rvs.subscribed {
		return
	}
	rvs.sortField = field
	rvs.ascending = ascending
}

func (rvs *ResultViewService) SortField() string {
	if !rvs.subscribed {
		return "assetCode"
	}
	return rvs.sortField
}

func (rvs *ResultViewService) Ascending() bool {
	if !rvs.subscribed {
		return true
	}
	return rvs.ascending
}

// SetPageSize picks one of the allowed sizes and rewinds to page one.
// The free tier is pinned to ten rows.
func (rvs *ResultViewService) SetPageSize(size int) {
	if !rvs.subscribed {
		return
	}
	for _, allowed := range pageSizes {
		if size == allowed {
			rvs.pageSize = size
			rvs.page = 1
			return
		}
	}
}

func (rvs *ResultViewService) PageSize() int {
	if !rvs.subscribed {
		return FreeTierLimit
	}
	return rvs.pageSize
}

func (rvs *ResultViewService) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if total := rvs.TotalPages(); page > total {
		page = total
	}
	rvs.page = page
}

func (rvs *ResultViewService) Page() int {
	return rvs.page
}

// gated returns the sorted list after the tier cut.
func (rvs *ResultViewService) gated() []analytics.AnalysisResult {
	sorted := make([]analytics.AnalysisResult, len(rvs.results))
	copy(sorted, rvs.results)

	field := rvs.SortField()
	ascending := rvs.Ascending()
	sort.SliceStable(sorted, func(i, j int) bool {
		less := resultLess(sorted[i], sorted[j], field)
		if ascending {
			return less
		}
		return resultLess(sorted[j], sorted[i], field)
	})

	if !rvs.subscribed && len(sorted) > FreeTierLimit {
		sorted = sorted[:FreeTierLimit]
	}
	return sorted
}

// VisibleResults is the current page of the sorted, gated list.
func (rvs *ResultViewService) VisibleResults() []analytics.AnalysisResult {
	gated := rvs.gated()
	size := rvs.PageSize()

	start := (rvs.page - 1) * size
	if start >= len(gated) {
		start = 0
	}
	end := start + size
	if end > len(gated) {
		end = len(gated)
	}
	return gated[start:end]
}

func (rvs *ResultViewService) TotalPages() int {
	count := len(rvs.gated())
	size := rvs.PageSize()
	if count == 0 {
		return 1
	}
	return (count + size - 1) / size
}

// ShowPagination reports whether paging controls make sense at all.
func (rvs *ResultViewService) ShowPagination() bool {
	return rvs.TotalPages() > 1
}

// PageWindow lists the page numbers to render: first and last always,
// up to three pages around the current one (four near either edge) and
// PageEllipsis where pages are skipped.
func (rvs *ResultViewService) PageWindow() []int {
	total := rvs.TotalPages()
	current := rvs.page
	if total <= 1 {
		return []int{1}
	}

	start := current - 1
	if start < 2 {
		start = 2
	}
	end := current + 1
	if end > total-1 {
		end = total - 1
	}
	if current <= 3 && total-1 >= 4 {
		end = 4
	}
	if current >= total-2 && total-3 >= 2 {
		start = total - 3
	}

	window := []int{1}
	if start > 2 {
		window = append(window, PageEllipsis)
	}
	for p := start; p <= end; p++ {
		window = append(window, p)
	}
	if end < total-1 {
		window = append(window, PageEllipsis)
	}
	window = append(window, total)
	return window
}

func resultLess(a analytics.AnalysisResult, b analytics.AnalysisResult, field string) bool {
	switch field {
	case "assetName":
		return strings.ToLower(a.AssetName) < strings.ToLower(b.AssetName)
	case "tradingDays":
		return a.TradingDays < b.TradingDays
	case "trades":
		return a.Trades < b.Trades
	case "profits":
		return a.Profits < b.Profits
	case "losses":
		return a.Losses < b.Losses
	case "stops":
		return a.Stops < b.Stops
	case "tradePercentage":
		return a.TradePercentage < b.TradePercentage
	case "profitPercentage":
		return a.ProfitPercentage < b.ProfitPercentage
	case "lossPercentage":
		return a.LossPercentage < b.LossPercentage
	case "stopPercentage":
		return a.StopPercentage < b.StopPercentage
	case "finalCapital":
		return a.FinalCapital < b.FinalCapital
	case "profit":
		return a.Profit < b.Profit
	case "averageGain":
		return a.AverageGain < b.AverageGain
	case "averageLoss":
		return a.AverageLoss < b.AverageLoss
	case "maxDrawdown":
		return a.MaxDrawdown < b.MaxDrawdown
	case "sharpeRatio":
		return a.SharpeRatio < b.SharpeRatio
	case "sortinoRatio":
		return a.SortinoRatio < b.SortinoRatio
	case "recoveryFactor":
		return a.RecoveryFactor < b.RecoveryFactor
	case "successRate":
		return a.SuccessRate < b.SuccessRate
	default:
		return a.AssetCode < b.AssetCode
	}
}
