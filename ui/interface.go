package ui

import (
	"fmt"
	"strconv"

	termui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/igorcrp/alpha-quant/services"
)

type column struct {
	field  string
	header string
}

var columns = []column{
	{"assetCode", "Code"},
	{"assetName", "Name"},
	{"tradingDays", "Days"},
	{"trades", "Trades"},
	{"profitPercentage", "Win %"},
	{"finalCapital", "Final Capital"},
	{"profit", "Profit"},
	{"maxDrawdown", "Max DD"},
	{"sharpeRatio", "Sharpe"},
}

// ResultsInterface renders the result table of the current run in the
// terminal. Sorting keys only act for premium accounts; the view layer
// enforces that, the interface just reflects it.
type ResultsInterface struct {
	view       *services.ResultViewService
	subscribed bool
	selected   int
}

func NewResultsInterface(view *services.ResultViewService, subscribed bool) *ResultsInterface {
	return &ResultsInterface{
		view:       view,
		subscribed: subscribed,
	}
}

func (ri *ResultsInterface) Run() error {
	if err := termui.Init(); err != nil {
		return fmt.Errorf("failed to initialize termui: %w", err)
	}
	defer termui.Close()

	ri.render()

	for e := range termui.PollEvents() {
		switch e.ID {
		case "q", "<C-c>":
			return nil
		case "<Right>":
			if ri.selected < len(columns)-1 {
				ri.selected++
			}
		case "<Left>":
			if ri.selected > 0 {
				ri.selected--
			}
		case "s":
			ri.view.ToggleSort(columns[ri.selected].field)
		case "n":
			ri.view.SetPage(ri.view.Page() + 1)
		case "p":
			ri.view.SetPage(ri.view.Page() - 1)
		case "+":
			ri.view.SetPageSize(ri.nextPageSize())
		}
		ri.render()
	}

	return nil
}

func (ri *ResultsInterface) render() {
	header := widgets.NewParagraph()
	header.Title = "Alpha Quant Results"
	header.BorderStyle.Fg = termui.ColorYellow
	header.TitleStyle.Fg = termui.ColorYellow
	tier := "FREE (first 10 results, sorted by code)"
	if ri.subscribed {
		tier = "PREMIUM"
	}
	header.Text = fmt.Sprintf("Tier: %s\n", tier)
	header.Text += fmt.Sprintf("Sort: %s %s | Column: %s\n",
		ri.view.SortField(), sortArrow(ri.view.Ascending()), columns[ri.selected].header)
	header.Text += fmt.Sprintf("Page %d/%d  %s\n", ri.view.Page(), ri.view.TotalPages(), ri.pageWindowString())
	header.Text += "keys: ←/→ column, s sort, p/n page, + page size, q quit"
	header.SetRect(0, 0, 100, 6)

	table := widgets.NewTable()
	table.TextAlignment = termui.AlignLeft
	table.RowSeparator = false
	table.Rows = ri.tableRows()
	table.SetRect(0, 6, 140, 6+len(table.Rows)+3)

	termui.Render(header, table)
}

func (ri *ResultsInterface) tableRows() [][]string {
	results := ri.view.VisibleResults()
	if len(results) == 0 {
		return [][]string{{"No results found"}}
	}

	rows := [][]string{{
		"Code", "Name", "Days", "Trades", "Win %", "Final Capital", "Profit", "Max DD", "Sharpe",
	}}
	for _, r := range results {
		rows = append(rows, []string{
			r.AssetCode,
			r.AssetName,
			strconv.Itoa(r.TradingDays),
			strconv.Itoa(r.Trades),
			services.FormatPercentage(r.ProfitPercentage),
			services.FormatCurrency(r.FinalCapital),
			services.FormatCurrency(r.Profit),
			services.FormatPercentage(r.MaxDrawdown),
			fmt.Sprintf("%.2f", r.SharpeRatio),
		})
	}
	return rows
}

func (ri *ResultsInterface) pageWindowString() string {
	window := ri.view.PageWindow()
	out := ""
	for i, p := range window {
		if i > 0 {
			out += " "
		}
		if p == services.PageEllipsis {
			out += "…"
			continue
		}
		out += strconv.Itoa(p)
	}
	return out
}

func (ri *ResultsInterface) nextPageSize() int {
	switch ri.view.PageSize() {
	case 10:
		return 50
	case 50:
		return 100
	case 100:
		return 500
	default:
		return 10
	}
}

func sortArrow(ascending bool) string {
	if ascending {
		return "▲"
	}
	return "▼"
}
