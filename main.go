package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	str2duration "github.com/xhit/go-str2duration/v2"

	"github.com/igorcrp/alpha-quant/database"
	"github.com/igorcrp/alpha-quant/helpers"
	"github.com/igorcrp/alpha-quant/models"
	"github.com/igorcrp/alpha-quant/providers/backtest"
	"github.com/igorcrp/alpha-quant/services"
	"github.com/igorcrp/alpha-quant/ui"
	"github.com/igorcrp/alpha-quant/webserver"
)

var analysisFlags = []cli.Flag{
	&cli.StringFlag{Name: "country", Value: "usa"},
	&cli.StringFlag{Name: "market", Value: "nasdaq"},
	&cli.StringFlag{Name: "asset-class", Value: "stocks"},
	&cli.StringFlag{Name: "operation", Value: "buy", Usage: "buy or sell"},
	&cli.StringFlag{Name: "reference-price", Value: "close", Usage: "open, high, low or close"},
	&cli.Float64Flag{Name: "entry", Value: 1.0, Usage: "entry trigger distance in percent"},
	&cli.Float64Flag{Name: "stop", Value: 2.0, Usage: "stop-loss distance in percent"},
	&cli.Float64Flag{Name: "capital", Value: 10000},
	&cli.StringFlag{Name: "period", Value: "3m"},
	&cli.StringFlag{Name: "account", Usage: "account email, decides the subscription tier"},
}

func main() {
	app := &cli.App{
		Name:  "alpha-quant",
		Usage: "backtests stop-loss/entry-percentage strategies over historical stock data",
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "start the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Value: ":8080"},
				},
				Action: runServer,
			},
			{
				Name:   "analyze",
				Usage:  "run one analysis and print a summary",
				Flags:  analysisFlags,
				Action: runAnalyze,
			},
			{
				Name:   "dashboard",
				Usage:  "run one analysis and browse the results in the terminal",
				Flags:  analysisFlags,
				Action: runDashboard,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		helpers.Logger.Fatalln(err)
	}
}

func newDBService() (*database.DBService, error) {
	return database.NewDBService(os.Getenv("databaseHost"), os.Getenv("databasePort"),
		os.Getenv("databaseName"), os.Getenv("databaseUser"), os.Getenv("databasePassword"))
}

func newAnalysisService(dbs *database.DBService) *services.AnalysisService {
	engine := backtest.NewBacktestService(dbs)
	return services.NewAnalysisService(engine, dbs)
}

func paramsFromContext(c *cli.Context) models.AnalysisParams {
	return models.AnalysisParams{
		Country:         c.String("country"),
		StockMarket:     c.String("market"),
		AssetClass:      c.String("asset-class"),
		Operation:       models.Operation(c.String("operation")),
		ReferencePrice:  models.ReferencePrice(c.String("reference-price")),
		EntryPercentage: c.Float64("entry"),
		StopPercentage:  c.Float64("stop"),
		InitialCapital:  c.Float64("capital"),
		Period:          c.String("period"),
	}
}

func runServer(c *cli.Context) error {
	helpers.Logger.Infoln("🚀 Alpha Quant server starting")

	dbs, err := newDBService()
	if err != nil {
		return err
	}

	ttl := 15 * time.Minute
	if ttlString := os.Getenv("indexCacheTTL"); ttlString != "" {
		parsed, err := str2duration.ParseDuration(ttlString)
		if err != nil {
			helpers.Logger.Warnln("invalid indexCacheTTL '" + ttlString + "', using 15m")
		} else {
			ttl = parsed
		}
	}

	indexCache := services.NewIndexCacheService(dbs, ttl)
	if err := indexCache.Refresh(); err != nil {
		helpers.Logger.Warnln("initial index refresh failed: " + err.Error())
	}

	schedule := os.Getenv("indexRefreshSchedule")
	if schedule == "" {
		schedule = "@every 15m"
	}
	if err := indexCache.StartScheduler(schedule); err != nil {
		return err
	}
	defer indexCache.StopScheduler()

	server := webserver.NewServer(newAnalysisService(dbs), dbs, indexCache)
	addr := c.String("addr")
	helpers.Logger.Infoln("listening on " + addr)
	return server.Run(addr)
}

func runAnalyze(c *cli.Context) error {
	dbs, err := newDBService()
	if err != nil {
		return err
	}

	analysisService := newAnalysisService(dbs)
	params := paramsFromContext(c)

	progress := func(pct float64) {
		fmt.Printf("\ranalyzing... %3.0f%%", pct)
	}

	runID, results, err := analysisService.Run(params, progress)
	if err != nil {
		return err
	}
	fmt.Printf("\rrun %s: %d assets analyzed over %s\n\n", runID, len(results), helpers.PeriodLabel(params.Period))

	for _, r := range results {
		fmt.Printf("%-10s %-30s days=%-4d trades=%-4d win=%s capital=%s profit=%s\n",
			r.AssetCode, r.AssetName, r.TradingDays, r.Trades,
			services.FormatPercentage(r.ProfitPercentage),
			services.FormatCurrency(r.FinalCapital),
			services.FormatCurrency(r.Profit))
	}
	return nil
}

func runDashboard(c *cli.Context) error {
	dbs, err := newDBService()
	if err != nil {
		return err
	}

	analysisService := newAnalysisService(dbs)
	params := paramsFromContext(c)

	_, results, err := analysisService.Run(params, nil)
	if err != nil {
		return err
	}

	subscribed := false
	if account := c.String("account"); account != "" {
		subscribed = dbs.IsSubscribed(account)
	}

	view := services.NewResultViewService(subscribed)
	view.SetResults(results)
	return ui.NewResultsInterface(view, subscribed).Run()
}
