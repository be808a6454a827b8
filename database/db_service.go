package database

import (
	"fmt"
	"time"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	database "github.com/igorcrp/alpha-quant/database/models"
	"github.com/igorcrp/alpha-quant/models"
)

type DBService struct {
	DB *gorm.DB
}

func NewDBService(dbHost string, dbPort string, dbName string, dbUser string, dbPass string) (*DBService, error) {
	dsn := dbUser + ":" + dbPass + "@tcp(" + dbHost + ":" + dbPort + ")/" + dbName + "?charset=utf8mb4&parseTime=True&loc=Local"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	dbs := &DBService{
		DB: db,
	}

	// Quote tables are provisioned per market by the data importer and
	// are deliberately not migrated here.
	err = dbs.DB.AutoMigrate(&database.MarketSource{}, &database.MarketIndex{}, &database.Account{})
	if err != nil {
		return nil, err
	}

	return dbs, nil
}

// ResolveDataSource turns a market scope into the typed handle the
// analysis run carries from then on.
func (dbs *DBService) ResolveDataSource(country string, stockMarket string, assetClass string) (models.DataSource, error) {
	var source database.MarketSource
	err := dbs.DB.Where("country = ? AND stock_market = ? AND asset_class = ?",
		country, stockMarket, assetClass).First(&source).Error
	if err != nil {
		return models.DataSource{}, fmt.Errorf("no data source for %s/%s/%s: %w",
			country, stockMarket, assetClass, err)
	}

	return models.DataSource{
		Country:     source.Country,
		StockMarket: source.StockMarket,
		AssetClass:  source.AssetClass,
		Table:       source.DataTable,
	}, nil
}

func (dbs *DBService) ListAssets(source models.DataSource) ([]database.AssetInfo, error) {
	var assets []database.AssetInfo
	err := dbs.DB.Table(source.Table).
		Distinct("code", "name").
		Order("code").
		Find(&assets).Error
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// GetSeries loads the daily candles of one asset inside the analysis
// window, oldest first.
func (dbs *DBService) GetSeries(source models.DataSource, code string, from time.Time, to time.Time) (*techan.TimeSeries, error) {
	var quotes []database.Quote
	err := dbs.DB.Table(source.Table).
		Where("code = ? AND date >= ? AND date <= ?", code, from, to).
		Order("date").
		Find(&quotes).Error
	if err != nil {
		return nil, err
	}

	timeSeries := techan.NewTimeSeries()
	for _, q := range quotes {
		period := techan.NewTimePeriod(q.Date, time.Hour*24)
		candle := techan.NewCandle(period)
		candle.OpenPrice = big.NewDecimal(q.Open)
		candle.ClosePrice = big.NewDecimal(q.Close)
		candle.MaxPrice = big.NewDecimal(q.High)
		candle.MinPrice = big.NewDecimal(q.Low)
		candle.Volume = big.NewDecimal(q.Volume)
		timeSeries.AddCandle(candle)
	}

	return timeSeries, nil
}

func (dbs *DBService) IsSubscribed(email string) bool {
	var account database.Account
	err := dbs.DB.Where("email = ?", email).First(&account).Error
	if err != nil {
		return false
	}
	return account.Subscribed
}

// LatestIndexQuotes reads the two most recent closes of every tracked
// index and derives the day-over-day change.
func (dbs *DBService) LatestIndexQuotes() ([]models.IndexQuote, error) {
	var indexes []database.MarketIndex
	if err := dbs.DB.Find(&indexes).Error; err != nil {
		return nil, err
	}

	var result []models.IndexQuote
	for _, index := range indexes {
		var quotes []database.Quote
		err := dbs.DB.Table(index.DataTable).
			Where("code = ?", index.Symbol).
			Order("date DESC").
			Limit(2).
			Find(&quotes).Error
		if err != nil || len(quotes) == 0 {
			continue
		}

		quote := models.IndexQuote{
			Symbol: index.Symbol,
			Name:   index.Name,
			Price:  quotes[0].Close,
		}
		if len(quotes) == 2 && quotes[1].Close != 0 {
			quote.ChangePct = (quotes[0].Close/quotes[1].Close - 1) * 100
		}
		result = append(result, quote)
	}

	return result, nil
}
