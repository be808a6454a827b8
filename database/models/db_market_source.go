package database

import "gorm.io/gorm"

// MarketSource maps a (country, stock market, asset class) triple to the
// physical table holding that market's historical quotes.
type MarketSource struct {
	gorm.Model
	Country     string `json:"country" gorm:"uniqueIndex:idx_market_scope;size:100"`
	StockMarket string `json:"stockMarket" gorm:"uniqueIndex:idx_market_scope;size:100"`
	AssetClass  string `json:"assetClass" gorm:"uniqueIndex:idx_market_scope;size:100"`
	DataTable   string `json:"dataTable" gorm:"size:200"`
}

// MarketIndex is one benchmark index tracked by the index cache.
type MarketIndex struct {
	gorm.Model
	Symbol    string `json:"symbol" gorm:"uniqueIndex;size:50"`
	Name      string `json:"name" gorm:"size:200"`
	DataTable string `json:"dataTable" gorm:"size:200"`
}
