package database

import "time"

// Quote is one daily OHLCV row. The per-market quote tables all share
// this shape; the table itself comes from a resolved DataSource handle,
// so Quote carries no table name of its own.
type Quote struct {
	Code   string    `json:"code" gorm:"column:code"`
	Name   string    `json:"name" gorm:"column:name"`
	Date   time.Time `json:"date" gorm:"column:date"`
	Open   float64   `json:"open" gorm:"column:open"`
	High   float64   `json:"high" gorm:"column:high"`
	Low    float64   `json:"low" gorm:"column:low"`
	Close  float64   `json:"close" gorm:"column:close"`
	Volume float64   `json:"volume" gorm:"column:volume"`
}

// AssetInfo is the distinct code/name projection of a quote table.
type AssetInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
