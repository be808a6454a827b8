package models

// DataSource is the resolved handle to one market's historical quote
// table. Obtained once per analysis run so the table name never travels
// as a loose string.
type DataSource struct {
	Country     string
	StockMarket string
	AssetClass  string
	Table       string
}

// IndexQuote is one market index snapshot held by the index cache.
type IndexQuote struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"changePct"`
}
