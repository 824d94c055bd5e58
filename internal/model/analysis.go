package model

// Analysis is the per-product market trend record returned by the search
// endpoint. Derived per request, never stored.
type Analysis struct {
	Product         string       `json:"product"`
	ProductID       int          `json:"productId"`
	Trend           string       `json:"trend"`
	Score           int          `json:"score"`
	Price           float64      `json:"price"`
	Brand           string       `json:"brand"`
	Rating          float64      `json:"rating"`
	Category        string       `json:"category"`
	HistoricalTrend []TrendPoint `json:"historicalTrend"`
	MarketShare     float64      `json:"marketShare"`
	Recommendation  string       `json:"recommendation"`
}

// TrendPoint is one month of the fabricated historical series.
type TrendPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// Forecast is the per-product forecast record. Derived per request, never
// stored.
type Forecast struct {
	Product       string          `json:"product"`
	Forecast      []ForecastPoint `json:"forecast"`
	GrowthPercent float64         `json:"growthPercent"`
}

// ForecastPoint is one projected month with its confidence band.
type ForecastPoint struct {
	Month          string  `json:"month"`
	Value          float64 `json:"value"`
	ConfidenceLow  float64 `json:"confidenceLow"`
	ConfidenceHigh float64 `json:"confidenceHigh"`
}

// TrendsPoint is one sample of the mocked Google Trends series.
type TrendsPoint struct {
	Date   string `json:"date"`
	Value  int    `json:"value"`
	Region string `json:"region"`
}
