package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"salessight-api/internal/catalog"
	"salessight-api/internal/model"
	"salessight-api/internal/namecache"
)

var ErrNoProducts = errors.New("products array is required and must not be empty")

const (
	// DefaultHorizonMonths applies when a forecast request omits the horizon.
	DefaultHorizonMonths = 6

	maxHorizonMonths = 12

	TrendExplosive = "explosive"
	TrendGrowing   = "growing"
	TrendStable    = "stable"
)

// historicalMonths are the fixed labels of the fabricated six-point series.
var historicalMonths = [6]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}

// UnknownProductsError aggregates every input name absent from both the
// catalog and the valid-name cache. Validation is all-or-nothing.
type UnknownProductsError struct {
	Names []string
}

func (e *UnknownProductsError) Error() string {
	return fmt.Sprintf("products not found: %s", strings.Join(e.Names, ", "))
}

// AnalysisService generates the simulated market analysis, forecast, and
// trends payloads. The same validation backs both search and forecast.
type AnalysisService struct {
	catalog *catalog.Catalog
	cache   *namecache.Cache

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewAnalysisService wires the generator. Pass a seeded rng for
// deterministic output; nil falls back to a time-seeded source.
func NewAnalysisService(cat *catalog.Catalog, cache *namecache.Cache, rng *rand.Rand) *AnalysisService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &AnalysisService{
		catalog: cat,
		cache:   cache,
		rng:     rng,
		now:     time.Now,
	}
}

// Analyze validates the input names and returns one analysis record per
// name, in input order.
func (s *AnalysisService) Analyze(ctx context.Context, names []string) ([]model.Analysis, error) {
	if err := s.validate(ctx, names); err != nil {
		return nil, err
	}

	results := make([]model.Analysis, 0, len(names))
	for i, name := range names {
		results = append(results, s.analyzeOne(name, i))
	}
	return results, nil
}

func (s *AnalysisService) analyzeOne(name string, index int) model.Analysis {
	a := model.Analysis{
		Product:         name,
		HistoricalTrend: historicalSeries(index),
	}

	if p, ok := s.catalog.Find(name); ok {
		a.ProductID = p.ID
		a.Price = p.Price
		a.Brand = p.Brand
		a.Rating = p.Rating
		a.Category = p.Category
		a.Score = clamp(int(math.Round(p.Rating*20)), 0, 100)
		switch {
		case p.Rating >= 4.7:
			a.Trend = TrendExplosive
		case p.Rating >= 4.5:
			a.Trend = TrendGrowing
		default:
			a.Trend = TrendStable
		}
		a.MarketShare = round1(float64(a.Score) / 4)
	} else {
		// Known only to the external service: no catalog attributes to
		// derive from, so score and share are fabricated.
		a.Score = 70 + s.randIntn(25)
		a.Trend = TrendGrowing
		a.MarketShare = round1(5 + s.randFloat()*20)
	}

	a.Recommendation = recommendationFor(a.Trend)
	return a
}

// historicalSeries fabricates six points scaled only by the item's position
// in the input list, for visual variety in charts.
func historicalSeries(index int) []model.TrendPoint {
	points := make([]model.TrendPoint, len(historicalMonths))
	base := 40 + index*12
	for m := range historicalMonths {
		points[m] = model.TrendPoint{
			Month: historicalMonths[m],
			Value: float64(base + m*(index+3)),
		}
	}
	return points
}

func recommendationFor(trend string) string {
	switch trend {
	case TrendExplosive:
		return "Strong demand surge expected, prioritize stock for this product"
	case TrendGrowing:
		return "Steady growth expected, consider increasing inventory"
	default:
		return "Stable demand, maintain current inventory levels"
	}
}

// Forecast validates the input names and synthesizes one forecast record
// per name. The horizon is clamped to [1,12] months.
func (s *AnalysisService) Forecast(ctx context.Context, names []string, horizonMonths int) ([]model.Forecast, error) {
	if err := s.validate(ctx, names); err != nil {
		return nil, err
	}

	horizonMonths = clamp(horizonMonths, 1, maxHorizonMonths)

	start := s.now()
	results := make([]model.Forecast, 0, len(names))
	for _, name := range names {
		results = append(results, s.forecastOne(name, horizonMonths, start))
	}
	return results, nil
}

func (s *AnalysisService) forecastOne(name string, horizon int, start time.Time) model.Forecast {
	base := 100 + s.randFloat()*100

	points := make([]model.ForecastPoint, horizon)
	for m := 0; m < horizon; m++ {
		value := base + base*0.06*float64(m+1)
		value += (s.randFloat() - 0.5) * base * 0.1 // bounded jitter
		value = round1(value)
		points[m] = model.ForecastPoint{
			Month:          start.AddDate(0, m+1, 0).Format("Jan 2006"),
			Value:          value,
			ConfidenceLow:  round1(value * 0.90),
			ConfidenceHigh: round1(value * 1.15),
		}
	}

	growth := 0.0
	if first := points[0].Value; first > 0 {
		growth = round1((points[horizon-1].Value - first) / first * 100)
	}

	return model.Forecast{
		Product:       name,
		Forecast:      points,
		GrowthPercent: growth,
	}
}

// GoogleTrends fabricates twelve monthly interest samples for a keyword.
func (s *AnalysisService) GoogleTrends(keyword string) []model.TrendsPoint {
	end := s.now()
	points := make([]model.TrendsPoint, 12)
	for i := 0; i < 12; i++ {
		points[i] = model.TrendsPoint{
			Date:   end.AddDate(0, i-11, 0).Format("2006-01"),
			Value:  40 + s.randIntn(60),
			Region: "IN",
		}
	}
	return points
}

// validate checks every name against the union of catalog names and the
// externally-sourced valid-name set. An empty cache triggers one
// synchronous refresh first so a cold start does not reject everything.
func (s *AnalysisService) validate(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return ErrNoProducts
	}

	if s.cache.Len() == 0 {
		// Best effort, failure falls through to catalog-only validation.
		_ = s.cache.Refresh(ctx)
	}

	var unknown []string
	for _, name := range names {
		if !s.catalog.Contains(name) && !s.cache.Contains(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return &UnknownProductsError{Names: unknown}
	}
	return nil
}

func (s *AnalysisService) randIntn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func (s *AnalysisService) randFloat() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
