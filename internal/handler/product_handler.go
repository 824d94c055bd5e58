package handler

import (
	"errors"

	"salessight-api/internal/catalog"
	"salessight-api/internal/namecache"
	"salessight-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	catalog  *catalog.Catalog
	cache    *namecache.Cache
	analysis *service.AnalysisService
}

func NewProductHandler(cat *catalog.Catalog, cache *namecache.Cache, analysis *service.AnalysisService) *ProductHandler {
	return &ProductHandler{catalog: cat, cache: cache, analysis: analysis}
}

// SearchRequest represents the search request body
type SearchRequest struct {
	Products []string `json:"products"`
}

// ForecastRequest represents the forecast request body. HorizonMonths is a
// pointer so an explicit 0 (clamped to 1) is distinguishable from an
// omitted field (default 6).
type ForecastRequest struct {
	Products      []string `json:"products"`
	HorizonMonths *int     `json:"horizonMonths"`
}

// GetProducts returns the deduplicated union of catalog names and the
// externally-sourced valid-name set
// GET /api/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	names := h.catalog.Names()
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		seen[n] = struct{}{}
	}
	for _, n := range h.cache.Names() {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}

	return c.JSON(fiber.Map{"success": true, "products": names})
}

// GetBlinkitProducts returns the bundled catalog, unmodified
// GET /api/products/blinkit
func (h *ProductHandler) GetBlinkitProducts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "products": h.catalog.Products()})
}

// SearchProducts handles market trend analysis for a list of product names
// POST /api/products/search
func (h *ProductHandler) SearchProducts(c *fiber.Ctx) error {
	var req SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid JSON"})
	}

	analysis, err := h.analysis.Analyze(c.UserContext(), req.Products)
	if err != nil {
		return analysisError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "analysis": analysis})
}

// ForecastProducts handles forecast chart generation for a list of product names
// POST /api/products/forecast
func (h *ProductHandler) ForecastProducts(c *fiber.Ctx) error {
	var req ForecastRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid JSON"})
	}

	horizon := service.DefaultHorizonMonths
	if req.HorizonMonths != nil {
		horizon = *req.HorizonMonths
	}

	forecast, err := h.analysis.Forecast(c.UserContext(), req.Products, horizon)
	if err != nil {
		return analysisError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "forecast": forecast})
}

// GoogleTrends returns the mocked trends series for a keyword
// GET /api/google-trends?keyword=
func (h *ProductHandler) GoogleTrends(c *fiber.Ctx) error {
	keyword := c.Query("keyword", "grocery products")
	return c.JSON(fiber.Map{
		"success": true,
		"keyword": keyword,
		"data":    h.analysis.GoogleTrends(keyword),
	})
}

// analysisError maps validation failures to 400 and everything else to 500.
// Unknown-product failures carry the full list of unmatched names.
func analysisError(c *fiber.Ctx, err error) error {
	var unknown *service.UnknownProductsError
	if errors.Is(err, service.ErrNoProducts) || errors.As(err, &unknown) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
}
