package handler

import (
	"errors"

	"salessight-api/internal/mlclient"

	"github.com/gofiber/fiber/v2"
)

type RecommendHandler struct {
	ml *mlclient.Client
}

func NewRecommendHandler(ml *mlclient.Client) *RecommendHandler {
	return &RecommendHandler{ml: ml}
}

// RecommendProducts is a thin proxy to the external forecasting service.
// Upstream JSON is relayed verbatim on success; upstream error statuses are
// relayed with the upstream's own payload; transport failures become 503
// with a detail distinguishing timeout from unreachable.
// GET /api/recommend-products
func (h *RecommendHandler) RecommendProducts(c *fiber.Ctx) error {
	resp, err := h.ml.Recommend(c.UserContext())
	if err != nil {
		if errors.Is(err, mlclient.ErrTimeout) || errors.Is(err, mlclient.ErrUnreachable) {
			return c.Status(503).JSON(fiber.Map{
				"error":  "ML service unavailable",
				"detail": err.Error(),
			})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	if resp.ContentType != "" {
		c.Set(fiber.HeaderContentType, resp.ContentType)
	}
	return c.Status(resp.StatusCode).Send(resp.Body)
}
