package middleware

import (
	"log"
	"strings"
	"time"

	"salessight-api/internal/model"
	"salessight-api/internal/repository"
	"salessight-api/internal/ws"

	"github.com/gofiber/fiber/v2"
)

// RecordAnalytics persists one AnalyticsLog row per handled request and
// feeds the live activity websocket. Repo may be nil when no database is
// configured; the hub feed still works without it.
func RecordAnalytics(repo repository.AnalyticsRepository, hub *ws.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Websocket upgrades never complete in request scope
		if strings.HasPrefix(c.Path(), "/ws") {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		duration := time.Since(start).Milliseconds()

		entry := model.AnalyticsLog{
			Method:     c.Method(),
			Path:       c.Path(),
			StatusCode: c.Response().StatusCode(),
			DurationMs: duration,
			IP:         c.IP(),
		}

		if hub != nil {
			hub.PublishActivity(ws.ActivityEvent{
				Method:     entry.Method,
				Path:       entry.Path,
				StatusCode: entry.StatusCode,
				DurationMs: entry.DurationMs,
				Timestamp:  time.Now(),
			})
		}

		if repo != nil {
			// Off the request path, a lost row is acceptable bookkeeping
			go func(e model.AnalyticsLog) {
				if err := repo.Create(&e); err != nil {
					log.Printf("Warning: failed to persist analytics log: %v", err)
				}
			}(entry)
		}

		return err
	}
}
