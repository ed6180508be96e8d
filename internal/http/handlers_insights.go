package http

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"brandscope/internal/insights"
	"brandscope/internal/services"
)

func insightsService(c *fiber.Ctx) (services.InsightsService, bool) {
	svc, ok := c.Locals("insights").(services.InsightsService)
	return svc, ok && svc != nil
}

func websiteURLParam(c *fiber.Ctx) (string, bool) {
	raw := strings.TrimSpace(c.Query("website_url"))
	return raw, raw != ""
}

func missingURLResponse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Success: false,
		Code:    "BAD_REQUEST",
		Error:   "Missing required query parameter 'website_url'",
	})
}

func serviceUnavailableResponse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Success: false,
		Code:    "INTERNAL_ERROR",
		Error:   "insights service not configured",
	})
}

// getInsightsHandler serves GET /v1/insights?website_url=...&refresh=true.
func getInsightsHandler(c *fiber.Ctx) error {
	raw, ok := websiteURLParam(c)
	if !ok {
		return missingURLResponse(c)
	}
	svc, ok := insightsService(c)
	if !ok {
		return serviceUnavailableResponse(c)
	}

	res, err := svc.Get(c.UserContext(), raw, c.QueryBool("refresh", false))
	if err != nil {
		return insightsError(c, err)
	}

	c.Locals("cached", res.Cached)
	return c.JSON(InsightsResponse{
		Success: true,
		Cached:  res.Cached,
		Data:    res.Insights,
	})
}

// deleteInsightsHandler serves DELETE /v1/insights?website_url=...
func deleteInsightsHandler(c *fiber.Ctx) error {
	raw, ok := websiteURLParam(c)
	if !ok {
		return missingURLResponse(c)
	}
	svc, ok := insightsService(c)
	if !ok {
		return serviceUnavailableResponse(c)
	}

	deleted, err := svc.Evict(c.UserContext(), raw)
	if err != nil {
		return insightsError(c, err)
	}
	return c.JSON(EvictResponse{Success: true, Deleted: deleted})
}

// insightsError maps classified extraction failures to HTTP statuses.
func insightsError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	code := "INTERNAL_ERROR"
	msg := "An unexpected error occurred"

	switch {
	case errors.Is(err, insights.ErrInvalidURLFormat):
		status, code = fiber.StatusBadRequest, "INVALID_URL"
		msg = "Invalid URL format: " + err.Error()
	case errors.Is(err, insights.ErrSiteUnreachable):
		status, code = fiber.StatusNotFound, "WEBSITE_NOT_FOUND"
		msg = "Website not found or unreachable: " + err.Error()
	case errors.Is(err, insights.ErrNoMeaningfulData):
		status, code = fiber.StatusBadRequest, "NO_MEANINGFUL_DATA"
		msg = "No products found, the site may not be a storefront"
	default:
		if logger, ok := c.Locals("logger").(*slog.Logger); ok {
			logger.Error("insights request failed", "request_id", c.Locals("request_id"), "error", err)
		}
	}

	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Code:    code,
		Error:   msg,
	})
}
