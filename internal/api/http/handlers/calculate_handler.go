package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/service"
)

// CalculateHandler exposes the stateless arithmetic endpoint.
type CalculateHandler struct{}

// NewCalculateHandler constructs handler.
func NewCalculateHandler() *CalculateHandler {
	return &CalculateHandler{}
}

// Calculate handles GET /calculate?a=&b=&op=. Operation errors are reported
// as a 200 with a stable error string, matching the endpoint's contract;
// only malformed operands are a client error.
func (h *CalculateHandler) Calculate(c *fiber.Ctx) error {
	a, err := strconv.ParseFloat(c.Query("a"), 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "query parameter 'a' must be a number")
	}
	b, err := strconv.ParseFloat(c.Query("b"), 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "query parameter 'b' must be a number")
	}
	op := c.Query("op")

	result, calcErr := service.Calculate(a, b, op)
	if calcErr != nil {
		return c.JSON(fiber.Map{"error": calcErr.Error()})
	}

	return c.JSON(fiber.Map{
		"result":    result,
		"operation": op,
	})
}
