package exts

import (
	"github.com/alpixn/site/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success    bool     `json:"success"`
	Message    string   `json:"message,omitempty"`
	Data       any      `json:"data,omitempty"`
	Error      string   `json:"error,omitempty"`
	Errors     []string `json:"errors,omitempty"`
	Pagination any      `json:"pagination,omitempty"`
	Count      *int     `json:"count,omitempty"`
}

func Reply(c *fiber.Ctx, status int, resp Response) error {
	resp.Success = status < fiber.StatusBadRequest
	return c.Status(status).JSON(resp)
}

func OK(c *fiber.Ctx, data any, message ...string) error {
	resp := Response{Data: data}
	if len(message) > 0 {
		resp.Message = message[0]
	}
	return Reply(c, fiber.StatusOK, resp)
}

func Created(c *fiber.Ctx, data any, message string) error {
	return Reply(c, fiber.StatusCreated, Response{Data: data, Message: message})
}

// PaginationOf renders p with the total count under totalKey.
func PaginationOf(p services.Pagination, totalKey string) fiber.Map {
	return fiber.Map{
		"currentPage": p.CurrentPage,
		"totalPages":  p.TotalPages,
		totalKey:      p.TotalCount,
		"hasNext":     p.HasNext,
		"hasPrev":     p.HasPrev,
	}
}
