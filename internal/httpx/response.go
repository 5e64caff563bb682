// Package httpx holds the JSON envelope every API response is wrapped in.
package httpx

import "github.com/gofiber/fiber/v2"

// Response is the envelope clients receive: a success flag, a human-readable
// message and, on success, the payload.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func OK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(Response{Success: true, Data: data})
}

func OKMessage(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(Response{Success: true, Message: message, Data: data})
}

func Created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Response{Success: true, Message: message, Data: data})
}

func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Success: false, Message: message})
}
