package controller

import (
	"greenwatch-be/internal/pkg/serverutils"
	"greenwatch-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ErrorMappings maps intake service sentinels to HTTP statuses.
var ErrorMappings = []serverutils.ErrorMapping{
	{Err: service.ErrSessionNotFound, Status: fiber.StatusNotFound},
	{Err: service.ErrForbidden, Status: fiber.StatusForbidden},
	{Err: service.ErrEmptyMessage, Status: fiber.StatusBadRequest},
	{Err: service.ErrNoDocument, Status: fiber.StatusConflict},
}
