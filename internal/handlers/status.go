package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/radaiko/ReadRiser/internal/services"
	"github.com/radaiko/ReadRiser/pkg/utils"
)

// Version is the server version, injected at build time:
//
//	go build -ldflags "-X github.com/radaiko/ReadRiser/internal/handlers.Version=1.2.3"
var Version = "dev"

const apiVersion = "v1"

var startedAt = time.Now().UTC()

type versionResponse struct {
	Version    string `json:"version"`
	APIVersion string `json:"apiVersion"`
}

func GetVersion(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, versionResponse{
		Version:    Version,
		APIVersion: apiVersion,
	})
}

func GetStatus(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"service":       "readriser",
		"version":       Version,
		"uptimeSeconds": int64(time.Since(startedAt).Seconds()),
	})
}

func GetCredits(c *fiber.Ctx) error {
	credits := services.Credits()
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"credits": credits,
		"count":   len(credits),
	})
}
