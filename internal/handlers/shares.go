package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/radaiko/ReadRiser/internal/middleware"
	"github.com/radaiko/ReadRiser/internal/services"
	"github.com/radaiko/ReadRiser/pkg/utils"
)

type SharesHandler struct {
	Service *services.FileService
}

func NewSharesHandler(service *services.FileService) *SharesHandler {
	return &SharesHandler{Service: service}
}

type shareFileRequest struct {
	UserIDs []string `json:"userIDs"`
}

// ShareFile is best-effort per target: malformed, unknown, and rule-failing
// ids are dropped without being reported, so the response never reveals
// which ids exist.
func (h *SharesHandler) ShareFile(c *fiber.Ctx) error {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, "missing actor id")
	}

	fileID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	var req shareFileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.UserIDs) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "userIDs is required")
	}

	targetIDs := make([]uuid.UUID, 0, len(req.UserIDs))
	for _, raw := range req.UserIDs {
		id, err := parseUUID(raw)
		if err != nil {
			continue
		}
		targetIDs = append(targetIDs, id)
	}

	result, err := h.Service.Share(c.Context(), fileID, targetIDs, actorID)
	if err != nil {
		return utils.FromError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, result)
}
