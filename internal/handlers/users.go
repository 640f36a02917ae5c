package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/radaiko/ReadRiser/internal/middleware"
	"github.com/radaiko/ReadRiser/internal/services"
	"github.com/radaiko/ReadRiser/pkg/utils"
)

type UsersHandler struct {
	Service *services.UserService
}

func NewUsersHandler(service *services.UserService) *UsersHandler {
	return &UsersHandler{Service: service}
}

func (h *UsersHandler) Create(c *fiber.Ctx) error {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, "missing actor id")
	}

	var req services.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.Service.Create(c.Context(), req, actorID)
	if err != nil {
		return utils.FromError(c, err)
	}

	return utils.Success(c, fiber.StatusCreated, user)
}

func (h *UsersHandler) List(c *fiber.Ctx) error {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, "missing actor id")
	}

	users, err := h.Service.ListVisible(c.Context(), actorID)
	if err != nil {
		return utils.FromError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"users": users,
		"count": len(users),
	})
}

func (h *UsersHandler) Get(c *fiber.Ctx) error {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, "missing actor id")
	}

	targetID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	user, err := h.Service.GetByID(c.Context(), targetID, actorID)
	if err != nil {
		return utils.FromError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, user)
}
