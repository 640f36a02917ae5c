package handlers

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/radaiko/ReadRiser/internal/middleware"
	"github.com/radaiko/ReadRiser/internal/services"
	"github.com/radaiko/ReadRiser/pkg/utils"
)

type FilesHandler struct {
	Service *services.FileService
}

func NewFilesHandler(service *services.FileService) *FilesHandler {
	return &FilesHandler{Service: service}
}

func (h *FilesHandler) Upload(c *fiber.Ctx) error {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, "missing actor id")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "file is required")
	}

	filename := filepath.Base(strings.TrimSpace(fileHeader.Filename))
	if filename == "" || filename == "." {
		return utils.Error(c, fiber.StatusBadRequest, "invalid filename")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	stream, err := fileHeader.Open()
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed opening uploaded file")
	}
	defer stream.Close()

	file, err := h.Service.Upload(c.Context(), actorID, filename, contentType, fileHeader.Size, stream)
	if err != nil {
		return utils.FromError(c, err)
	}

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"id":          file.ID,
		"fileName":    file.FileName,
		"size":        file.Size,
		"contentType": file.ContentType,
		"uploadedAt":  file.UploadedAt,
	})
}

func (h *FilesHandler) List(c *fiber.Ctx) error {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, "missing actor id")
	}

	files, err := h.Service.ListAccessible(c.Context(), actorID)
	if err != nil {
		return utils.FromError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"files": files,
		"count": len(files),
	})
}

func (h *FilesHandler) Get(c *fiber.Ctx) error {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, "missing actor id")
	}

	fileID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	file, err := h.Service.GetMetadata(c.Context(), fileID, actorID)
	if err != nil {
		return utils.FromError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, file)
}

func (h *FilesHandler) Download(c *fiber.Ctx) error {
	actorID, ok := middleware.GetActorID(c)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, "missing actor id")
	}

	fileID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	reader, file, err := h.Service.GetContent(c.Context(), fileID, actorID)
	if err != nil {
		return utils.FromError(c, err)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.FileName))
	return c.SendStream(reader, int(file.Size))
}
