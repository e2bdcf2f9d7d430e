package handlers

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/job-assistant/internal/models"
	"alfredoptarigan/job-assistant/internal/services"
)

const resumeFileField = "resume_file"

type ExtractHandler struct {
	parser        services.DocumentParserService
	maxUploadSize int64
}

func NewExtractHandler(parser services.DocumentParserService, maxUploadSize int64) *ExtractHandler {
	return &ExtractHandler{
		parser:        parser,
		maxUploadSize: maxUploadSize,
	}
}

// HandleExtract handles POST /extract
func (h *ExtractHandler) HandleExtract(c *fiber.Ctx) error {
	filename, text, err := h.extract(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.ExtractResponse{
		Text:     text,
		Filename: filename,
	})
}

func (h *ExtractHandler) extract(c *fiber.Ctx) (string, string, error) {
	file, err := c.FormFile(resumeFileField)
	if err != nil {
		return "", "", fmt.Errorf("%s is required", resumeFileField)
	}

	if file.Size > h.maxUploadSize {
		return "", "", fmt.Errorf("resume file too large. Max size: %d bytes", h.maxUploadSize)
	}

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	text, err := h.parser.ExtractText(file.Filename, data)
	if err != nil {
		return "", "", err
	}

	return file.Filename, text, nil
}
