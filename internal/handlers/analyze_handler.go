package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/job-assistant/internal/models"
	"alfredoptarigan/job-assistant/internal/services"
)

const missingInputMessage = "Please paste both your resume and the job description."

type AnalyzeHandler struct {
	feedbackService services.FeedbackService
}

func NewAnalyzeHandler(feedbackService services.FeedbackService) *AnalyzeHandler {
	return &AnalyzeHandler{
		feedbackService: feedbackService,
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalysisRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if missingInput(req) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": missingInputMessage,
		})
	}

	// error strings are returned the same way as feedback
	feedback := h.feedbackService.GenerateFeedback(c.UserContext(), req.Resume, req.JobDescription)

	return c.JSON(models.AnalysisResponse{
		Feedback: feedback,
	})
}

func missingInput(req models.AnalysisRequest) bool {
	return req.Resume == "" || req.JobDescription == ""
}
