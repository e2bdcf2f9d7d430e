package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/job-assistant/internal/models"
	"alfredoptarigan/job-assistant/internal/services"
	"alfredoptarigan/job-assistant/internal/web"
)

// PageHandler serves the browser form. Every interaction is a full page
// render; the only state kept between requests is the session's visitor
// value.
type PageHandler struct {
	renderer        *web.Renderer
	feedbackService services.FeedbackService
	extractor       *ExtractHandler
	tracker         *VisitorTracker
	sidebar         web.Sidebar
}

func NewPageHandler(
	renderer *web.Renderer,
	feedbackService services.FeedbackService,
	extractor *ExtractHandler,
	tracker *VisitorTracker,
	sidebar web.Sidebar,
) *PageHandler {
	return &PageHandler{
		renderer:        renderer,
		feedbackService: feedbackService,
		extractor:       extractor,
		tracker:         tracker,
		sidebar:         sidebar,
	}
}

// HandleIndex handles GET /
func (h *PageHandler) HandleIndex(c *fiber.Ctx) error {
	return h.render(c, web.PageData{})
}

// HandleSubmit handles POST /
func (h *PageHandler) HandleSubmit(c *fiber.Ctx) error {
	req := models.AnalysisRequest{
		Resume:         c.FormValue("resume"),
		JobDescription: c.FormValue("job_description"),
	}

	data := web.PageData{
		Resume:         req.Resume,
		JobDescription: req.JobDescription,
	}

	if missingInput(req) {
		data.Warning = missingInputMessage
		return h.render(c, data)
	}

	feedback := h.feedbackService.GenerateFeedback(c.UserContext(), req.Resume, req.JobDescription)

	rendered, err := h.renderer.Markdown(feedback)
	if err != nil {
		return err
	}
	data.Feedback = rendered
	data.HasFeedback = true

	return h.render(c, data)
}

// HandleExtract handles POST /extract. It is posted by the same form as the
// analyze button, so both text areas arrive with whatever the user typed and
// only the resume is replaced by the extracted text.
func (h *PageHandler) HandleExtract(c *fiber.Ctx) error {
	data := web.PageData{
		Resume:         c.FormValue("resume"),
		JobDescription: c.FormValue("job_description"),
	}

	filename, text, err := h.extractor.extract(c)
	if err != nil {
		data.Warning = err.Error()
		return h.render(c, data)
	}

	log.Printf("📄 Extracted %d characters from %s", len(text), filename)
	data.Resume = text

	return h.render(c, data)
}

func (h *PageHandler) render(c *fiber.Ctx, data web.PageData) error {
	data.Visitors = h.tracker.Visitors(c)
	data.Sidebar = h.sidebar

	page, err := h.renderer.RenderPage(data)
	if err != nil {
		return err
	}

	c.Type("html", "utf-8")
	return c.Send(page)
}
