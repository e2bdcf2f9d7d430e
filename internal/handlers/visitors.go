package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"alfredoptarigan/job-assistant/internal/models"
	"alfredoptarigan/job-assistant/internal/services"
)

const visitorsSessionKey = "visitors"

// VisitorTracker runs the visitor counter once per browser session and
// remembers the displayed value for the rest of it.
type VisitorTracker struct {
	sessions *session.Store
	counter  services.VisitorCounterService
}

func NewVisitorTracker(sessions *session.Store, counter services.VisitorCounterService) *VisitorTracker {
	return &VisitorTracker{
		sessions: sessions,
		counter:  counter,
	}
}

func (t *VisitorTracker) Visitors(c *fiber.Ctx) string {
	sess, err := t.sessions.Get(c)
	if err != nil {
		log.Printf("⚠️  Failed to load session: %v", err)
		return fmt.Sprintf("Error: %v", err)
	}

	if value, ok := sess.Get(visitorsSessionKey).(string); ok {
		return value
	}

	value := t.counter.Increment(c.UserContext())
	sess.Set(visitorsSessionKey, value)
	if err := sess.Save(); err != nil {
		log.Printf("⚠️  Failed to save session: %v", err)
	}

	return value
}

type VisitorHandler struct {
	tracker *VisitorTracker
}

func NewVisitorHandler(tracker *VisitorTracker) *VisitorHandler {
	return &VisitorHandler{tracker: tracker}
}

// HandleVisitors handles GET /visitors
func (h *VisitorHandler) HandleVisitors(c *fiber.Ctx) error {
	return c.JSON(models.VisitorsResponse{
		Visitors: h.tracker.Visitors(c),
	})
}
