package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
)

// VisitorsUnavailable is shown when the counter has no configured store.
const VisitorsUnavailable = "N/A"

// CounterStore reads and writes the shared visit total.
type CounterStore interface {
	ReadVisits(ctx context.Context) (int, error)
	WriteVisits(ctx context.Context, visits int) error
}

type VisitorCounterService interface {
	Increment(ctx context.Context) string
}

type visitorCounterService struct {
	store CounterStore
}

// NewVisitorCounterService accepts a nil store, in which case every
// Increment returns VisitorsUnavailable without touching the network.
func NewVisitorCounterService(store CounterStore) VisitorCounterService {
	return &visitorCounterService{store: store}
}

// Increment performs a plain read-then-write. There is no locking between the
// two steps, so concurrent visitors can overwrite each other's increment and
// the total is approximate.
func (v *visitorCounterService) Increment(ctx context.Context) string {
	if v.store == nil {
		return VisitorsUnavailable
	}

	visits, err := v.store.ReadVisits(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to read visitor count: %v", err)
		return fmt.Sprintf("Error: %v", err)
	}

	visits++
	if err := v.store.WriteVisits(ctx, visits); err != nil {
		log.Printf("⚠️  Failed to write visitor count: %v", err)
		return fmt.Sprintf("Error: %v", err)
	}

	return strconv.Itoa(visits)
}
