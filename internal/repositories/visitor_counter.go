package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/job-assistant/internal/models"
)

const counterRowID = 1

// VisitorCounterRepository keeps the visit total in a single postgres row.
// It satisfies services.CounterStore.
type VisitorCounterRepository interface {
	ReadVisits(ctx context.Context) (int, error)
	WriteVisits(ctx context.Context, visits int) error
}

type visitorCounterRepository struct {
	db *gorm.DB
}

func NewVisitorCounterRepository(db *gorm.DB) VisitorCounterRepository {
	return &visitorCounterRepository{db: db}
}

// ReadVisits implements VisitorCounterRepository. A missing row reads as zero.
func (r *visitorCounterRepository) ReadVisits(ctx context.Context) (int, error) {
	var counter models.VisitorCounter
	if err := r.db.WithContext(ctx).Where("id = ?", counterRowID).First(&counter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read visitor count: %w", err)
	}

	return counter.Visits, nil
}

// WriteVisits implements VisitorCounterRepository.
func (r *visitorCounterRepository) WriteVisits(ctx context.Context, visits int) error {
	counter := models.VisitorCounter{
		ID:        counterRowID,
		Visits:    visits,
		UpdatedAt: time.Now(),
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"visits", "updated_at"}),
	}).Create(&counter).Error
	if err != nil {
		return fmt.Errorf("failed to write visitor count: %w", err)
	}

	return nil
}
