package models

import "time"

// VisitorCount is the JSON document kept in the hosted document store.
type VisitorCount struct {
	Visits int `json:"visits"`
}

// VisitorCounter is the single row used by the postgres counter backend.
type VisitorCounter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Visits    int       `gorm:"not null;default:0" json:"visits"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (VisitorCounter) TableName() string {
	return "visitor_counters"
}
