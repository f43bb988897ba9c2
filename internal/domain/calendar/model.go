package calendar

import "time"

var EventTypes = []string{"worship", "meeting", "event", "education", "other"}

const DefaultEventType = "event"

type Event struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	ChurchID    string    `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description *string   `gorm:"type:text"`
	Type        string    `gorm:"type:varchar(32);not null"`
	StartAt     time.Time `gorm:"not null;index"`
	EndAt       time.Time `gorm:"not null"`
	Location    *string   `gorm:"type:text"`
	CreatedBy   string    `gorm:"type:uuid;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Event) TableName() string {
	return "calendar_events"
}

type EventInput struct {
	Title       string
	Description *string
	Type        string
	StartAt     time.Time
	EndAt       time.Time
	Location    *string
}

// Overlaps reports whether the event intersects [from, to].
func (e Event) Overlaps(from, to time.Time) bool {
	return !e.StartAt.After(to) && !e.EndAt.Before(from)
}

func ValidEventType(value string) bool {
	for _, t := range EventTypes {
		if t == value {
			return true
		}
	}
	return false
}
