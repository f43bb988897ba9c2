package schedule

import "time"

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Duty struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	ChurchID   string    `gorm:"type:uuid;not null;index"`
	DutyType   string    `gorm:"type:varchar(32);not null"`
	DutyName   string    `gorm:"not null"`
	PersonID   *string   `gorm:"type:uuid;index"`
	Date       time.Time `gorm:"type:date;not null;index"`
	Status     string    `gorm:"type:varchar(16);not null"`
	Notes      *string   `gorm:"type:text"`
	AssignedBy string    `gorm:"type:uuid;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Duty) TableName() string {
	return "service_schedules"
}

// Listed carries the assigned person's name for display.
type Listed struct {
	Duty
	PersonName string
}

type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Status string
}

type DutyInput struct {
	DutyType string
	DutyName string
	PersonID *string
	Date     time.Time
	Status   string
	Notes    *string
}

func ValidStatus(value string) bool {
	switch value {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
