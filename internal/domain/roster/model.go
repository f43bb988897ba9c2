package roster

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TypeStudent = "student"
	TypeTeacher = "teacher"
)

type Person struct {
	ID             string                   `gorm:"type:uuid;primaryKey"`
	ChurchID       string                   `gorm:"type:uuid;not null;index"`
	Name           string                   `gorm:"not null"`
	Phone          *string                  `gorm:"type:text"`
	Age            *int                     `gorm:"type:integer"`
	Grade          *string                  `gorm:"type:text"`
	Type           string                   `gorm:"type:varchar(16);not null"`
	PhotoURL       *string                  `gorm:"type:text"`
	AttendanceDays datatypes.JSONSlice[int] `gorm:"not null"`
	Notes          *string                  `gorm:"type:text"`
	RegisteredBy   string                   `gorm:"type:uuid;not null"`
	RegisteredAt   time.Time                `gorm:"autoCreateTime"`
	UpdatedAt      time.Time                `gorm:"autoUpdateTime"`
}

func (Person) TableName() string {
	return "persons"
}

// IsEligibleOn reports whether the person is expected on the given day. An
// empty day-set means every day.
func (p Person) IsEligibleOn(day time.Time) bool {
	return DaysInclude(p.AttendanceDays, day.Weekday())
}

func DaysInclude(days []int, weekday time.Weekday) bool {
	if len(days) == 0 {
		return true
	}
	for _, d := range days {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

type ListFilter struct {
	Type  string
	Query string
}

type CreatePersonInput struct {
	ChurchID       string
	RegisteredBy   string
	Name           string
	Phone          *string
	Age            *int
	Grade          *string
	Type           string
	AttendanceDays []int
	Notes          *string
}

type UpdatePersonInput struct {
	ID             string
	ChurchID       string
	Name           *string
	Phone          *string
	Age            *int
	Grade          *string
	Type           *string
	AttendanceDays *[]int
	Notes          *string
}
