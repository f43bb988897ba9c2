package attendance

import (
	"time"

	"church-app-go/internal/domain/roster"
)

const dateLayout = "2006-01-02"

// Record is one check-in. At most one exists per person and calendar day.
type Record struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	PersonID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_person_date"`
	ChurchID  string    `gorm:"type:uuid;not null;index"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_attendance_person_date"`
	CheckedBy string    `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Record) TableName() string {
	return "attendance_records"
}

type CheckInInput struct {
	ChurchID  string
	PersonID  string
	Date      time.Time
	CheckedBy string
}

type BoardEntry struct {
	Person    roster.Person
	CheckedIn bool
	Record    *Record
}

// DayBoard is the check-in sheet for one day, split by whether each person
// is expected on that weekday.
type DayBoard struct {
	Date         time.Time
	Eligible     []BoardEntry
	Ineligible   []BoardEntry
	CheckedCount int
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type WeekBucket struct {
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
	Count     int    `json:"count"`
}

type PersonRate struct {
	PersonID string  `json:"person_id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Expected int     `json:"expected"`
	Actual   int     `json:"actual"`
	Rate     float64 `json:"rate"`
}

type PersonMonthStats struct {
	PersonID string
	Month    string
	Expected int
	Actual   int
	Rate     float64
	Dates    []string
}

type MonthlyStats struct {
	Month            string
	TotalCheckIns    int
	UniquePersons    int
	ExpectedCheckIns int
	Rate             float64
	Daily            []DailyCount
	Weekly           []WeekBucket
	Persons          []PersonRate
}

// DateOnly truncates t to its calendar day in t's location and returns that
// day at midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
