package finance

import "time"

const (
	OfferingTithe        = "tithe"
	OfferingThanksgiving = "thanksgiving"
	OfferingMission      = "mission"
	OfferingBuilding     = "building"
	OfferingSpecial      = "special"
	OfferingGeneral      = "general"
)

var OfferingTypes = []string{
	OfferingTithe,
	OfferingThanksgiving,
	OfferingMission,
	OfferingBuilding,
	OfferingSpecial,
	OfferingGeneral,
}

type Offering struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	ChurchID   string    `gorm:"type:uuid;not null;index"`
	Type       string    `gorm:"type:varchar(32);not null"`
	Amount     float64   `gorm:"type:numeric(14,2);not null"`
	Date       time.Time `gorm:"type:date;not null;index"`
	PersonID   *string   `gorm:"type:uuid;index"`
	Notes      *string   `gorm:"type:text"`
	RecordedBy string    `gorm:"type:uuid;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Offering) TableName() string {
	return "offerings"
}

type Expense struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	ChurchID    string    `gorm:"type:uuid;not null;index"`
	Category    string    `gorm:"type:varchar(64);not null"`
	Amount      float64   `gorm:"type:numeric(14,2);not null"`
	Date        time.Time `gorm:"type:date;not null;index"`
	Description *string   `gorm:"type:text"`
	Notes       *string   `gorm:"type:text"`
	RecordedBy  string    `gorm:"type:uuid;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Expense) TableName() string {
	return "expenses"
}

// ListFilter bounds both ledgers. Kind narrows by offering type or expense
// category.
type ListFilter struct {
	From *time.Time
	To   *time.Time
	Kind string
}

type OfferingInput struct {
	Type     string
	Amount   float64
	Date     time.Time
	PersonID *string
	Notes    *string
}

type ExpenseInput struct {
	Category    string
	Amount      float64
	Date        time.Time
	Description *string
	Notes       *string
}

type Bucket struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type MonthRow struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

type Summary struct {
	IncomeTotal  float64
	ExpenseTotal float64
	Balance      float64
	ByType       []Bucket
	ByCategory   []Bucket
	Monthly      []MonthRow
}

func ValidOfferingType(value string) bool {
	for _, t := range OfferingTypes {
		if t == value {
			return true
		}
	}
	return false
}
