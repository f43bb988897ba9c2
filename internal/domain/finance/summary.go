package finance

import (
	"math"
	"sort"
)

// Summarize totals both ledgers. Buckets are ordered by total, largest first;
// months ascend.
func Summarize(offerings []Offering, expenses []Expense) Summary {
	byType := map[string]*Bucket{}
	byCategory := map[string]*Bucket{}
	months := map[string]*MonthRow{}

	month := func(key string) *MonthRow {
		row, ok := months[key]
		if !ok {
			row = &MonthRow{Month: key}
			months[key] = row
		}
		return row
	}

	var summary Summary
	for _, offering := range offerings {
		summary.IncomeTotal += offering.Amount
		addToBucket(byType, offering.Type, offering.Amount)
		month(offering.Date.Format("2006-01")).Income += offering.Amount
	}
	for _, expense := range expenses {
		summary.ExpenseTotal += expense.Amount
		addToBucket(byCategory, expense.Category, expense.Amount)
		month(expense.Date.Format("2006-01")).Expense += expense.Amount
	}

	summary.IncomeTotal = round2(summary.IncomeTotal)
	summary.ExpenseTotal = round2(summary.ExpenseTotal)
	summary.Balance = round2(summary.IncomeTotal - summary.ExpenseTotal)
	summary.ByType = sortedBuckets(byType)
	summary.ByCategory = sortedBuckets(byCategory)

	summary.Monthly = make([]MonthRow, 0, len(months))
	for _, row := range months {
		row.Income = round2(row.Income)
		row.Expense = round2(row.Expense)
		row.Balance = round2(row.Income - row.Expense)
		summary.Monthly = append(summary.Monthly, *row)
	}
	sort.Slice(summary.Monthly, func(i, j int) bool { return summary.Monthly[i].Month < summary.Monthly[j].Month })

	return summary
}

func addToBucket(buckets map[string]*Bucket, key string, amount float64) {
	bucket, ok := buckets[key]
	if !ok {
		bucket = &Bucket{Key: key}
		buckets[key] = bucket
	}
	bucket.Total += amount
	bucket.Count++
}

func sortedBuckets(buckets map[string]*Bucket) []Bucket {
	result := make([]Bucket, 0, len(buckets))
	for _, bucket := range buckets {
		bucket.Total = round2(bucket.Total)
		result = append(result, *bucket)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Key < result[j].Key
	})
	return result
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
