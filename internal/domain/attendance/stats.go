package attendance

import (
	"math"
	"sort"
	"time"

	"church-app-go/internal/domain/roster"
)

// MonthStart returns the first day of t's month at midnight UTC.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func monthEnd(month time.Time) time.Time {
	return MonthStart(month).AddDate(0, 1, -1)
}

// window returns the elapsed part of month as of today, inclusive. ok is
// false when the month has not started yet.
func window(month, today time.Time) (from, to time.Time, ok bool) {
	from = MonthStart(month)
	to = monthEnd(month)
	today = DateOnly(today)
	if today.Before(from) {
		return from, to, false
	}
	if today.Before(to) {
		to = today
	}
	return from, to, true
}

// ExpectedDays counts the days of month up to and including today whose
// weekday is in days. An empty day-set counts every elapsed day.
func ExpectedDays(days []int, month, today time.Time) int {
	from, to, ok := window(month, today)
	if !ok {
		return 0
	}

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if roster.DaysInclude(days, d.Weekday()) {
			count++
		}
	}
	return count
}

// countCheckIns counts distinct check-in days inside the elapsed window.
func countCheckIns(records []Record, month, today time.Time) int {
	from, to, ok := window(month, today)
	if !ok {
		return 0
	}

	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		day := DateOnly(record.Date)
		if day.Before(from) || day.After(to) {
			continue
		}
		seen[day.Format(dateLayout)] = struct{}{}
	}
	return len(seen)
}

// AttendanceRate is actual check-ins over expected days for the month,
// capped at 1. It is 0 when no day was expected.
func AttendanceRate(days []int, records []Record, month, today time.Time) float64 {
	expected := ExpectedDays(days, month, today)
	if expected == 0 {
		return 0
	}
	return ratio(countCheckIns(records, month, today), expected)
}

func ratio(actual, expected int) float64 {
	if expected <= 0 {
		return 0
	}
	rate := float64(actual) / float64(expected)
	if rate > 1 {
		rate = 1
	}
	return math.Round(rate*10000) / 10000
}

// DailyCounts returns check-ins per day, ordered by date.
func DailyCounts(records []Record) []DailyCount {
	counts := make(map[string]int)
	for _, record := range records {
		counts[DateOnly(record.Date).Format(dateLayout)]++
	}

	result := make([]DailyCount, 0, len(counts))
	for date, count := range counts {
		result = append(result, DailyCount{Date: date, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}

// WeeklyRollup buckets the month's check-ins into Sunday-started weeks,
// clipped to the month boundaries.
func WeeklyRollup(records []Record, month time.Time) []WeekBucket {
	start := MonthStart(month)
	end := monthEnd(month)

	var buckets []WeekBucket
	for weekStart := start; !weekStart.After(end); {
		weekEnd := weekStart.AddDate(0, 0, 6-int(weekStart.Weekday()))
		if weekEnd.After(end) {
			weekEnd = end
		}

		count := 0
		for _, record := range records {
			day := DateOnly(record.Date)
			if !day.Before(weekStart) && !day.After(weekEnd) {
				count++
			}
		}

		buckets = append(buckets, WeekBucket{
			WeekStart: weekStart.Format(dateLayout),
			WeekEnd:   weekEnd.Format(dateLayout),
			Count:     count,
		})
		weekStart = weekEnd.AddDate(0, 0, 1)
	}
	return buckets
}

// SummarizeMonth builds the church-wide monthly view from raw rows.
func SummarizeMonth(persons []roster.Person, records []Record, month, today time.Time) MonthlyStats {
	byPerson := make(map[string][]Record, len(persons))
	for _, record := range records {
		byPerson[record.PersonID] = append(byPerson[record.PersonID], record)
	}

	stats := MonthlyStats{
		Month:  MonthStart(month).Format("2006-01"),
		Daily:  DailyCounts(records),
		Weekly: WeeklyRollup(records, month),
	}

	totalActual := 0
	for _, person := range persons {
		personRecords := byPerson[person.ID]
		expected := ExpectedDays(person.AttendanceDays, month, today)
		actual := countCheckIns(personRecords, month, today)
		if len(personRecords) > 0 {
			stats.UniquePersons++
		}
		stats.ExpectedCheckIns += expected
		totalActual += min(actual, expected)

		stats.Persons = append(stats.Persons, PersonRate{
			PersonID: person.ID,
			Name:     person.Name,
			Type:     person.Type,
			Expected: expected,
			Actual:   actual,
			Rate:     ratio(actual, expected),
		})
	}
	stats.TotalCheckIns = len(records)
	stats.Rate = ratio(totalActual, stats.ExpectedCheckIns)

	sort.SliceStable(stats.Persons, func(i, j int) bool {
		if stats.Persons[i].Rate != stats.Persons[j].Rate {
			return stats.Persons[i].Rate > stats.Persons[j].Rate
		}
		return stats.Persons[i].Name < stats.Persons[j].Name
	})
	return stats
}
