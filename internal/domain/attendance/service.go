package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"church-app-go/internal/domain/roster"
	"github.com/google/uuid"
)

// PersonReader is the part of the roster the ledger depends on.
type PersonReader interface {
	GetPerson(ctx context.Context, churchID, personID string) (*roster.Person, error)
	ListPersons(ctx context.Context, churchID string, filter roster.ListFilter) ([]roster.Person, error)
}

type Service struct {
	repo     Repository
	persons  PersonReader
	recorder Recorder
	now      func() time.Time
	loc      *time.Location
}

func NewService(repo Repository, persons PersonReader) *Service {
	return &Service{
		repo:     repo,
		persons:  persons,
		recorder: noopRecorder{},
		now:      time.Now,
		loc:      time.UTC,
	}
}

func (s *Service) WithRecorder(recorder Recorder) *Service {
	if recorder != nil {
		s.recorder = recorder
	}
	return s
}

// WithLocation sets the zone used to decide what "today" is.
func (s *Service) WithLocation(loc *time.Location) *Service {
	if loc != nil {
		s.loc = loc
	}
	return s
}

// Today is the current calendar day in the service location.
func (s *Service) Today() time.Time {
	return DateOnly(s.now().In(s.loc))
}

func (s *Service) CheckIn(ctx context.Context, input CheckInInput) (*Record, error) {
	date := s.dayOrToday(input.Date)

	if _, err := s.persons.GetPerson(ctx, input.ChurchID, input.PersonID); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsRecord(ctx, input.PersonID, date)
	if err != nil {
		return nil, fmt.Errorf("check existing record: %w", err)
	}
	if exists {
		s.recorder.CheckInRejected("duplicate")
		return nil, ErrAlreadyCheckedIn
	}

	record := Record{
		ID:        uuid.NewString(),
		PersonID:  input.PersonID,
		ChurchID:  input.ChurchID,
		Date:      date,
		CheckedBy: input.CheckedBy,
	}
	if err := s.repo.CreateRecord(ctx, &record); err != nil {
		if errors.Is(err, ErrAlreadyCheckedIn) {
			s.recorder.CheckInRejected("conflict")
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}

	s.recorder.CheckedIn(input.ChurchID)
	return &record, nil
}

func (s *Service) CancelCheckIn(ctx context.Context, churchID, personID string, date time.Time) error {
	deleted, err := s.repo.DeleteRecord(ctx, churchID, personID, s.dayOrToday(date))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotCheckedIn
	}
	s.recorder.CheckInCancelled(churchID)
	return nil
}

func (s *Service) ListByDate(ctx context.Context, churchID string, date time.Time) ([]Record, error) {
	return s.repo.ListByDate(ctx, churchID, s.dayOrToday(date))
}

func (s *Service) ListForPerson(ctx context.Context, churchID, personID string, from, to time.Time) ([]Record, error) {
	from, to = DateOnly(from), DateOnly(to)
	if to.Before(from) {
		from, to = to, from
	}
	return s.repo.ListForPerson(ctx, churchID, personID, from, to)
}

// DayBoard lists the church roster for date with each person's check-in
// state. personType narrows the roster when set.
func (s *Service) DayBoard(ctx context.Context, churchID string, date time.Time, personType string) (*DayBoard, error) {
	date = s.dayOrToday(date)

	persons, err := s.persons.ListPersons(ctx, churchID, roster.ListFilter{Type: personType})
	if err != nil {
		return nil, err
	}
	records, err := s.repo.ListByDate(ctx, churchID, date)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	byPerson := make(map[string]Record, len(records))
	for _, record := range records {
		byPerson[record.PersonID] = record
	}

	board := &DayBoard{
		Date:       date,
		Eligible:   make([]BoardEntry, 0, len(persons)),
		Ineligible: make([]BoardEntry, 0),
	}
	eligible, ineligible := roster.PartitionEligible(persons, date)
	for _, person := range eligible {
		entry := boardEntry(person, byPerson)
		if entry.CheckedIn {
			board.CheckedCount++
		}
		board.Eligible = append(board.Eligible, entry)
	}
	for _, person := range ineligible {
		entry := boardEntry(person, byPerson)
		if entry.CheckedIn {
			board.CheckedCount++
		}
		board.Ineligible = append(board.Ineligible, entry)
	}
	return board, nil
}

func (s *Service) PersonStats(ctx context.Context, churchID, personID string, month time.Time) (*PersonMonthStats, error) {
	person, err := s.persons.GetPerson(ctx, churchID, personID)
	if err != nil {
		return nil, err
	}

	from := MonthStart(month)
	records, err := s.repo.ListForPerson(ctx, churchID, personID, from, monthEnd(from))
	if err != nil {
		return nil, fmt.Errorf("list person records: %w", err)
	}

	today := s.Today()
	stats := &PersonMonthStats{
		PersonID: person.ID,
		Month:    from.Format("2006-01"),
		Expected: ExpectedDays(person.AttendanceDays, from, today),
		Actual:   countCheckIns(records, from, today),
		Rate:     AttendanceRate(person.AttendanceDays, records, from, today),
		Dates:    make([]string, 0, len(records)),
	}
	for _, daily := range DailyCounts(records) {
		stats.Dates = append(stats.Dates, daily.Date)
	}
	return stats, nil
}

func (s *Service) ChurchMonthlyStats(ctx context.Context, churchID string, month time.Time) (*MonthlyStats, error) {
	persons, err := s.persons.ListPersons(ctx, churchID, roster.ListFilter{})
	if err != nil {
		return nil, err
	}

	from := MonthStart(month)
	records, err := s.repo.ListByRange(ctx, churchID, from, monthEnd(from))
	if err != nil {
		return nil, fmt.Errorf("list month records: %w", err)
	}

	stats := SummarizeMonth(persons, records, from, s.Today())
	return &stats, nil
}

func (s *Service) dayOrToday(date time.Time) time.Time {
	if date.IsZero() {
		return s.Today()
	}
	return DateOnly(date)
}

func boardEntry(person roster.Person, byPerson map[string]Record) BoardEntry {
	entry := BoardEntry{Person: person}
	if record, ok := byPerson[person.ID]; ok {
		entry.CheckedIn = true
		entry.Record = &record
	}
	return entry
}
