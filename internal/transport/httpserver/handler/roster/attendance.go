package roster

import (
	"net/http"
	"strings"
	"time"

	attendancedomain "church-app-go/internal/domain/attendance"
	"church-app-go/internal/transport/httpserver/handler/common"
	"github.com/go-chi/chi/v5"
)

type checkInRequest struct {
	PersonID string `json:"person_id" validate:"required"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type recordResponse struct {
	ID        string    `json:"id"`
	PersonID  string    `json:"person_id"`
	ChurchID  string    `json:"church_id"`
	Date      string    `json:"date"`
	CheckedBy string    `json:"checked_by"`
	CreatedAt time.Time `json:"created_at"`
}

type boardEntryResponse struct {
	Person    personResponse  `json:"person"`
	CheckedIn bool            `json:"checked_in"`
	Record    *recordResponse `json:"record,omitempty"`
}

type dayBoardResponse struct {
	Date         string               `json:"date"`
	Eligible     []boardEntryResponse `json:"eligible"`
	Ineligible   []boardEntryResponse `json:"ineligible"`
	CheckedCount int                  `json:"checked_count"`
}

type personStatsResponse struct {
	PersonID string   `json:"person_id"`
	Month    string   `json:"month"`
	Expected int      `json:"expected"`
	Actual   int      `json:"actual"`
	Rate     float64  `json:"rate"`
	Dates    []string `json:"dates"`
}

type monthlyStatsResponse struct {
	Month            string                        `json:"month"`
	TotalCheckIns    int                           `json:"total_check_ins"`
	UniquePersons    int                           `json:"unique_persons"`
	ExpectedCheckIns int                           `json:"expected_check_ins"`
	Rate             float64                       `json:"rate"`
	Daily            []attendancedomain.DailyCount `json:"daily"`
	Weekly           []attendancedomain.WeekBucket `json:"weekly"`
	Persons          []attendancedomain.PersonRate `json:"persons"`
}

func (h *Handlers) DayBoard(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()

	date, err := common.ParseDate(query.Get("date"))
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}

	board, err := h.Attendance.DayBoard(r.Context(), access.ChurchID, date, strings.TrimSpace(query.Get("type")))
	if err != nil {
		common.WriteServiceError(w, h.log, "attendance.board", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}

	common.WriteJSON(w, http.StatusOK, dayBoardResponse{
		Date:         common.FormatDate(board.Date),
		Eligible:     toBoardEntries(board.Eligible),
		Ineligible:   toBoardEntries(board.Ineligible),
		CheckedCount: board.CheckedCount,
	})
}

func (h *Handlers) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if !common.DecodeRequest(w, r, &req) {
		return
	}
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}

	date, err := common.ParseDate(req.Date)
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}

	record, err := h.Attendance.CheckIn(r.Context(), attendancedomain.CheckInInput{
		ChurchID:  access.ChurchID,
		PersonID:  req.PersonID,
		Date:      date,
		CheckedBy: access.UserID,
	})
	if err != nil {
		common.WriteServiceError(w, h.log, "attendance.check_in", err, "user_id", access.UserID, "church_id", access.ChurchID, "person_id", req.PersonID)
		return
	}
	common.WriteJSON(w, http.StatusCreated, toRecordResponse(*record))
}

func (h *Handlers) CancelCheckIn(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	personID := chi.URLParam(r, "personID")

	date, err := common.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}

	if err := h.Attendance.CancelCheckIn(r.Context(), access.ChurchID, personID, date); err != nil {
		common.WriteServiceError(w, h.log, "attendance.cancel", err, "user_id", access.UserID, "church_id", access.ChurchID, "person_id", personID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PersonAttendance lists one person's check-ins between from and to,
// defaulting to the last 30 days.
func (h *Handlers) PersonAttendance(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	personID := chi.URLParam(r, "personID")
	query := r.URL.Query()

	from, err := common.ParseDate(query.Get("from"))
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid from")
		return
	}
	to, err := common.ParseDate(query.Get("to"))
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid to")
		return
	}
	if to.IsZero() {
		to = h.Attendance.Today()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}

	if _, err := h.Persons.GetPerson(r.Context(), access.ChurchID, personID); err != nil {
		common.WriteServiceError(w, h.log, "attendance.person", err, "user_id", access.UserID, "church_id", access.ChurchID, "person_id", personID)
		return
	}

	records, err := h.Attendance.ListForPerson(r.Context(), access.ChurchID, personID, from, to)
	if err != nil {
		common.WriteServiceError(w, h.log, "attendance.person", err, "user_id", access.UserID, "church_id", access.ChurchID, "person_id", personID)
		return
	}

	response := make([]recordResponse, 0, len(records))
	for _, record := range records {
		response = append(response, toRecordResponse(record))
	}
	common.WriteJSON(w, http.StatusOK, common.Items(response))
}

func (h *Handlers) PersonStats(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	personID := chi.URLParam(r, "personID")

	month, err := common.ParseMonth(r.URL.Query().Get("month"), h.Attendance.Today())
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "month must be YYYY-MM")
		return
	}

	stats, err := h.Attendance.PersonStats(r.Context(), access.ChurchID, personID, month)
	if err != nil {
		common.WriteServiceError(w, h.log, "attendance.person_stats", err, "user_id", access.UserID, "church_id", access.ChurchID, "person_id", personID)
		return
	}
	common.WriteJSON(w, http.StatusOK, personStatsResponse{
		PersonID: stats.PersonID,
		Month:    stats.Month,
		Expected: stats.Expected,
		Actual:   stats.Actual,
		Rate:     stats.Rate,
		Dates:    stats.Dates,
	})
}

func (h *Handlers) MonthlyStats(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}

	month, err := common.ParseMonth(r.URL.Query().Get("month"), h.Attendance.Today())
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "month must be YYYY-MM")
		return
	}

	stats, err := h.Attendance.ChurchMonthlyStats(r.Context(), access.ChurchID, month)
	if err != nil {
		common.WriteServiceError(w, h.log, "attendance.monthly_stats", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}
	common.WriteJSON(w, http.StatusOK, monthlyStatsResponse{
		Month:            stats.Month,
		TotalCheckIns:    stats.TotalCheckIns,
		UniquePersons:    stats.UniquePersons,
		ExpectedCheckIns: stats.ExpectedCheckIns,
		Rate:             stats.Rate,
		Daily:            nonNil(stats.Daily),
		Weekly:           nonNil(stats.Weekly),
		Persons:          nonNil(stats.Persons),
	})
}

func toBoardEntries(entries []attendancedomain.BoardEntry) []boardEntryResponse {
	result := make([]boardEntryResponse, 0, len(entries))
	for _, entry := range entries {
		item := boardEntryResponse{
			Person:    toPersonResponse(entry.Person),
			CheckedIn: entry.CheckedIn,
		}
		if entry.Record != nil {
			record := toRecordResponse(*entry.Record)
			item.Record = &record
		}
		result = append(result, item)
	}
	return result
}

func toRecordResponse(record attendancedomain.Record) recordResponse {
	return recordResponse{
		ID:        record.ID,
		PersonID:  record.PersonID,
		ChurchID:  record.ChurchID,
		Date:      common.FormatDate(record.Date),
		CheckedBy: record.CheckedBy,
		CreatedAt: record.CreatedAt,
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
