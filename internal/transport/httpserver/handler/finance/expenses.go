package finance

import (
	"net/http"
	"time"

	financedomain "church-app-go/internal/domain/finance"
	"church-app-go/internal/transport/httpserver/handler/common"
	"github.com/go-chi/chi/v5"
)

type expenseRequest struct {
	Category    string  `json:"category" validate:"required,max=64"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Notes       *string `json:"notes" validate:"omitempty,max=1000"`
}

type expenseResponse struct {
	ID          string    `json:"id"`
	ChurchID    string    `json:"church_id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Date        string    `json:"date"`
	Description *string   `json:"description"`
	Notes       *string   `json:"notes"`
	RecordedBy  string    `json:"recorded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	filter, ok := parseFilter(w, r.URL.Query(), "category")
	if !ok {
		return
	}

	expenses, err := h.Finance.ListExpenses(r.Context(), access, filter)
	if err != nil {
		common.WriteServiceError(w, h.log, "expenses.list", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}

	response := make([]expenseResponse, 0, len(expenses))
	for _, expense := range expenses {
		response = append(response, toExpenseResponse(expense))
	}
	common.WriteJSON(w, http.StatusOK, common.Items(response))
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !common.DecodeRequest(w, r, &req) {
		return
	}
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	input, ok := req.toInput(w)
	if !ok {
		return
	}

	expense, err := h.Finance.CreateExpense(r.Context(), access, input)
	if err != nil {
		common.WriteServiceError(w, h.log, "expenses.create", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}
	common.WriteJSON(w, http.StatusCreated, toExpenseResponse(*expense))
}

func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !common.DecodeRequest(w, r, &req) {
		return
	}
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	input, ok := req.toInput(w)
	if !ok {
		return
	}
	id := chi.URLParam(r, "expenseID")

	expense, err := h.Finance.UpdateExpense(r.Context(), access, id, input)
	if err != nil {
		common.WriteServiceError(w, h.log, "expenses.update", err, "user_id", access.UserID, "church_id", access.ChurchID, "expense_id", id)
		return
	}
	common.WriteJSON(w, http.StatusOK, toExpenseResponse(*expense))
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "expenseID")

	if err := h.Finance.DeleteExpense(r.Context(), access, id); err != nil {
		common.WriteServiceError(w, h.log, "expenses.delete", err, "user_id", access.UserID, "church_id", access.ChurchID, "expense_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (req expenseRequest) toInput(w http.ResponseWriter) (financedomain.ExpenseInput, bool) {
	date, err := common.ParseDate(req.Date)
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return financedomain.ExpenseInput{}, false
	}
	return financedomain.ExpenseInput{
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
		Notes:       req.Notes,
	}, true
}

func toExpenseResponse(expense financedomain.Expense) expenseResponse {
	return expenseResponse{
		ID:          expense.ID,
		ChurchID:    expense.ChurchID,
		Category:    expense.Category,
		Amount:      expense.Amount,
		Date:        common.FormatDate(expense.Date),
		Description: expense.Description,
		Notes:       expense.Notes,
		RecordedBy:  expense.RecordedBy,
		CreatedAt:   expense.CreatedAt,
	}
}
