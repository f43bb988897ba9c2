package finance

import (
	"net/http"
	"net/url"
	"strings"

	financedomain "church-app-go/internal/domain/finance"
	"church-app-go/internal/transport/httpserver/handler/common"
	"church-app-go/pkg/logger"
)

type Handlers struct {
	Finance *financedomain.Service
	log     logger.Logger
}

func New(finance *financedomain.Service, log logger.Logger) *Handlers {
	return &Handlers{Finance: finance, log: log}
}

type summaryResponse struct {
	IncomeTotal  float64                  `json:"income_total"`
	ExpenseTotal float64                  `json:"expense_total"`
	Balance      float64                  `json:"balance"`
	ByType       []financedomain.Bucket   `json:"by_type"`
	ByCategory   []financedomain.Bucket   `json:"by_category"`
	Monthly      []financedomain.MonthRow `json:"monthly"`
}

// Summary totals offerings and expenses between the optional from and to
// dates.
func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	access, ok := common.CurrentAccess(w, r)
	if !ok {
		return
	}

	filter, ok := parseFilter(w, r.URL.Query(), "")
	if !ok {
		return
	}

	summary, err := h.Finance.Summary(r.Context(), access, filter.From, filter.To)
	if err != nil {
		common.WriteServiceError(w, h.log, "finance.summary", err, "user_id", access.UserID, "church_id", access.ChurchID)
		return
	}
	common.WriteJSON(w, http.StatusOK, summaryResponse{
		IncomeTotal:  summary.IncomeTotal,
		ExpenseTotal: summary.ExpenseTotal,
		Balance:      summary.Balance,
		ByType:       summary.ByType,
		ByCategory:   summary.ByCategory,
		Monthly:      summary.Monthly,
	})
}

func parseFilter(w http.ResponseWriter, query url.Values, kindKey string) (financedomain.ListFilter, bool) {
	from, err := common.ParseDatePtr(query.Get("from"))
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid from")
		return financedomain.ListFilter{}, false
	}
	to, err := common.ParseDatePtr(query.Get("to"))
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid to")
		return financedomain.ListFilter{}, false
	}
	filter := financedomain.ListFilter{From: from, To: to}
	if kindKey != "" {
		filter.Kind = strings.TrimSpace(query.Get(kindKey))
	}
	return filter, true
}
