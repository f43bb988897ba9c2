package common

import (
	"net/http"
	"sort"
)

type envStatusResponse struct {
	Env     string          `json:"env"`
	Present map[string]bool `json:"present"`
	Missing []string        `json:"missing"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) TodayVerse(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Verses.Today(r.Context()))
}

// DebugEnv reports which settings are present. Values are never echoed.
func (h *Handlers) DebugEnv(w http.ResponseWriter, r *http.Request) {
	if h.cfg.IsProduction() {
		writeError(w, http.StatusNotFound, "not_found", "not found")
		return
	}

	present := h.cfg.Presence()
	missing := make([]string, 0)
	for key, ok := range present {
		if !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	for _, key := range missing {
		h.log.Warn("debug.env: setting missing", "key", key)
	}

	writeJSON(w, http.StatusOK, envStatusResponse{
		Env:     h.cfg.Env,
		Present: present,
		Missing: missing,
	})
}
