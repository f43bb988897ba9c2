//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"church-app-go/internal/app"
	"church-app-go/internal/config"
	"church-app-go/internal/db"
	"church-app-go/internal/repository/inmemory"
	"church-app-go/pkg/logger"
	"gorm.io/gorm"
)

type testEnv struct {
	server     *httptest.Server
	authServer *httptest.Server
	db         *gorm.DB
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	authServer := newAuthServer(t)
	log := logger.Discard()

	cfg := config.Config{
		Env:      "test",
		Timezone: "UTC",
		DB:       config.DBConfig{DSN: dsn},
		Supabase: config.SupabaseConfig{
			URL:            authServer.URL,
			PublishableKey: "test-key",
			AuthTimeout:    2 * time.Second,
		},
		Verse: config.VerseConfig{CacheTTL: time.Hour},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if err := db.Migrate(dbConn, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	services := app.NewServices(cfg, dbConn, inmemory.NewVerseCache(), nil, log)
	server := httptest.NewServer(services.Router(cfg, nil, log))

	return &testEnv{server: server, authServer: authServer, db: dbConn}
}

func (e *testEnv) Close() {
	e.server.Close()
	e.authServer.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func (e *testEnv) url(path string) string {
	return e.server.URL + "/api" + path
}

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		payload := map[string]interface{}{
			"id":    token,
			"email": token + "@example.com",
			"user_metadata": map[string]interface{}{
				"name":       "User " + token,
				"avatar_url": "https://example.com/avatar.png",
			},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}))
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE churches, profiles, identities RESTART IDENTITY CASCADE",
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

func requestRaw(t *testing.T, client *http.Client, method, url string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

func expectStatus(t *testing.T, resp *http.Response, body []byte, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected %d, got %d: %s", want, resp.StatusCode, string(body))
	}
}

func decode(t *testing.T, body []byte, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("decode %T: %v", target, err)
	}
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type authMeResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

type churchResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	OwnerID string `json:"owner_id"`
}

type memberResponse struct {
	UserID  string  `json:"user_id"`
	Email   *string `json:"email"`
	Role    string  `json:"role"`
	IsOwner bool    `json:"is_owner"`
}

type memberList struct {
	Items []memberResponse `json:"items"`
}

type inviteResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Role  string `json:"role"`
}

type personResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	AttendanceDays []int  `json:"attendance_days"`
}

type dayBoardResponse struct {
	Date         string `json:"date"`
	CheckedCount int    `json:"checked_count"`
	Eligible     []struct {
		Person    personResponse `json:"person"`
		CheckedIn bool           `json:"checked_in"`
	} `json:"eligible"`
}

type personStatsResponse struct {
	Expected int     `json:"expected"`
	Actual   int     `json:"actual"`
	Rate     float64 `json:"rate"`
}

type summaryResponse struct {
	IncomeTotal  float64 `json:"income_total"`
	ExpenseTotal float64 `json:"expense_total"`
	Balance      float64 `json:"balance"`
}

func createChurch(t *testing.T, env *testEnv, client *http.Client, token, name string) churchResponse {
	t.Helper()
	resp, body := requestJSON(t, client, http.MethodPost, env.url("/churches"), token, map[string]string{
		"name": name,
	})
	expectStatus(t, resp, body, http.StatusCreated)
	var church churchResponse
	decode(t, body, &church)
	if church.ID == "" || church.Slug == "" {
		t.Fatalf("expected church id and slug")
	}
	return church
}

func joinWithInvite(t *testing.T, env *testEnv, client *http.Client, adminToken, memberToken, churchID, role string) {
	t.Helper()
	resp, body := requestJSON(t, client, http.MethodPost, env.url("/churches/"+churchID+"/invites"), adminToken, map[string]interface{}{
		"role": role,
	})
	expectStatus(t, resp, body, http.StatusCreated)
	var invite inviteResponse
	decode(t, body, &invite)

	resp, body = requestJSON(t, client, http.MethodPost, env.url("/invites/"+invite.Token+"/redeem"), memberToken, nil)
	expectStatus(t, resp, body, http.StatusOK)
}

func TestE2EHealthAndAuth(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	resp, body := requestRaw(t, client, http.MethodGet, env.url("/health"))
	expectStatus(t, resp, body, http.StatusOK)

	resp, body = requestJSON(t, client, http.MethodGet, env.url("/auth/me"), "", nil)
	expectStatus(t, resp, body, http.StatusUnauthorized)
	var errResp errorEnvelope
	decode(t, body, &errResp)
	if errResp.Error.Code != "invalid_token" {
		t.Fatalf("expected invalid_token, got %q", errResp.Error.Code)
	}

	userID := "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	resp, body = requestJSON(t, client, http.MethodGet, env.url("/auth/me"), userID, nil)
	expectStatus(t, resp, body, http.StatusOK)
	var me authMeResponse
	decode(t, body, &me)
	if me.ID != userID {
		t.Fatalf("expected id %s, got %q", userID, me.ID)
	}
	if me.Email != userID+"@example.com" {
		t.Fatalf("expected email, got %q", me.Email)
	}
}

func TestE2EChurchMembership(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	owner := "11111111-1111-1111-1111-111111111111"
	teacher := "22222222-2222-2222-2222-222222222222"
	outsider := "33333333-3333-3333-3333-333333333333"

	church := createChurch(t, env, client, owner, "Grace Church")
	if church.Slug != "grace-church" {
		t.Fatalf("expected slug grace-church, got %q", church.Slug)
	}
	second := createChurch(t, env, client, owner, "Grace Church")
	if second.Slug == church.Slug {
		t.Fatalf("expected unique slug, got %q twice", second.Slug)
	}

	joinWithInvite(t, env, client, owner, teacher, church.ID, "teacher")

	resp, body := requestJSON(t, client, http.MethodGet, env.url("/churches/"+church.ID+"/members"), owner, nil)
	expectStatus(t, resp, body, http.StatusOK)
	var members memberList
	decode(t, body, &members)
	if len(members.Items) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members.Items))
	}
	for _, member := range members.Items {
		if member.Email == nil || *member.Email == "" {
			t.Fatalf("expected email for member %s", member.UserID)
		}
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.url("/churches/"+church.ID), outsider, nil)
	expectStatus(t, resp, body, http.StatusForbidden)

	resp, body = requestJSON(t, client, http.MethodPatch, env.url("/churches/"+church.ID), teacher, map[string]string{
		"name": "Renamed",
	})
	expectStatus(t, resp, body, http.StatusForbidden)

	resp, body = requestJSON(t, client, http.MethodDelete, env.url("/churches/"+church.ID+"/members/"+teacher), owner, nil)
	expectStatus(t, resp, body, http.StatusNoContent)

	resp, body = requestJSON(t, client, http.MethodGet, env.url("/churches/"+church.ID), teacher, nil)
	expectStatus(t, resp, body, http.StatusForbidden)

	resp, body = requestJSON(t, client, http.MethodDelete, env.url("/churches/"+church.ID), owner, nil)
	expectStatus(t, resp, body, http.StatusNoContent)

	resp, body = requestJSON(t, client, http.MethodGet, env.url("/churches/"+church.ID), owner, nil)
	expectStatus(t, resp, body, http.StatusNotFound)
}

func TestE2EAttendanceFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	owner := "44444444-4444-4444-4444-444444444444"
	teacher := "55555555-5555-5555-5555-555555555555"

	church := createChurch(t, env, client, owner, "Hope")
	joinWithInvite(t, env, client, owner, teacher, church.ID, "teacher")
	base := "/churches/" + church.ID

	resp, body := requestJSON(t, client, http.MethodPost, env.url(base+"/persons"), owner, map[string]interface{}{
		"name":            "Hana",
		"type":            "student",
		"attendance_days": []int{0},
	})
	expectStatus(t, resp, body, http.StatusCreated)
	var person personResponse
	decode(t, body, &person)

	resp, body = requestJSON(t, client, http.MethodPost, env.url(base+"/persons"), teacher, map[string]interface{}{
		"name": "Ben",
		"type": "student",
	})
	expectStatus(t, resp, body, http.StatusForbidden)

	checkIn := map[string]string{"person_id": person.ID, "date": "2024-03-03"}
	resp, body = requestJSON(t, client, http.MethodPost, env.url(base+"/attendance"), teacher, checkIn)
	expectStatus(t, resp, body, http.StatusCreated)

	resp, body = requestJSON(t, client, http.MethodPost, env.url(base+"/attendance"), owner, checkIn)
	expectStatus(t, resp, body, http.StatusConflict)
	var errResp errorEnvelope
	decode(t, body, &errResp)
	if errResp.Error.Code != "already_checked_in" {
		t.Fatalf("expected already_checked_in, got %q", errResp.Error.Code)
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.url(base+"/attendance?date=2024-03-03"), teacher, nil)
	expectStatus(t, resp, body, http.StatusOK)
	var board dayBoardResponse
	decode(t, body, &board)
	if board.CheckedCount != 1 || len(board.Eligible) != 1 || !board.Eligible[0].CheckedIn {
		t.Fatalf("unexpected board: %s", string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.url(base+"/persons/"+person.ID+"/stats?month=2024-03"), owner, nil)
	expectStatus(t, resp, body, http.StatusOK)
	var stats personStatsResponse
	decode(t, body, &stats)
	if stats.Expected != 5 || stats.Actual != 1 || stats.Rate != 0.2 {
		t.Fatalf("unexpected stats: %s", string(body))
	}

	resp, body = requestJSON(t, client, http.MethodDelete, env.url(base+"/attendance/"+person.ID+"?date=2024-03-03"), teacher, nil)
	expectStatus(t, resp, body, http.StatusNoContent)

	resp, body = requestJSON(t, client, http.MethodDelete, env.url(base+"/attendance/"+person.ID+"?date=2024-03-03"), teacher, nil)
	expectStatus(t, resp, body, http.StatusNotFound)

	resp, body = requestJSON(t, client, http.MethodDelete, env.url(base+"/persons/"+person.ID), owner, nil)
	expectStatus(t, resp, body, http.StatusNoContent)

	resp, body = requestJSON(t, client, http.MethodGet, env.url(base+"/persons/"+person.ID), owner, nil)
	expectStatus(t, resp, body, http.StatusNotFound)
}

func TestE2EFinanceSummary(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	owner := "66666666-6666-6666-6666-666666666666"
	member := "77777777-7777-7777-7777-777777777777"

	church := createChurch(t, env, client, owner, "Zion")
	joinWithInvite(t, env, client, owner, member, church.ID, "member")
	base := "/churches/" + church.ID

	resp, body := requestJSON(t, client, http.MethodPost, env.url(base+"/offerings"), owner, map[string]interface{}{
		"type":   "tithe",
		"amount": 150000,
		"date":   "2026-02-01",
	})
	expectStatus(t, resp, body, http.StatusCreated)

	resp, body = requestJSON(t, client, http.MethodPost, env.url(base+"/expenses"), owner, map[string]interface{}{
		"category": "utilities",
		"amount":   40000.5,
		"date":     "2026-02-10",
	})
	expectStatus(t, resp, body, http.StatusCreated)

	resp, body = requestJSON(t, client, http.MethodGet, env.url(base+"/offerings"), member, nil)
	expectStatus(t, resp, body, http.StatusForbidden)

	resp, body = requestJSON(t, client, http.MethodGet, env.url(base+"/finance/summary?from=2026-02-01&to=2026-02-28"), owner, nil)
	expectStatus(t, resp, body, http.StatusOK)
	var summary summaryResponse
	decode(t, body, &summary)
	if summary.IncomeTotal != 150000 || summary.ExpenseTotal != 40000.5 || summary.Balance != 109999.5 {
		t.Fatalf("unexpected summary: %s", string(body))
	}
}
