package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"

	"mealmatch/config"
	"mealmatch/internal/availability"
	"mealmatch/internal/domain"
	"mealmatch/internal/service"
	"mealmatch/pkg/auth"
	"mealmatch/pkg/validator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validator.RegisterGin(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeAvailabilityService struct {
	replaced    []domain.AvailabilitySlot
	updated     *domain.UpdateCellDTO
	updateErr   error
	toggled     *domain.ToggleCellDTO
	pairErr     error
	exportErr   error
	lastPartner int64
}

func (f *fakeAvailabilityService) GetSlots(ctx context.Context, userID int64) (*domain.UserAvailability, error) {
	return &domain.UserAvailability{UserID: userID, Slots: availability.GridToSlots(nil)}, nil
}

func (f *fakeAvailabilityService) GetGrid(ctx context.Context, userID int64) (domain.AvailabilityGrid, error) {
	return availability.NewDefaultGrid(), nil
}

func (f *fakeAvailabilityService) ReplaceSlots(ctx context.Context, userID int64, slots []domain.AvailabilitySlot) (*domain.UserAvailability, error) {
	f.replaced = slots
	return &domain.UserAvailability{UserID: userID, Slots: availability.NormalizeSlots(slots)}, nil
}

func (f *fakeAvailabilityService) UpdateCell(ctx context.Context, userID int64, dto domain.UpdateCellDTO) (*domain.UserAvailability, error) {
	f.updated = &dto
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &domain.UserAvailability{UserID: userID}, nil
}

func (f *fakeAvailabilityService) ToggleCell(ctx context.Context, userID int64, dto domain.ToggleCellDTO) (*domain.UserAvailability, error) {
	f.toggled = &dto
	return &domain.UserAvailability{UserID: userID}, nil
}

func (f *fakeAvailabilityService) GetPairSlots(ctx context.Context, selfID, partnerID int64) ([]domain.PairAvailabilitySlot, error) {
	f.lastPartner = partnerID
	if f.pairErr != nil {
		return nil, f.pairErr
	}
	return availability.PairSlotsFromGrids(nil, nil), nil
}

func (f *fakeAvailabilityService) GetPairWindow(ctx context.Context, selfID, partnerID int64) (*domain.PairWindow, error) {
	if selfID == partnerID {
		return nil, domain.ErrSelfPair
	}
	days := availability.Next7DaysFrom(time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC))
	return &domain.PairWindow{
		PartnerID: partnerID,
		Days:      days,
		Cells:     availability.BuildPairCells(days, nil),
	}, nil
}

func (f *fakeAvailabilityService) ExportCalendar(ctx context.Context, userID int64) ([]byte, error) {
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	return []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"), nil
}

type testEnv struct {
	router *gin.Engine
	svc    *fakeAvailabilityService
	tokens *auth.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	svc := &fakeAvailabilityService{}
	services := &service.Services{
		Availability: svc,
		Auth:         service.NewAuthService(tokens),
	}

	router := gin.New()
	NewHandler(services, zaptest.NewLogger(t), &config.Config{Name: "mealmatch", Version: "test"}).InitRoutes(router)

	return &testEnv{router: router, svc: svc, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path string, userID int64, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		token, err := e.tokens.NewAccessToken(userID, "member")
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	var body struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
	}
	if body.Status != "success" {
		t.Fatalf("expected success, got %s", w.Body.String())
	}
	if err := json.Unmarshal(body.Data, out); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/availability/me", 0, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad token, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/availability/me", nil)
	req.Header.Set("Authorization", "Token abc")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong scheme, got %d", w.Code)
	}
}

func TestGetMyAvailability(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/availability/me", 12, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result domain.UserAvailability
	decodeData(t, w, &result)
	if result.UserID != 12 || len(result.Slots) != domain.CellCount {
		t.Errorf("unexpected result %+v", result)
	}
	if w.Header().Get(requestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestReplaceMyAvailabilityAcceptsUnknownEntries(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]interface{}{
		"slots": []map[string]string{
			{"weekday": "MON", "timeSlot": "DAY", "status": "AVAILABLE"},
			{"weekday": "XXX", "timeSlot": "DAY", "status": "AVAILABLE"},
		},
	}
	w := env.do(t, http.MethodPut, "/api/v1/availability/me", 3, body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(env.svc.replaced) != 2 {
		t.Errorf("expected raw slots to reach the service, got %+v", env.svc.replaced)
	}

	var result domain.UserAvailability
	decodeData(t, w, &result)
	if len(result.Slots) != domain.CellCount || result.Slots[0].Status != domain.AvailabilityStatusAvailable {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestReplaceMyAvailabilityRequiresSlots(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/v1/availability/me", 3, map[string]interface{}{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestUpdateMyCellValidatesEnums(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPatch, "/api/v1/availability/me/cells", 3, map[string]string{
		"weekday": "TUE", "timeSlot": "NIGHT", "status": "AVAILABLE",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if env.svc.updated == nil || env.svc.updated.TimeSlot != domain.TimeSlotNight {
		t.Errorf("unexpected update %+v", env.svc.updated)
	}

	w = env.do(t, http.MethodPatch, "/api/v1/availability/me/cells", 3, map[string]string{
		"weekday": "TUE", "mealTimeSlot": "DINNER", "status": "UNAVAILABLE",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for meal slot, got %d: %s", w.Code, w.Body.String())
	}
	if env.svc.updated.MealTimeSlot != domain.MealTimeSlotDinner {
		t.Errorf("meal slot not passed through: %+v", env.svc.updated)
	}

	for _, body := range []map[string]string{
		{"weekday": "XXX", "timeSlot": "NIGHT", "status": "AVAILABLE"},
		{"weekday": "TUE", "timeSlot": "LUNCH", "status": "AVAILABLE"},
		{"weekday": "TUE", "mealTimeSlot": "NIGHT", "status": "AVAILABLE"},
		{"weekday": "TUE", "timeSlot": "NIGHT", "status": "MAYBE"},
	} {
		w := env.do(t, http.MethodPatch, "/api/v1/availability/me/cells", 3, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%v: expected 400, got %d", body, w.Code)
		}
	}
}

func TestUpdateMyCellRejectsReservedStatus(t *testing.T) {
	env := newTestEnv(t)
	env.svc.updateErr = domain.ErrReservedStatus

	w := env.do(t, http.MethodPatch, "/api/v1/availability/me/cells", 3, map[string]string{
		"weekday": "TUE", "timeSlot": "NIGHT", "status": "MEET_ONLY",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestToggleMyCell(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/availability/me/cells/toggle", 3, map[string]string{
		"weekday": "SUN", "timeSlot": "DAY",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if env.svc.toggled == nil || env.svc.toggled.Weekday != domain.WeekdaySun {
		t.Errorf("unexpected toggle %+v", env.svc.toggled)
	}
}

func TestExportMyCalendar(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/availability/me/calendar.ics", 3, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("unexpected content type %q", ct)
	}

	env.svc.exportErr = errors.New("boom")
	w = env.do(t, http.MethodGet, "/api/v1/availability/me/calendar.ics", 3, nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestGetPairAvailability(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/availability/pair/8", 3, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if env.svc.lastPartner != 8 {
		t.Errorf("partner id = %d", env.svc.lastPartner)
	}

	var slots []domain.PairAvailabilitySlot
	decodeData(t, w, &slots)
	if len(slots) != domain.CellCount {
		t.Errorf("expected %d slots, got %d", domain.CellCount, len(slots))
	}

	for _, path := range []string{"/api/v1/availability/pair/abc", "/api/v1/availability/pair/0"} {
		if w := env.do(t, http.MethodGet, path, 3, nil); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, w.Code)
		}
	}

	env.svc.pairErr = domain.ErrSelfPair
	if w := env.do(t, http.MethodGet, "/api/v1/availability/pair/3", 3, nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for self pair, got %d", w.Code)
	}

	env.svc.pairErr = errors.New("db down")
	if w := env.do(t, http.MethodGet, "/api/v1/availability/pair/8", 3, nil); w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestGetPairWeek(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/availability/pair/8/week", 3, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var window domain.PairWindow
	decodeData(t, w, &window)
	if window.PartnerID != 8 || len(window.Days) != 7 || len(window.Cells) != 14 {
		t.Errorf("unexpected window %+v", window)
	}
	if window.Days[0].WeekdayLabel != "土" {
		t.Errorf("unexpected weekday label %q", window.Days[0].WeekdayLabel)
	}
}

func TestGetLabelsIsPublic(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/availability/labels", 0, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var table availability.LabelTable
	decodeData(t, w, &table)
	if len(table.Weekdays) != 7 || table.Weekdays[0].Short != "月" {
		t.Errorf("unexpected labels %+v", table.Weekdays)
	}
}

func TestHealthzAndCORS(t *testing.T) {
	env := newTestEnv(t)

	if w := env.do(t, http.MethodGet, "/healthz", 0, nil); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/availability/me", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", w.Code)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	env := newTestEnv(t)

	id := "2b1f4a4e-52a6-4f39-9d0b-8a5f7f0f5c11"
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, id)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if got := w.Header().Get(requestIDHeader); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}
}
