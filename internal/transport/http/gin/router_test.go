package httpgin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qesmsep/noir-reserve/internal/service/availability"
	"github.com/qesmsep/noir-reserve/internal/service/booking"
	"github.com/qesmsep/noir-reserve/internal/service/query"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondErrStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid date", fmt.Errorf("wrap: %w", availability.ErrInvalidDate), http.StatusBadRequest},
		{"party too large", fmt.Errorf("wrap: %w", booking.ErrPartyTooLarge), http.StatusConflict},
		{"invalid window", booking.ErrInvalidWindow, http.StatusBadRequest},
		{"not found", fmt.Errorf("wrap: %w", query.ErrNotFound), http.StatusNotFound},
		{"rate limited", &booking.RateLimitedError{RetryAfter: time.Minute}, http.StatusTooManyRequests},
		{"unknown", fmt.Errorf("pool exhausted"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondErr(c, tt.err)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRespondErrNoTablePayload(t *testing.T) {
	next := time.Date(2025, 3, 6, 21, 0, 0, 0, time.UTC)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondErr(c, fmt.Errorf("service.booking.Create: %w", &booking.NoTableError{NextAvailable: &next}))

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}

	var body NoTableResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Error != "No available table" {
		t.Errorf("error = %q", body.Error)
	}
	if body.NextAvailableTime == nil || *body.NextAvailableTime != "2025-03-06T21:00:00Z" {
		t.Errorf("next_available_time = %v", body.NextAvailableTime)
	}
}

func TestWriteJSONWithCacheETag(t *testing.T) {
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		writeJSONWithCache(c, http.StatusOK, SlotsResponse{Date: "2025-03-06", Slots: []string{"18:00"}}, "public, max-age=15", true)
	})

	w1 := httptest.NewRecorder()
	req1 := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w1, req1)

	if w1.Code != http.StatusOK {
		t.Fatalf("first status = %d", w1.Code)
	}
	tag := w1.Header().Get("ETag")
	if tag == "" {
		t.Fatal("missing ETag")
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/x", nil)
	req2.Header.Set("If-None-Match", tag)
	r.ServeHTTP(w2, req2)

	if w2.Code != http.StatusNotModified {
		t.Fatalf("second status = %d, want 304", w2.Code)
	}
}

func TestParseClock(t *testing.T) {
	if v, ok := parseClock("18:30"); !ok || v != 18*60+30 {
		t.Errorf("parseClock(18:30) = %d, %v", v, ok)
	}
	if _, ok := parseClock("25:00"); ok {
		t.Error("parseClock(25:00) should fail")
	}
	if _, ok := parseClock("6pm"); ok {
		t.Error("parseClock(6pm) should fail")
	}
}
