package session_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/saulo-duarte/yt-study-api/internal/aiclient"
	"github.com/saulo-duarte/yt-study-api/internal/session"
)

func newTestRouter(source *fakeSource) http.Handler {
	c := session.NewSessionContainer(session.NewMemoryStore(time.Hour), source, "en", false)
	return session.Routes(c.Handler)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestCreateSessionHandler(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantState  string
	}{
		{"CreateWithYoutubeURL", "/create", `{"youtubeUrl":"https://youtu.be/abc123"}`, http.StatusOK, "READY"},
		{"CreateWithVideoURL", "/create", `{"videoUrl":"https://youtu.be/abc123"}`, http.StatusOK, "READY"},
		{"StartMarksProcessing", "/start", `{"videoUrl":"https://youtu.be/abc123"}`, http.StatusOK, "processing"},
		{"MissingURL", "/create", `{}`, http.StatusBadRequest, ""},
		{"BlankURL", "/start", `{"videoUrl":"   "}`, http.StatusBadRequest, ""},
		{"InvalidJSON", "/create", `{`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeSource{})
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			body := decode(t, rec)
			if tt.wantStatus != http.StatusOK {
				if body["success"] != false || body["error"] == "" {
					t.Errorf("unexpected error body %v", body)
				}
				return
			}
			if body["status"] != tt.wantState || body["videoId"] != "abc123" || body["sessionId"] == "" {
				t.Errorf("unexpected body %v", body)
			}
		})
	}
}

func TestTranscriptHandler(t *testing.T) {
	t.Run("MissingParamsDoNotCallUpstream", func(t *testing.T) {
		source := &fakeSource{}
		router := newTestRouter(source)
		for _, target := range []string{"/transcript", "/transcript?sessionId=s1", "/summary?videoId=abc123"} {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s: status = %d, want 400", target, rec.Code)
			}
		}
		if source.calls != 0 {
			t.Errorf("upstream called %d times for invalid requests", source.calls)
		}
	})

	t.Run("InvalidLanguage", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestRouter(&fakeSource{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transcript?sessionId=s1&videoId=abc123&language=!!", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("Segments", func(t *testing.T) {
		source := &fakeSource{transcript: aiclient.Transcript{Segments: []aiclient.Segment{{Text: "hi", Start: 0, Duration: 1}}}}
		rec := httptest.NewRecorder()
		newTestRouter(source).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transcript?sessionId=s1&videoId=abc123&language=pt-BR", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		body := decode(t, rec)
		segments, ok := body["transcript"].([]interface{})
		if !ok || len(segments) != 1 || body["status"] != "completed" {
			t.Errorf("unexpected body %v", body)
		}
		if _, degraded := body["degraded"]; degraded {
			t.Error("healthy response must not be marked degraded")
		}
		if source.lastLanguage != "pt" {
			t.Errorf("language not normalized: %q", source.lastLanguage)
		}
	})

	t.Run("Fallback", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestRouter(&fakeSource{err: aiclient.ErrUpstreamUnavailable}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transcript?sessionId=s1&videoId=abc123", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		body := decode(t, rec)
		if body["transcript"] != session.FallbackTranscript || body["degraded"] != true || body["upstreamStatus"] != "unavailable" {
			t.Errorf("unexpected body %v", body)
		}
	})
}

func TestSummaryHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&fakeSource{err: aiclient.ErrUpstreamTimeout}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary?sessionId=s1&videoId=abc123", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decode(t, rec)
	if body["summary"] != session.FallbackSummary || body["upstreamStatus"] != "timeout" {
		t.Errorf("unexpected body %v", body)
	}
}
