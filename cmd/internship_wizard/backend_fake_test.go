package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/internship-wizard/internal/backend"
	"github.com/jonathan/internship-wizard/internal/session"
	"github.com/stretchr/testify/require"
)

// fakeService is an in-memory matching service.
type fakeService struct {
	mu            sync.Mutex
	profile       map[string]any
	addedSkills   []map[string]any
	submissions   []map[string]any
	extractStatus int
}

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/sectors", func(w http.ResponseWriter, _ *http.Request) {
		writeTestJSON(w, http.StatusOK, []map[string]string{
			{"id": "technology", "name": "Technology"},
			{"id": "finance", "name": "Finance"},
		})
	})
	mux.HandleFunc("GET /api/skills", func(w http.ResponseWriter, _ *http.Request) {
		writeTestJSON(w, http.StatusOK, []string{"Python", "SQL", "Go"})
	})
	mux.HandleFunc("POST /api/goal-requirements", func(w http.ResponseWriter, _ *http.Request) {
		writeTestJSON(w, http.StatusOK, map[string]any{
			"skills":       []string{"SQL", "Python", "Statistics"},
			"learningPath": []string{"Learn SQL", "Study statistics"},
		})
	})
	mux.HandleFunc("POST /api/recommendations", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.submissions = append(f.submissions, body)
		f.mu.Unlock()
		writeTestJSON(w, http.StatusOK, map[string]any{
			"recommendations": []map[string]any{
				{"id": 1, "title": "Data Intern", "organization": "Acme", "sector": "technology",
					"skills_required": []string{"SQL"}, "match_score": 85},
				{"id": "b-2", "title": "Analyst Intern", "organization": "Bank", "sector": "finance",
					"skills_required": []string{"Excel"}, "match_score": 0.55},
			},
			"total_found": 2,
		})
	})
	mux.HandleFunc("POST /api/extract-skills", func(w http.ResponseWriter, _ *http.Request) {
		if f.extractStatus != 0 {
			writeTestJSON(w, f.extractStatus, map[string]string{"error": "extraction unavailable"})
			return
		}
		writeTestJSON(w, http.StatusOK, map[string]any{
			"skills":           []string{"Python", "SQL"},
			"education_level":  "Bachelor",
			"experience_level": "Beginner",
			"name":             "Asha",
		})
	})
	mux.HandleFunc("GET /api/profile", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.profile == nil {
			writeTestJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeTestJSON(w, http.StatusOK, f.profile)
	})
	mux.HandleFunc("POST /api/profile", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.profile = body
		f.mu.Unlock()
		writeTestJSON(w, http.StatusOK, map[string]bool{"success": true})
	})
	mux.HandleFunc("POST /api/profile/skills", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.addedSkills = append(f.addedSkills, body)
		f.mu.Unlock()
		writeTestJSON(w, http.StatusOK, map[string]bool{"success": true})
	})
	mux.HandleFunc("POST /api/goals", func(w http.ResponseWriter, _ *http.Request) {
		writeTestJSON(w, http.StatusOK, map[string]bool{"success": true})
	})
	return mux
}

func writeTestJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestService(t *testing.T) (*fakeService, *httptest.Server) {
	t.Helper()
	svc := &fakeService{}
	srv := httptest.NewServer(svc.handler())
	t.Cleanup(srv.Close)
	return svc, srv
}

func newTestSession(t *testing.T, baseURL string) *session.Session {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts := backend.DefaultOptions()
	opts.Timeout = 5 * time.Second
	opts.UserID = "tester"
	opts.Logger = logger
	client, err := backend.New(baseURL, opts)
	require.NoError(t, err)
	return session.New(session.Options{
		Catalog:            client,
		Recommender:        client,
		Goals:              client,
		Extractor:          client,
		Profiles:           client,
		NumRecommendations: 5,
		Logger:             logger,
	})
}
