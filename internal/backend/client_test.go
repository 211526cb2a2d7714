package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonathan/internship-wizard/internal/ingestion"
	"github.com/jonathan/internship-wizard/internal/types"
	"github.com/jonathan/internship-wizard/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts := DefaultOptions()
	opts.UserID = "u-1"
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := New(srv.URL, opts)
	require.NoError(t, err)
	return c, srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func validRequest() types.RecommendationRequest {
	return types.RecommendationRequest{
		ProfilePayload: types.ProfilePayload{
			EducationLevel:  "Bachelor",
			ExperienceLevel: "Beginner",
			Skills:          []string{"Go"},
			SectorInterests: []string{"technology"},
		},
		NumRecommendations: 5,
	}
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost", "://bad"} {
		_, err := New(raw, nil)
		var be *Error
		assert.True(t, errors.As(err, &be), "base %q", raw)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, DefaultTimeout, opts.Timeout)
	assert.Equal(t, DefaultUserAgent, opts.UserAgent)
}

func TestFetchSectors(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/sectors", r.URL.Path)
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		writeJSON(w, http.StatusOK, []map[string]string{
			{"id": "technology", "name": "Technology", "description": "Software"},
			{"id": "government", "name": "Government"},
		})
	})

	sectors, err := c.FetchSectors(context.Background())
	require.NoError(t, err)
	require.Len(t, sectors, 2)
	assert.Equal(t, types.SectorID("technology"), sectors[0].ID)
	assert.Equal(t, "Government", sectors[1].Name)
}

func TestFetchSectors_MalformedRecord(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]string{{"name": "No ID"}})
	})

	_, err := c.FetchSectors(context.Background())
	var be *Error
	require.True(t, errors.As(err, &be))
	assert.Contains(t, be.Message, "malformed")
}

func TestFetchSkillCatalog_DropsBlanks(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []string{"Python", " ", " SQL "})
	})

	catalog, err := c.FetchSkillCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "SQL"}, catalog)
}

func TestNonSuccessStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
	})

	_, err := c.FetchSkillCatalog(context.Background())
	var be *Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, http.StatusInternalServerError, be.StatusCode)
	assert.Equal(t, "boom", be.Message)
	assert.Contains(t, be.Error(), "HTTP 500")
}

func TestNonSuccessStatus_NoBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.FetchSectors(context.Background())
	var be *Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, http.StatusText(http.StatusBadGateway), be.Message)
}

func TestMalformedPayload(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := c.FetchSectors(context.Background())
	var be *Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "malformed response payload", be.Message)
	assert.Error(t, be.Unwrap())
}

func TestTransportFailure(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := c.FetchSectors(context.Background())
	var be *Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "HTTP request failed", be.Message)
}

func TestContextDeadline(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.FetchSkillCatalog(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestFetchGoalRequirements(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/goal-requirements", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Data Scientist", body["goal"])
		writeJSON(w, http.StatusOK, map[string]any{
			"skills":       []string{"Python", "Statistics"},
			"learningPath": []string{"Learn Python"},
			"marketAnalysis": map[string]any{
				"totalInternships": 12,
				"highDemandSkills": []string{"Python"},
			},
		})
	})

	req, err := c.FetchGoalRequirements(context.Background(), " Data Scientist ", "")
	require.NoError(t, err)
	assert.Equal(t, "Data Scientist", req.Goal)
	assert.Equal(t, []string{"Python", "Statistics"}, req.RequiredSkills)
	assert.Equal(t, []string{"Learn Python"}, req.LearningPath)
	require.NotNil(t, req.MarketStats)
	assert.Equal(t, 12, req.MarketStats.TotalInternships)
}

func TestFetchGoalRequirements_EmptyGoalIsLocal(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := c.FetchGoalRequirements(context.Background(), "  ", "")
	var ie *validation.InputError
	assert.True(t, errors.As(err, &ie))
}

func TestFetchGoalRequirements_ServiceError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"error": "no data", "fallback": true})
	})

	_, err := c.FetchGoalRequirements(context.Background(), "Designer", "")
	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "no data", se.Message)
}

func TestSubmitRecommendationRequest(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recommendations", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Bachelor", body["education_level"])
		assert.EqualValues(t, 5, body["num_recommendations"])
		writeJSON(w, http.StatusOK, map[string]any{
			"recommendations": []map[string]any{
				{"id": 7, "title": "Backend Intern", "sector": "technology", "match_score": 82.5,
					"skills_required": []string{"Go", "Go", "SQL"}},
				{"id": "b", "title": "Policy Intern", "sector": "government", "match_score": 0.4},
			},
			"total_found": 2,
		})
	})

	records, err := c.SubmitRecommendationRequest(context.Background(), validRequest())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, types.RecordID("7"), records[0].ID)
	assert.InDelta(t, 0.825, records[0].MatchScore, 1e-9)
	assert.Equal(t, []string{"Go", "SQL"}, records[0].RequiredSkills)
	assert.Equal(t, types.RecordID("b"), records[1].ID)
	assert.InDelta(t, 0.4, records[1].MatchScore, 1e-9)
}

func TestSubmitRecommendationRequest_EmptyList(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"recommendations": nil, "total_found": 0})
	})

	records, err := c.SubmitRecommendationRequest(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestSubmitRecommendationRequest_IncompleteIsLocal(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	req := validRequest()
	req.Skills = nil
	_, err := c.SubmitRecommendationRequest(context.Background(), req)
	var ie *validation.InputError
	assert.True(t, errors.As(err, &ie))
}

func TestSubmitGoalRecommendationRequest(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recommendations", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Data Scientist", body["career_goal"])
		assert.Equal(t, []any{}, body["skills"])
		assert.EqualValues(t, 20, body["num_recommendations"])
		assert.NotContains(t, body, "education_level")
		writeJSON(w, http.StatusOK, map[string]any{
			"recommendations": []map[string]any{
				{"id": 3, "title": "ML Intern", "sector": "technology", "match_score": 64},
			},
			"total_found": 1,
		})
	})

	records, err := c.SubmitGoalRecommendationRequest(context.Background(), types.GoalRecommendationRequest{
		CareerGoal:         "Data Scientist",
		NumRecommendations: 20,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 0.64, records[0].MatchScore, 1e-9)
}

func TestSubmitGoalRecommendationRequest_MissingGoalIsLocal(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := c.SubmitGoalRecommendationRequest(context.Background(), types.GoalRecommendationRequest{NumRecommendations: 20})
	var ie *validation.InputError
	assert.True(t, errors.As(err, &ie))
}

func TestSubmitRecommendationRequest_ServiceError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"error": "engine offline"})
	})

	_, err := c.SubmitRecommendationRequest(context.Background(), validRequest())
	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Error(), "engine offline")
}

func TestSubmitRecommendationRequest_MalformedRecord(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"recommendations": []map[string]any{{"id": 1, "match_score": 0.5}},
		})
	})

	_, err := c.SubmitRecommendationRequest(context.Background(), validRequest())
	var be *Error
	require.True(t, errors.As(err, &be))
}

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

func TestUploadResume(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/extract-skills", r.URL.Path)
		file, header, err := r.FormFile("resume")
		require.NoError(t, err)
		defer file.Close()
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, pdfBytes, data)
		assert.Equal(t, "cv.pdf", header.Filename)
		writeJSON(w, http.StatusOK, map[string]any{
			"skills":          []string{"Python", "SQL"},
			"education_level": "Bachelor",
			"name":            "Asha",
		})
	})

	result, err := c.UploadResume(context.Background(), &ingestion.Upload{Filename: "cv.pdf", Data: pdfBytes})
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "SQL"}, result.Skills)
	assert.Equal(t, "Bachelor", result.EducationLevel)
	assert.Equal(t, "Asha", result.Name)
}

func TestUploadResume_GuardRunsFirst(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := c.UploadResume(context.Background(), &ingestion.Upload{Filename: "cv.txt", Data: []byte("hello")})
	var ie *validation.InputError
	assert.True(t, errors.As(err, &ie))
}

func TestUploadResume_ServiceError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Unsupported file type"})
	})

	_, err := c.UploadResume(context.Background(), &ingestion.Upload{Filename: "cv.pdf", Data: pdfBytes})
	var be *Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, http.StatusBadRequest, be.StatusCode)
}

func TestLoadProfile(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "u-1", r.URL.Query().Get("user_id"))
		writeJSON(w, http.StatusOK, map[string]any{
			"education_level":  "Master",
			"experience_level": "Intermediate",
			"skills":           []string{"Go", "SQL", "Go"},
			"sector_interests": []string{"technology", "technology"},
		})
	})

	form, err := c.LoadProfile(context.Background())
	require.NoError(t, err)
	require.NotNil(t, form)
	assert.Equal(t, "Master", form.EducationLevel)
	assert.Equal(t, []string{"Go", "SQL"}, form.Skills.Values())
	assert.Equal(t, 1, form.Sectors.Len())
}

func TestLoadProfile_Absent(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"empty object", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{})
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, tt.handler)
			form, err := c.LoadProfile(context.Background())
			require.NoError(t, err)
			assert.Nil(t, form)
		})
	}
}

func TestSaveProfile(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body types.ProfilePayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"Go"}, body.Skills)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Profile saved successfully"})
	})

	form := types.NewFormSnapshot()
	form.EducationLevel = "Bachelor"
	form.Skills.Add("Go")
	require.NoError(t, c.SaveProfile(context.Background(), form))
}

func TestAddProfileSkills_Shapes(t *testing.T) {
	var bodies []map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/profile/skills", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Skills updated successfully"})
	})

	require.NoError(t, c.AddProfileSkills(context.Background(), "Go"))
	require.NoError(t, c.AddProfileSkills(context.Background(), "Go", " ", "SQL"))
	require.Len(t, bodies, 2)
	assert.Equal(t, "Go", bodies[0]["skill"])
	assert.Equal(t, []any{"Go", "SQL"}, bodies[1]["skills"])

	err := c.AddProfileSkills(context.Background(), " ")
	var ie *validation.InputError
	assert.True(t, errors.As(err, &ie))
}

func TestSaveGoal(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/goals", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Analyst", body["goal"])
		assert.Equal(t, []any{"Excel"}, body["skills"])
		writeJSON(w, http.StatusOK, map[string]string{"message": "Goal saved successfully"})
	})

	err := c.SaveGoal(context.Background(), "Analyst", "", &types.GoalRequirement{RequiredSkills: []string{"Excel"}})
	require.NoError(t, err)
}

func TestErrorField(t *testing.T) {
	tests := []struct {
		body     string
		expected string
	}{
		{`{"error":"x"}`, "x"},
		{`{"error":""}`, ""},
		{`{"error":null}`, ""},
		{`{"error":true}`, "request failed"},
		{`[1,2]`, ""},
		{`not json`, ""},
		{``, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, errorField([]byte(tt.body)), tt.body)
	}
}
