package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// setupCalculateTest creates a Gin engine with just the calculate route.
// The endpoint is pure computation, so no DB is needed.
func setupCalculateTest() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := Handler{}
	router := gin.New()
	router.POST("/api/calories/calculate", h.calculateBudget)
	return router
}

// doCalculateRequest sends a POST to the calculate endpoint with the given body.
func doCalculateRequest(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/calories/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// calculateResponse mirrors the JSON shape of a successful calculation.
type calculateResponse struct {
	Calories int    `json:"calories"`
	Proteins int    `json:"proteins"`
	Fats     int    `json:"fats"`
	Carbs    int    `json:"carbs"`
	Goal     string `json:"goal"`
}

func TestCalculate_LoseScenario(t *testing.T) {
	router := setupCalculateTest()

	// Reference scenario: BMR 1780, TDEE 2759, 20% deficit -> 2207 kcal,
	// macros 35/20/45 -> 193/49/248 g.
	w := doCalculateRequest(router,
		`{"gender":"male","age":30,"weight":80,"height":180,"activity":1.55,"goal":"lose"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp calculateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Calories != 2207 {
		t.Errorf("expected calories 2207, got %d", resp.Calories)
	}
	if resp.Proteins != 193 || resp.Fats != 49 || resp.Carbs != 248 {
		t.Errorf("expected macros 193/49/248, got %d/%d/%d", resp.Proteins, resp.Fats, resp.Carbs)
	}
	if resp.Goal != "lose" {
		t.Errorf("expected goal 'lose', got '%s'", resp.Goal)
	}
}

func TestCalculate_FemaleMaintain(t *testing.T) {
	router := setupCalculateTest()

	// Female, 25y, 60 kg, 165 cm, light activity:
	// BMR = 600 + 1031.25 - 125 - 161 = 1345.25, TDEE = 1849.72 -> 1850.
	w := doCalculateRequest(router,
		`{"gender":"female","age":25,"weight":60,"height":165,"activity":1.375,"goal":"maintain"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp calculateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Calories != 1850 {
		t.Errorf("expected calories 1850, got %d", resp.Calories)
	}
}

func TestCalculate_InvalidInputs(t *testing.T) {
	router := setupCalculateTest()

	cases := []struct {
		name string
		body string
	}{
		{"unknown gender", `{"gender":"other","age":30,"weight":80,"height":180,"activity":1.55,"goal":"lose"}`},
		{"age too low", `{"gender":"male","age":10,"weight":80,"height":180,"activity":1.55,"goal":"lose"}`},
		{"weight too low", `{"gender":"male","age":30,"weight":20,"height":180,"activity":1.55,"goal":"lose"}`},
		{"height too high", `{"gender":"male","age":30,"weight":80,"height":300,"activity":1.55,"goal":"lose"}`},
		{"off-table activity", `{"gender":"male","age":30,"weight":80,"height":180,"activity":1.6,"goal":"lose"}`},
		{"unknown goal", `{"gender":"male","age":30,"weight":80,"height":180,"activity":1.55,"goal":"shred"}`},
		{"malformed JSON", `{"gender":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doCalculateRequest(router, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}
