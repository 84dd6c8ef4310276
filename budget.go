package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// calculateBudget computes a daily calorie/macro budget from body metrics,
// activity level, and goal. POST /api/calories/calculate (public — the
// original app shows the result before the user even has an account).
func (h *Handler) calculateBudget(c *gin.Context) {
	var body calculateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Gender != "male" && body.Gender != "female" {
		apiError(c, http.StatusBadRequest, "gender must be male or female")
		return
	}
	if body.Age < 12 || body.Age > 100 {
		apiError(c, http.StatusBadRequest, "age must be between 12 and 100")
		return
	}
	if body.WeightKG < 30 || body.WeightKG > 300 {
		apiError(c, http.StatusBadRequest, "weight must be between 30 and 300 kg")
		return
	}
	if body.HeightCM < 100 || body.HeightCM > 250 {
		apiError(c, http.StatusBadRequest, "height must be between 100 and 250 cm")
		return
	}
	if !validActivityLevels[body.Activity] {
		apiError(c, http.StatusBadRequest, "activity must be one of: 1.2, 1.375, 1.55, 1.725, 1.9")
		return
	}
	if !validGoal(body.Goal) {
		apiError(c, http.StatusBadRequest, "goal must be one of: lose, maintain, gain")
		return
	}

	profile := bodyProfile{
		Gender:   body.Gender,
		Age:      body.Age,
		WeightKG: body.WeightKG,
		HeightCM: body.HeightCM,
	}
	calories := computeDailyCalories(profile, body.Activity, body.Goal)
	proteins, fats, carbs := allocateMacros(calories, body.Goal)

	c.JSON(http.StatusOK, gin.H{
		"calories": calories,
		"proteins": proteins,
		"fats":     fats,
		"carbs":    carbs,
		"goal":     body.Goal,
	})
}

// saveBudget stores the user's calculated budget. One row per user — saving
// again overwrites the previous budget (latest wins, no history).
// POST /api/calories/save.
func (h *Handler) saveBudget(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body saveBudgetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.DailyCalories < 500 || body.DailyCalories > 10000 {
		apiError(c, http.StatusBadRequest, "daily_calories must be between 500 and 10000")
		return
	}
	if body.Proteins < 0 || body.Proteins > 1000 ||
		body.Fats < 0 || body.Fats > 1000 ||
		body.Carbs < 0 || body.Carbs > 1000 {
		apiError(c, http.StatusBadRequest, "macro grams must be between 0 and 1000")
		return
	}
	if !validGoal(body.Goal) {
		apiError(c, http.StatusBadRequest, "goal must be one of: lose, maintain, gain")
		return
	}

	// UNIQUE(user_id) turns a re-save into an in-place overwrite.
	_, err := h.db.Exec(c,
		`INSERT INTO calories (user_id, daily_calories, proteins, fats, carbs, goal)
		 VALUES (@userID, @dailyCalories, @proteins, @fats, @carbs, @goal)
		 ON CONFLICT (user_id) DO UPDATE SET
			daily_calories = EXCLUDED.daily_calories,
			proteins       = EXCLUDED.proteins,
			fats           = EXCLUDED.fats,
			carbs          = EXCLUDED.carbs,
			goal           = EXCLUDED.goal,
			updated_at     = now()`,
		pgx.NamedArgs{
			"userID": userID, "dailyCalories": body.DailyCalories,
			"proteins": body.Proteins, "fats": body.Fats,
			"carbs": body.Carbs, "goal": body.Goal,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save budget")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "budget saved"})
}

// getUserBudget returns the user's saved budget, or 404 if none was saved yet.
// GET /api/calories/user.
func (h *Handler) getUserBudget(c *gin.Context) {
	userID := c.GetInt("user_id")

	budget, err := queryOne[nutritionBudget](h.db, c,
		`SELECT daily_calories, proteins, fats, carbs, goal
		 FROM calories WHERE user_id = @userID`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "budget not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to fetch budget")
		}
		return
	}

	c.JSON(http.StatusOK, budget)
}

// budgetListItem is one row of the GET /api/calories/all response: a saved
// budget joined with its owner's name/email.
type budgetListItem struct {
	ID            int        `json:"id" db:"id"`
	UserID        int        `json:"user_id" db:"user_id"`
	UserName      string     `json:"user_name" db:"user_name"`
	Email         string     `json:"email" db:"email"`
	DailyCalories int        `json:"daily_calories" db:"daily_calories"`
	Proteins      int        `json:"proteins" db:"proteins"`
	Fats          int        `json:"fats" db:"fats"`
	Carbs         int        `json:"carbs" db:"carbs"`
	Goal          string     `json:"goal" db:"goal"`
	CreatedAt     *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at" db:"updated_at"`
}

// listAllBudgets returns every saved budget with user names attached.
// GET /api/calories/all — admin/debugging endpoint.
func (h *Handler) listAllBudgets(c *gin.Context) {
	items, err := queryMany[budgetListItem](h.db, c,
		`SELECT c.id, c.user_id, u.name AS user_name, u.email,
		        c.daily_calories, c.proteins, c.fats, c.carbs, c.goal,
		        c.created_at, c.updated_at
		 FROM calories c
		 JOIN users u ON c.user_id = u.id
		 ORDER BY c.id DESC`, nil)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch budgets")
		return
	}
	if items == nil {
		items = []budgetListItem{}
	}

	c.JSON(http.StatusOK, items)
}
