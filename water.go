package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// userWeight fetches the user's current weight in kg, nil when not set.
func (h *Handler) userWeight(c *gin.Context, userID int) (*float64, error) {
	var weight *float64
	err := h.db.QueryRow(c, "SELECT weight FROM users WHERE id = $1", userID).Scan(&weight)
	return weight, err
}

// trackWater adds to the day's cumulative water amount.
// POST /api/water/track. Body: { "amount": 250, "date"?: "YYYY-MM-DD" }.
// The read-modify-write runs in a transaction with the row locked, so two
// concurrent tracks for the same (user, date) serialize instead of losing one
// update — the arithmetic itself stays in addWater.
func (h *Handler) trackWater(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body waterRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date == "" {
		body.Date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	// Reject before opening a transaction. addWater rechecks either way.
	if body.Amount <= 0 {
		apiError(c, http.StatusBadRequest, "amount must be greater than zero")
		return
	}

	tx, err := h.db.Begin(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to start transaction")
		return
	}
	defer tx.Rollback(c)

	var recordID, current int
	updated := true
	err = tx.QueryRow(c,
		`SELECT id, amount FROM water_tracker
		 WHERE user_id = $1 AND date = $2 FOR UPDATE`,
		userID, body.Date).Scan(&recordID, &current)
	if errors.Is(err, pgx.ErrNoRows) {
		current = 0
		updated = false
	} else if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to read water record")
		return
	}

	newAmount, err := addWater(current, body.Amount)
	if err != nil {
		apiError(c, http.StatusBadRequest, "amount must be greater than zero")
		return
	}

	if updated {
		_, err = tx.Exec(c,
			"UPDATE water_tracker SET amount = $1, updated_at = now() WHERE id = $2",
			newAmount, recordID)
	} else {
		err = tx.QueryRow(c,
			`INSERT INTO water_tracker (user_id, amount, date)
			 VALUES ($1, $2, $3) RETURNING id`,
			userID, newAmount, body.Date).Scan(&recordID)
	}
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save water record")
		return
	}
	if err := tx.Commit(c); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save water record")
		return
	}

	weight, err := h.userWeight(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	norm := waterNorm(weight)

	c.JSON(http.StatusOK, gin.H{
		"water": gin.H{
			"id":               recordID,
			"amount":           newAmount,
			"date":             body.Date,
			"norm":             norm,
			"percentCompleted": waterProgress(newAmount, norm),
			"isUpdated":        updated,
		},
	})
}

// getWaterStatus returns the day's amount, personalized norm, and completion
// percentage. A missing record reads as amount 0, not as an error.
// GET /api/water/status?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getWaterStatus(c *gin.Context) {
	userID := c.GetInt("user_id")
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	if _, err := time.Parse("2006-01-02", date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	weight, err := h.userWeight(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	norm := waterNorm(weight)

	record, err := queryOne[waterRecord](h.db, c,
		`SELECT id, amount, date, updated_at FROM water_tracker
		 WHERE user_id = @userID AND date = @date`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusInternalServerError, "failed to fetch water record")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"date":             date,
			"amount":           0,
			"norm":             norm,
			"percentCompleted": 0,
			"last_updated":     nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":             date,
		"amount":           record.Amount,
		"norm":             norm,
		"percentCompleted": waterProgress(record.Amount, norm),
		"last_updated":     record.UpdatedAt,
	})
}

// waterHistoryDay is one day's entry in the GET /api/water/history response.
type waterHistoryDay struct {
	Date             DateOnly   `json:"date"`
	Amount           int        `json:"amount"`
	PercentCompleted int        `json:"percentCompleted"`
	LastUpdated      *time.Time `json:"last_updated"`
}

// getWaterHistory returns the last 7 days of water records, newest first.
// Days with no record are omitted (the frontend fills the gaps).
// GET /api/water/history.
func (h *Handler) getWaterHistory(c *gin.Context) {
	userID := c.GetInt("user_id")

	weight, err := h.userWeight(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	norm := waterNorm(weight)

	records, err := queryMany[waterRecord](h.db, c,
		`SELECT id, amount, date, updated_at FROM water_tracker
		 WHERE user_id = @userID AND date >= CURRENT_DATE - INTERVAL '7 days'
		 ORDER BY date DESC`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch water history")
		return
	}

	history := make([]waterHistoryDay, 0, len(records))
	for _, r := range records {
		history = append(history, waterHistoryDay{
			Date:             r.Date,
			Amount:           r.Amount,
			PercentCompleted: waterProgress(r.Amount, norm),
			LastUpdated:      r.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"history": history,
		"norm":    norm,
	})
}

// removeWaterEntry takes water back off the day's record. Removing as much as
// (or more than) the current amount deletes the row entirely, so "no record"
// and "record at 0" stay distinct. Same locking scheme as trackWater.
// DELETE /api/water/remove. Body: { "amount": 250, "date"?: "YYYY-MM-DD" }.
func (h *Handler) removeWaterEntry(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body waterRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date == "" {
		body.Date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if body.Amount <= 0 {
		apiError(c, http.StatusBadRequest, "amount must be greater than zero")
		return
	}

	tx, err := h.db.Begin(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to start transaction")
		return
	}
	defer tx.Rollback(c)

	var recordID, current int
	err = tx.QueryRow(c,
		`SELECT id, amount FROM water_tracker
		 WHERE user_id = $1 AND date = $2 FOR UPDATE`,
		userID, body.Date).Scan(&recordID, &current)
	if errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusNotFound, "no water record for this date")
		return
	}
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to read water record")
		return
	}

	remaining, deleted, err := removeWater(current, body.Amount)
	if err != nil {
		apiError(c, http.StatusBadRequest, "amount must be greater than zero")
		return
	}

	if deleted {
		_, err = tx.Exec(c, "DELETE FROM water_tracker WHERE id = $1", recordID)
	} else {
		_, err = tx.Exec(c,
			"UPDATE water_tracker SET amount = $1, updated_at = now() WHERE id = $2",
			remaining, recordID)
	}
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update water record")
		return
	}
	if err := tx.Commit(c); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update water record")
		return
	}

	weight, err := h.userWeight(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	norm := waterNorm(weight)

	c.JSON(http.StatusOK, gin.H{
		"water": gin.H{
			"amount":           remaining,
			"date":             body.Date,
			"norm":             norm,
			"percentCompleted": waterProgress(remaining, norm),
			"deleted":          deleted,
		},
	})
}
