package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// getUserProfile returns the authenticated user's profile including body
// metrics. GET /api/users/profile.
func (h *Handler) getUserProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	u, err := queryOne[user](h.db, c,
		"SELECT * FROM users WHERE id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "user not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		}
		return
	}

	c.JSON(http.StatusOK, u)
}

// updateUserProfile replaces the profile fields. The weight saved here drives
// the personalized water norm, so the same 30-300 kg range applies as at
// registration. PUT /api/users/profile.
func (h *Handler) updateUserProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body updateProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(strings.TrimSpace(body.Name)) < 2 {
		apiError(c, http.StatusBadRequest, "name must be at least 2 characters")
		return
	}
	if body.Age != nil && (*body.Age < 1 || *body.Age > 120) {
		apiError(c, http.StatusBadRequest, "age must be between 1 and 120")
		return
	}
	if body.Gender != nil && *body.Gender != "male" && *body.Gender != "female" {
		apiError(c, http.StatusBadRequest, "gender must be male or female")
		return
	}
	if body.HeightCM != nil && (*body.HeightCM < 100 || *body.HeightCM > 250) {
		apiError(c, http.StatusBadRequest, "height must be between 100 and 250 cm")
		return
	}
	if body.WeightKG != nil && (*body.WeightKG < 30 || *body.WeightKG > 300) {
		apiError(c, http.StatusBadRequest, "weight must be between 30 and 300 kg")
		return
	}

	u, err := queryOne[user](h.db, c,
		`UPDATE users SET
			name       = @name,
			age        = @age,
			gender     = @gender,
			height     = @height,
			weight     = @weight,
			updated_at = now()
		 WHERE id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "name": strings.TrimSpace(body.Name),
			"age": body.Age, "gender": body.Gender,
			"height": body.HeightCM, "weight": body.WeightKG,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, u)
}
