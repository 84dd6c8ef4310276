package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// validMealTypes is the set of allowed values for the meal_type column.
// Reject unknown values with 400 rather than letting the DB return a cryptic 500.
var validMealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

// mealItem is one logged entry in the day view: the product reference plus
// its scaled nutritional contribution.
type mealItem struct {
	ID        int       `json:"id"`
	ProductID int       `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  float64   `json:"quantity"`
	Nutrition nutrition `json:"nutrition"`
}

// mealsByType groups a day's entries into the four fixed meal buckets. All
// buckets are always present in JSON, empty ones as [].
type mealsByType struct {
	Breakfast []mealItem `json:"breakfast"`
	Lunch     []mealItem `json:"lunch"`
	Dinner    []mealItem `json:"dinner"`
	Snack     []mealItem `json:"snack"`
}

// aggregateMeals scales every row's per-100 nutrition by its quantity, places
// it into its meal-type bucket, and accumulates the grand total. Bucket order
// matches input order, so callers must supply rows pre-sorted. Totals stay as
// real numbers — summing unrounded contributions avoids cumulative drift from
// per-entry display rounding. Pure and recomputed from scratch on every call;
// nothing is cached, so the result can never go stale.
func aggregateMeals(rows []mealRow) (mealsByType, nutrition, error) {
	grouped := mealsByType{
		Breakfast: []mealItem{},
		Lunch:     []mealItem{},
		Dinner:    []mealItem{},
		Snack:     []mealItem{},
	}
	var totals nutrition

	for _, row := range rows {
		scaled, err := scaleNutrition(product{
			Calories: row.Calories,
			Proteins: row.Proteins,
			Fats:     row.Fats,
			Carbs:    row.Carbs,
		}, row.Quantity)
		if err != nil {
			return mealsByType{}, nutrition{}, err
		}

		item := mealItem{
			ID:        row.ID,
			ProductID: row.ProductID,
			Name:      row.Name,
			Quantity:  row.Quantity,
			Nutrition: scaled,
		}
		switch row.MealType {
		case "breakfast":
			grouped.Breakfast = append(grouped.Breakfast, item)
		case "lunch":
			grouped.Lunch = append(grouped.Lunch, item)
		case "dinner":
			grouped.Dinner = append(grouped.Dinner, item)
		case "snack":
			grouped.Snack = append(grouped.Snack, item)
		}

		totals.Calories += scaled.Calories
		totals.Proteins += scaled.Proteins
		totals.Fats += scaled.Fats
		totals.Carbs += scaled.Carbs
	}

	return grouped, totals, nil
}

// addMeal logs a consumed product. The product must be public or owned by the
// user. Returns the entry's scaled nutrition so the client can update its day
// view without a refetch. POST /api/meals. Defaults date to today if omitted.
func (h *Handler) addMeal(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body addMealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.ProductID <= 0 {
		apiError(c, http.StatusBadRequest, "product_id is required")
		return
	}
	if body.Quantity <= 0 {
		apiError(c, http.StatusBadRequest, "quantity must be greater than zero")
		return
	}
	if !validMealTypes[body.MealType] {
		apiError(c, http.StatusBadRequest, "meal_type must be one of: breakfast, lunch, dinner, snack")
		return
	}
	if body.Date == "" {
		body.Date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	p, err := queryOne[product](h.db, c,
		`SELECT id, name, calories, proteins, fats, carbs FROM products
		 WHERE id = @productID AND (is_public = true OR user_id = @userID)`,
		pgx.NamedArgs{"productID": body.ProductID, "userID": userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "product not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to fetch product")
		}
		return
	}

	scaled, err := scaleNutrition(p, body.Quantity)
	if err != nil {
		apiError(c, http.StatusBadRequest, "quantity must be greater than zero")
		return
	}

	var mealID int
	err = h.db.QueryRow(c,
		`INSERT INTO meals (user_id, product_id, quantity, meal_type, date)
		 VALUES (@userID, @productID, @quantity, @mealType, @date)
		 RETURNING id`,
		pgx.NamedArgs{
			"userID": userID, "productID": body.ProductID,
			"quantity": body.Quantity, "mealType": body.MealType, "date": body.Date,
		}).Scan(&mealID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to add meal")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"meal_id":   mealID,
		"nutrition": scaled,
	})
}

// getMealsByDate returns the day's entries grouped by meal type with grand
// totals. GET /api/meals?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getMealsByDate(c *gin.Context) {
	userID := c.GetInt("user_id")
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	// Validate date format before querying — an invalid value silently returns no rows.
	if _, err := time.Parse("2006-01-02", date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	// ORDER BY fixes the within-bucket order the aggregation preserves.
	rows, err := queryMany[mealRow](h.db, c,
		`SELECT m.id, m.product_id, m.quantity, m.meal_type, m.date,
		        p.name, p.calories, p.proteins, p.fats, p.carbs
		 FROM meals m
		 JOIN products p ON m.product_id = p.id
		 WHERE m.user_id = @userID AND m.date = @date
		 ORDER BY m.meal_type, m.created_at`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch meals")
		return
	}

	grouped, totals, err := aggregateMeals(rows)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to aggregate meals")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":   date,
		"meals":  grouped,
		"totals": totals,
	})
}

// deleteMeal removes a logged entry. Returns 204 on success. Quantity edits
// are modeled client-side as delete + re-add, so there is no update handler.
// DELETE /api/meals/:id.
func (h *Handler) deleteMeal(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM meals WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete meal")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "meal not found")
		return
	}

	c.Status(http.StatusNoContent)
}
