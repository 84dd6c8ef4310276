package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil
// so that *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. Password is hidden from JSON responses.
// Body-metric fields are nullable: registration collects them, but older rows
// and partially-updated profiles may still have gaps.
type user struct {
	ID        int        `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Email     string     `json:"email" db:"email"`
	Password  string     `json:"-" db:"password"`
	Age       *int       `json:"age" db:"age"`
	Gender    *string    `json:"gender" db:"gender"`
	HeightCM  *int       `json:"height" db:"height"`
	WeightKG  *float64   `json:"weight" db:"weight"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"-" db:"updated_at"`
}

// product maps to the products table. Nutrition fields are per 100 g/ml of
// the product, which is what scaleNutrition expects.
type product struct {
	ID       int     `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Calories float64 `json:"calories" db:"calories"`
	Proteins float64 `json:"proteins" db:"proteins"`
	Fats     float64 `json:"fats" db:"fats"`
	Carbs    float64 `json:"carbs" db:"carbs"`
}

// nutritionBudget maps to the calories table: one saved daily KBJU target per
// user (latest save wins, no history).
type nutritionBudget struct {
	DailyCalories int    `json:"daily_calories" db:"daily_calories"`
	Proteins      int    `json:"proteins" db:"proteins"`
	Fats          int    `json:"fats" db:"fats"`
	Carbs         int    `json:"carbs" db:"carbs"`
	Goal          string `json:"goal" db:"goal"`
}

// mealRow is the shape of each row from the meals-by-date JOIN against products.
// Per-100 nutrition fields ride along so aggregation never re-fetches the catalog.
type mealRow struct {
	ID        int      `db:"id"`
	ProductID int      `db:"product_id"`
	Quantity  float64  `db:"quantity"`
	MealType  string   `db:"meal_type"`
	Date      DateOnly `db:"date"`
	Name      string   `db:"name"`
	Calories  float64  `db:"calories"`
	Proteins  float64  `db:"proteins"`
	Fats      float64  `db:"fats"`
	Carbs     float64  `db:"carbs"`
}

// waterRecord maps to water_tracker: one row per user per date, cumulative
// millilitres, never negative (enforced by removeWater plus a DB CHECK).
type waterRecord struct {
	ID        int        `json:"id" db:"id"`
	Amount    int        `json:"amount" db:"amount"`
	Date      DateOnly   `json:"date" db:"date"`
	UpdatedAt *time.Time `json:"last_updated" db:"updated_at"`
}

/* ─── Request types ──────────────────────────────────────────────────── */

// registerRequest is the request body for POST /api/auth/register.
type registerRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Age      int     `json:"age"`
	HeightCM int     `json:"height"`
	WeightKG float64 `json:"weight"`
}

// calculateRequest is the request body for POST /api/calories/calculate.
// Activity is the numeric TDEE multiplier itself (1.2 … 1.9), validated
// against validActivityLevels.
type calculateRequest struct {
	Gender   string  `json:"gender"`
	Age      int     `json:"age"`
	WeightKG float64 `json:"weight"`
	HeightCM int     `json:"height"`
	Activity float64 `json:"activity"`
	Goal     string  `json:"goal"`
}

// saveBudgetRequest is the request body for POST /api/calories/save.
type saveBudgetRequest struct {
	DailyCalories int    `json:"daily_calories"`
	Proteins      int    `json:"proteins"`
	Fats          int    `json:"fats"`
	Carbs         int    `json:"carbs"`
	Goal          string `json:"goal"`
}

// updateProfileRequest is the request body for PUT /api/users/profile.
// The original client always sends the full profile, so this is a whole-row
// update rather than a PATCH.
type updateProfileRequest struct {
	Name     string   `json:"name"`
	Age      *int     `json:"age"`
	Gender   *string  `json:"gender"`
	HeightCM *int     `json:"height"`
	WeightKG *float64 `json:"weight"`
}

// addMealRequest is the request body for POST /api/meals.
type addMealRequest struct {
	ProductID int     `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	MealType  string  `json:"meal_type"`
	Date      string  `json:"date"`
}

// waterRequest is the request body for POST /api/water/track and
// DELETE /api/water/remove. Amount is millilitres.
type waterRequest struct {
	Amount int    `json:"amount"`
	Date   string `json:"date"`
}
