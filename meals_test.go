package main

import (
	"errors"
	"math"
	"testing"
)

// makeRow builds a mealRow for aggregation tests: a product with per-100
// nutrition, consumed quantity, and meal type.
func makeRow(id int, mealType string, quantity, calories, proteins, fats, carbs float64) mealRow {
	return mealRow{
		ID:        id,
		ProductID: id * 10,
		Quantity:  quantity,
		MealType:  mealType,
		Name:      "test product",
		Calories:  calories,
		Proteins:  proteins,
		Fats:      fats,
		Carbs:     carbs,
	}
}

// TestAggregateMeals_Empty verifies that an empty day still produces all four
// buckets (as empty, non-nil slices — they must serialize as []) and zero totals.
func TestAggregateMeals_Empty(t *testing.T) {
	grouped, totals, err := aggregateMeals(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for name, bucket := range map[string][]mealItem{
		"breakfast": grouped.Breakfast,
		"lunch":     grouped.Lunch,
		"dinner":    grouped.Dinner,
		"snack":     grouped.Snack,
	} {
		if bucket == nil {
			t.Errorf("%s bucket is nil, want empty slice", name)
		}
		if len(bucket) != 0 {
			t.Errorf("%s bucket has %d items, want 0", name, len(bucket))
		}
	}
	if totals != (nutrition{}) {
		t.Errorf("totals = %+v, want all zero", totals)
	}
}

// TestAggregateMeals_Grouping verifies that entries land in their own buckets
// and that within-bucket order matches input order.
func TestAggregateMeals_Grouping(t *testing.T) {
	rows := []mealRow{
		makeRow(1, "breakfast", 100, 100, 5, 2, 10),
		makeRow(2, "breakfast", 50, 400, 20, 10, 40),
		makeRow(3, "lunch", 200, 150, 8, 6, 12),
		makeRow(4, "snack", 30, 500, 0, 30, 50),
	}
	grouped, _, err := aggregateMeals(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grouped.Breakfast) != 2 || len(grouped.Lunch) != 1 || len(grouped.Dinner) != 0 || len(grouped.Snack) != 1 {
		t.Fatalf("bucket sizes = %d/%d/%d/%d, want 2/1/0/1",
			len(grouped.Breakfast), len(grouped.Lunch), len(grouped.Dinner), len(grouped.Snack))
	}
	if grouped.Breakfast[0].ID != 1 || grouped.Breakfast[1].ID != 2 {
		t.Errorf("breakfast order = %d, %d, want 1, 2", grouped.Breakfast[0].ID, grouped.Breakfast[1].ID)
	}
	// Spot-check one scaled contribution: row 2 is 50 g of 400 kcal/100 g.
	if got := grouped.Breakfast[1].Nutrition.Calories; got != 200 {
		t.Errorf("scaled calories = %f, want 200", got)
	}
}

// TestAggregateMeals_PartitionInvariant verifies that the grand total equals
// the sum of every entry's scaled nutrition no matter how entries are spread
// across meal types.
func TestAggregateMeals_PartitionInvariant(t *testing.T) {
	spreads := [][]string{
		{"breakfast", "breakfast", "breakfast", "breakfast"},
		{"breakfast", "lunch", "dinner", "snack"},
		{"snack", "snack", "lunch", "lunch"},
	}
	quantities := []float64{80, 125, 200, 45}
	base := makeRow(0, "", 0, 250, 12.5, 9.1, 30.4)

	var wantCalories, wantProteins float64
	for _, q := range quantities {
		wantCalories += base.Calories * q / 100
		wantProteins += base.Proteins * q / 100
	}

	for _, spread := range spreads {
		rows := make([]mealRow, len(spread))
		for i, mealType := range spread {
			rows[i] = makeRow(i+1, mealType, quantities[i], base.Calories, base.Proteins, base.Fats, base.Carbs)
		}
		_, totals, err := aggregateMeals(rows)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(totals.Calories-wantCalories) > 1e-9 {
			t.Errorf("spread %v: total calories = %f, want %f", spread, totals.Calories, wantCalories)
		}
		if math.Abs(totals.Proteins-wantProteins) > 1e-9 {
			t.Errorf("spread %v: total proteins = %f, want %f", spread, totals.Proteins, wantProteins)
		}
	}
}

// TestAggregateMeals_UnroundedTotals verifies that totals accumulate real
// numbers: three entries of 33 g of a 100 kcal/100 g product must sum to
// exactly 99, not a per-entry-rounded value.
func TestAggregateMeals_UnroundedTotals(t *testing.T) {
	rows := []mealRow{
		makeRow(1, "breakfast", 33, 100, 3.3, 1.1, 7.7),
		makeRow(2, "lunch", 33, 100, 3.3, 1.1, 7.7),
		makeRow(3, "dinner", 33, 100, 3.3, 1.1, 7.7),
	}
	_, totals, err := aggregateMeals(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(totals.Calories-99) > 1e-9 {
		t.Errorf("total calories = %f, want 99", totals.Calories)
	}
}

// TestAggregateMeals_InvalidQuantity verifies that a non-positive quantity
// surfaces the scaler's error instead of being silently skipped.
func TestAggregateMeals_InvalidQuantity(t *testing.T) {
	rows := []mealRow{makeRow(1, "lunch", 0, 100, 5, 5, 5)}
	if _, _, err := aggregateMeals(rows); !errors.Is(err, errInvalidQuantity) {
		t.Errorf("error = %v, want errInvalidQuantity", err)
	}
}
