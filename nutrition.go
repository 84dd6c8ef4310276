package main

import (
	"errors"
	"math"
)

// validActivityLevels is the fixed set of TDEE multipliers, sedentary through
// very active. This is the single source of truth for valid activity values —
// also used for input validation in calculateBudget.
var validActivityLevels = map[float64]bool{
	1.2:   true,
	1.375: true,
	1.55:  true,
	1.725: true,
	1.9:   true,
}

// goalCalorieFactors adjusts TDEE per goal: 20% deficit to lose, 15% surplus
// to gain. Maintain is absent — an unmatched goal leaves TDEE unchanged.
var goalCalorieFactors = map[string]float64{
	"lose": 0.80,
	"gain": 1.15,
}

// macroSplit holds the fraction of daily calories assigned to each
// macronutrient. The three fractions sum to 1 for every goal.
type macroSplit struct {
	Protein float64
	Fat     float64
	Carb    float64
}

// goalMacroSplits maps each goal to its calorie split. Also the validation
// source for goal strings (validGoal).
var goalMacroSplits = map[string]macroSplit{
	"lose":     {Protein: 0.35, Fat: 0.20, Carb: 0.45},
	"maintain": {Protein: 0.30, Fat: 0.30, Carb: 0.40},
	"gain":     {Protein: 0.25, Fat: 0.25, Carb: 0.50},
}

// validGoal reports whether g is one of the supported goals.
func validGoal(g string) bool {
	_, ok := goalMacroSplits[g]
	return ok
}

// bodyProfile is the metric body data the calorie computation runs on.
// Callers validate ranges (age 1-120, weight 30-300, height 100-250) before
// constructing one.
type bodyProfile struct {
	Gender   string // "male" or "female"
	Age      int
	WeightKG float64
	HeightCM int
}

// computeBMR computes basal metabolic rate via Mifflin-St Jeor: different
// constant for male (+5) vs female (-161).
func computeBMR(p bodyProfile) float64 {
	bmr := 10*p.WeightKG + 6.25*float64(p.HeightCM) - 5*float64(p.Age)
	if p.Gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}
	return bmr
}

// computeDailyCalories derives the daily calorie budget: BMR scaled by the
// activity multiplier, then adjusted for the goal, rounded to the nearest
// integer. Pure arithmetic over pre-validated inputs — there is no failure
// mode; an unknown goal simply maintains.
func computeDailyCalories(p bodyProfile, activity float64, goal string) int {
	tdee := computeBMR(p) * activity
	if factor, ok := goalCalorieFactors[goal]; ok {
		tdee *= factor
	}
	return int(math.Round(tdee))
}

// allocateMacros splits a daily calorie target into protein/fat/carb gram
// targets using the goal's percentage table. Protein and carbs count 4 kcal/g,
// fat 9 kcal/g. Each gram value is rounded independently, so the three do not
// exactly reconstruct the calorie target after rounding — that drift is
// intentional. An unknown goal uses the maintain split.
func allocateMacros(dailyCalories int, goal string) (proteinsG, fatsG, carbsG int) {
	split, ok := goalMacroSplits[goal]
	if !ok {
		split = goalMacroSplits["maintain"]
	}
	cal := float64(dailyCalories)
	proteinsG = int(math.Round(cal * split.Protein / 4))
	fatsG = int(math.Round(cal * split.Fat / 9))
	carbsG = int(math.Round(cal * split.Carb / 4))
	return proteinsG, fatsG, carbsG
}

// errInvalidQuantity is returned by scaleNutrition for a non-positive
// quantity. Handlers translate it to a 400.
var errInvalidQuantity = errors.New("quantity must be greater than zero")

// nutrition is a scaled nutritional contribution. Values stay as real numbers
// (no rounding) because they feed further aggregation; rounding is a display
// concern.
type nutrition struct {
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Fats     float64 `json:"fats"`
	Carbs    float64 `json:"carbs"`
}

// scaleNutrition converts a product's per-100-unit profile into the
// contribution of quantity units (grams or millilitres) of it.
func scaleNutrition(p product, quantity float64) (nutrition, error) {
	if quantity <= 0 {
		return nutrition{}, errInvalidQuantity
	}
	ratio := quantity / 100
	return nutrition{
		Calories: p.Calories * ratio,
		Proteins: p.Proteins * ratio,
		Fats:     p.Fats * ratio,
		Carbs:    p.Carbs * ratio,
	}, nil
}
