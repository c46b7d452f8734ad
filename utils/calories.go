package utils

import (
	"math"
	"strconv"
)

// TargetInput describes the user profile the daily-target calculation
// works from. Weight is in pounds, height in feet+inches, timeline in
// months. Zero-value fields fall back to conservative defaults.
type TargetInput struct {
	CurrentWeight float64 `json:"currentWeight"`
	GoalWeight    float64 `json:"goalWeight"`
	Timeline      int     `json:"timeline"`
	Gender        string  `json:"gender"`
	Age           int     `json:"age"`
	HeightFeet    int     `json:"heightFeet"`
	HeightInches  int     `json:"heightInches"`
	ActivityLevel string  `json:"activityLevel"`
}

var activityMultipliers = map[string]float64{
	"sedentary": 1.2,
	"light":     1.375,
	"moderate":  1.55,
	"very":      1.725,
	"extreme":   1.9,
}

// CalculateBMR estimates basal metabolic rate with the Mifflin-St Jeor
// equation. Returns a 1500 kcal fallback when no usable weight is given.
func CalculateBMR(in TargetInput) int {
	if in.CurrentWeight <= 0 {
		return 1500
	}

	gender := in.Gender
	if gender == "" {
		gender = "female"
	}
	age := in.Age
	if age <= 0 {
		age = 30
	}
	heightFeet := in.HeightFeet
	heightInches := in.HeightInches
	if heightFeet <= 0 {
		heightFeet, heightInches = 5, 6
	}

	weightKg := in.CurrentWeight * 0.453592
	heightCm := float64(heightFeet*12+heightInches) * 2.54

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}
	return int(math.Round(bmr))
}

// CalculateTDEE scales BMR by the activity level multiplier.
func CalculateTDEE(bmr int, activityLevel string) int {
	multiplier, ok := activityMultipliers[activityLevel]
	if !ok {
		multiplier = activityMultipliers["sedentary"]
	}
	return int(math.Round(float64(bmr) * multiplier))
}

// CalculateDailyTarget derives a daily calorie target from the goal
// weight and timeline, clamped so the plan never dips below 1200 kcal or
// 80% of BMR and never exceeds 120% of TDEE. With no goal weight (or a
// goal equal to the current weight) it targets maintenance.
func CalculateDailyTarget(in TargetInput) int {
	bmr := CalculateBMR(in)
	tdee := CalculateTDEE(bmr, in.ActivityLevel)

	if in.GoalWeight <= 0 || in.GoalWeight == in.CurrentWeight {
		return tdee
	}

	timeline := in.Timeline
	if timeline <= 0 {
		timeline = 12
	}

	// One pound is roughly 3500 kcal; spread the total change over the
	// timeline in weeks.
	weeksToGoal := float64(timeline) * 4.33
	weeklyWeightChange := (in.GoalWeight - in.CurrentWeight) / weeksToGoal
	dailyAdjustment := weeklyWeightChange * 3500 / 7

	target := float64(tdee) + dailyAdjustment

	minCalories := math.Max(1200, float64(bmr)*0.8)
	maxCalories := float64(tdee) * 1.2
	target = math.Max(minCalories, math.Min(maxCalories, target))

	return int(math.Round(target))
}

// CalorieProgress summarizes consumption against the daily target.
type CalorieProgress struct {
	Consumed        int    `json:"consumed"`
	Target          int    `json:"target"`
	Remaining       int    `json:"remaining"`
	PercentComplete int    `json:"percentComplete"`
	Status          string `json:"status"`
	StatusText      string `json:"statusText"`
}

// GetCalorieProgress classifies today's consumption as under, at or over
// target, with an at-target band of 90-110%.
func GetCalorieProgress(consumed, target int) CalorieProgress {
	p := CalorieProgress{
		Consumed:  consumed,
		Target:    target,
		Remaining: target - consumed,
	}
	if target > 0 {
		p.PercentComplete = int(math.Round(float64(consumed) / float64(target) * 100))
	}

	switch {
	case float64(consumed) < float64(target)*0.9:
		p.Status = "under"
		p.StatusText = itoaAbs(p.Remaining) + " calories remaining"
	case float64(consumed) <= float64(target)*1.1:
		p.Status = "at"
		p.StatusText = "At target - great job!"
	default:
		p.Status = "over"
		p.StatusText = itoaAbs(p.Remaining) + " calories over"
	}
	return p
}

func itoaAbs(n int) string {
	if n < 0 {
		n = -n
	}
	return strconv.Itoa(n)
}
