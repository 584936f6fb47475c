package entities

// PlanDisclaimer is included verbatim in every generated plan.
const PlanDisclaimer = "This is an AI-generated plan. Consult with a qualified healthcare provider and fitness professional before making any changes to your diet or exercise routine."

// PlanRequest carries the user's metrics and goals for plan generation.
type PlanRequest struct {
	Age                 int     `json:"age"`
	Gender              string  `json:"gender"`
	HeightCm            float64 `json:"height_cm"`
	WeightKg            float64 `json:"weight_kg"`
	ActivityLevel       string  `json:"activity_level"`
	Goal                string  `json:"goal"`
	DietaryPreferences  string  `json:"dietary_preferences,omitempty"`
	AvailableLocalFoods string  `json:"available_local_foods,omitempty"`
}

// Macronutrients is the daily macro breakdown in grams.
type Macronutrients struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// Meal is one meal suggestion within a daily plan.
type Meal struct {
	Meal         string  `json:"meal"`
	Food         string  `json:"food"`
	Calories     float64 `json:"calories"`
	Alternatives string  `json:"alternatives"`
}

// DailyMealPlan is a single day's meal list.
type DailyMealPlan struct {
	Day   string `json:"day"`
	Meals []Meal `json:"meals"`
}

// NutritionPlan is the 7-day nutrition portion of a plan.
type NutritionPlan struct {
	DailyCalories  float64         `json:"daily_calories"`
	Macronutrients Macronutrients  `json:"macronutrients"`
	DailyPlans     []DailyMealPlan `json:"daily_plans"`
}

// SupplementRecommendation suggests one supplement with its rationale.
type SupplementRecommendation struct {
	Supplement string `json:"supplement"`
	Dosage     string `json:"dosage"`
	Reason     string `json:"reason"`
}

// SupplementPlan lists supplement recommendations, possibly empty.
type SupplementPlan struct {
	Recommendations []SupplementRecommendation `json:"recommendations"`
}

// DailyWorkout is a single day's workout in the exercise schedule.
type DailyWorkout struct {
	Day             string   `json:"day"`
	Activity        string   `json:"activity"`
	DurationMinutes int      `json:"duration_minutes"`
	Exercises       []string `json:"exercises"`
}

// ExercisePlan is the weekly workout schedule with progression advice.
type ExercisePlan struct {
	WeeklySchedule    []DailyWorkout `json:"weekly_schedule"`
	ProgressionAdvice string         `json:"progression_advice"`
}

// NutritionFitnessPlan is the complete decoded plan.
type NutritionFitnessPlan struct {
	Succeeded      bool            `json:"success"`
	NutritionPlan  *NutritionPlan  `json:"nutrition_plan,omitempty"`
	SupplementPlan *SupplementPlan `json:"supplement_plan,omitempty"`
	ExercisePlan   *ExercisePlan   `json:"exercise_plan,omitempty"`
	Disclaimer     string          `json:"disclaimer,omitempty"`
	Error          string          `json:"error,omitempty"`
}
