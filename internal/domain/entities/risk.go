package entities

// RiskLevel is the ordinal output of the risk assessor.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// severity ranks risk levels so the maximum matched rule wins.
var severity = map[RiskLevel]int{RiskLow: 0, RiskMedium: 1, RiskHigh: 2}

// Max returns the more severe of two risk levels.
func (l RiskLevel) Max(other RiskLevel) RiskLevel {
	if severity[other] > severity[l] {
		return other
	}
	return l
}

// RiskAssessment is the categorical outcome of a risk evaluation.
type RiskAssessment struct {
	Level          RiskLevel `json:"risk_level"`
	Factors        []string  `json:"risk_factors"`
	Recommendation string    `json:"recommendation"`
}

// FactorImpact qualifies how strongly a risk factor weighs.
type FactorImpact string

const (
	ImpactMedium FactorImpact = "medium"
	ImpactHigh   FactorImpact = "high"
)

// RiskFactor is a single qualitative flag derived from metrics, history, or
// lifestyle data.
type RiskFactor struct {
	Factor string       `json:"factor"`
	Impact FactorImpact `json:"impact"`
}

// HealthMetrics carries the caller-supplied numeric fields used for
// metric-based risk factors.
type HealthMetrics struct {
	BMI           float64 `json:"bmi,omitempty"`
	BloodPressure string  `json:"blood_pressure,omitempty"`
}

// LifestyleFactors carries the lifestyle flags relevant to risk scoring.
type LifestyleFactors struct {
	Smoking  bool   `json:"smoking,omitempty"`
	Exercise string `json:"exercise,omitempty"`
}

// SymptomAnalysis is the full response of the symptom-analysis operation.
type SymptomAnalysis struct {
	Succeeded          bool                `json:"success"`
	Analysis           string              `json:"analysis,omitempty"`
	Level              RiskLevel           `json:"risk_level,omitempty"`
	Recommendations    []string            `json:"recommendations,omitempty"`
	PossibleConditions []DetectedCondition `json:"possible_conditions,omitempty"`
	UrgentCareNeeded   bool                `json:"urgent_care_needed"`
	Disclaimer         string              `json:"disclaimer,omitempty"`
	Error              string              `json:"error,omitempty"`
}

// DetectedCondition is a condition-vocabulary hit with its placeholder
// probability.
type DetectedCondition struct {
	Condition   string  `json:"condition"`
	Probability float64 `json:"probability"`
}

// RiskPrediction is a predicted condition with fixed placeholder scoring.
type RiskPrediction struct {
	Condition   string    `json:"condition"`
	Risk        RiskLevel `json:"risk"`
	Probability float64   `json:"probability"`
	Timeframe   string    `json:"timeframe"`
}

// HealthPrediction is the full response of the risk-prediction operation.
type HealthPrediction struct {
	Succeeded          bool             `json:"success"`
	Predictions        []RiskPrediction `json:"predictions,omitempty"`
	RiskFactors        []RiskFactor     `json:"risk_factors,omitempty"`
	PreventiveMeasures []string         `json:"preventive_measures,omitempty"`
	Timeline           string           `json:"timeline,omitempty"`
	Confidence         float64          `json:"confidence,omitempty"`
	Error              string           `json:"error,omitempty"`
}
