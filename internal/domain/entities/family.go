package entities

// FamilyMember describes one member of a family health profile.
type FamilyMember struct {
	ID              string   `json:"id,omitempty"`
	Name            string   `json:"name"`
	Relationship    string   `json:"relationship"`
	Age             int      `json:"age,omitempty"`
	Gender          string   `json:"gender,omitempty"`
	ChronicDiseases []string `json:"chronic_diseases,omitempty"`
}

// FamilyInsights is the response of the family insight operation.
type FamilyInsights struct {
	Succeeded       bool            `json:"success"`
	Insights        []Insight       `json:"insights,omitempty"`
	Summary         string          `json:"summary,omitempty"`
	Recommendations []string        `json:"recommendations,omitempty"`
	RiskAssessment  *RiskAssessment `json:"risk_assessment,omitempty"`
	Error           string          `json:"error,omitempty"`
}

// FamilyMetrics holds the aggregate statistics computed for a family report.
type FamilyMetrics struct {
	TotalMembers          int      `json:"total_members"`
	TotalRecords          int      `json:"total_records"`
	TotalEvents           int      `json:"total_events"`
	MembersWithConditions int      `json:"members_with_conditions"`
	UniqueConditions      int      `json:"unique_conditions"`
	AverageAge            *float64 `json:"average_age,omitempty"`
}

// FamilyReport is the response of the family report operation.
type FamilyReport struct {
	Succeeded  bool                   `json:"success"`
	ReportData map[string]interface{} `json:"report_data,omitempty"`
	AISummary  string                 `json:"ai_summary,omitempty"`
	KeyMetrics *FamilyMetrics         `json:"key_metrics,omitempty"`
	Error      string                 `json:"error,omitempty"`
}
