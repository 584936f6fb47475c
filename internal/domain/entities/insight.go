package entities

// HealthTip is one tip parsed from a numbered or bulleted model reply.
type HealthTip struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Insight is a family-level observation derived from conditions and the
// model's free-text reply.
type Insight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// HealthCategory is a selectable tip category with its display metadata.
type HealthCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}
