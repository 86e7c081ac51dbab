package domain

type ScoredMaterial struct {
	Material     MaterialRecord     `json:"material"`
	OverallScore float64            `json:"overall_score"` // 0-100
	SubScores    map[string]float64 `json:"sub_scores"`    // 0-1 per dimension
	Warnings     []string           `json:"warnings,omitempty"`
}

type DebugRecommendation struct {
	MaterialID    string             `json:"material_id"`
	Name          string             `json:"name"`
	Retained      bool               `json:"retained"`
	FailedChecks  []string           `json:"failed_checks,omitempty"`
	SubScores     map[string]float64 `json:"sub_scores,omitempty"`
	Contributions map[string]float64 `json:"contributions,omitempty"` // weight * sub-score * 100
	OverallScore  float64            `json:"overall_score"`
	Warnings      []string           `json:"warnings,omitempty"`
}
