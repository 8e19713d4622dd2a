package repscan

// VerdictFragment is a single upstream service's normalized partial verdict
// for one URL. A nil fragment means the service produced no data (disabled
// endpoint, transport failure, or non-2xx response).
type VerdictFragment struct {
	Category *string `json:"category"`
	// Score is only populated by service A, Threat only by service B.
	Score  *float64       `json:"score,omitempty"`
	Threat *string        `json:"threat,omitempty"`
	Raw    map[string]any `json:"raw,omitempty"`
}

// Upstream schemas are not stable; each logical field is resolved from an
// ordered candidate key list, first hit wins. All schema assumptions live
// here so a vendor change never touches the classifier.
var (
	categoryKeys = []string{"category", "category_name"}
	scoreKeys    = []string{"score", "risk_score"}
	threatKeys   = []string{"threat", "threat_type"}
)

func pickString(body map[string]any, keys []string) *string {
	for _, k := range keys {
		if s, ok := body[k].(string); ok && s != "" {
			return &s
		}
	}
	return nil
}

func pickNumber(body map[string]any, keys []string) *float64 {
	for _, k := range keys {
		if n, ok := body[k].(float64); ok {
			return &n
		}
	}
	return nil
}
