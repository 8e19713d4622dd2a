package repscan

import "strings"

type Status string

const (
	StatusBlocked Status = "blocked"
	StatusReview  Status = "review"
	StatusGood    Status = "good"
	StatusUnknown Status = "unknown"
)

// Classification is the final policy decision for one URL.
type Classification struct {
	Status Status `json:"status"`
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

// Keyword signals, checked via case-insensitive substring containment
// against the joined category text. The lists and their priority order
// (blocked > review > good) are policy and must not be reordered.
var blockedSignals = []string{
	"adult", "porn", "sex", "nsfw", "gore", "violence",
	"malware", "phishing", "botnet", "spam", "hacking",
}

var reviewSignals = []string{
	"games", "game", "social", "social networking", "chat",
	"streaming", "video", "entertainment", "proxy", "vpn",
}

var goodSignals = []string{
	"education", "educational", "reference", "academic",
	"business", "productivity", "search engines",
}

// Classify combines zero, one, or two verdict fragments into a final
// classification. Pure function: no I/O, inputs are not mutated.
//
// The signal text is built from fragA.Category, fragB.Category, and
// fragB.Threat in that fixed order, skipping absent or empty values. A
// strictly negative score from service A forces blocked regardless of any
// keyword match; service B carries no score, so only fragment A is checked.
func Classify(rawurl string, fragA, fragB *VerdictFragment) Classification {
	var parts []string
	if fragA != nil && fragA.Category != nil && *fragA.Category != "" {
		parts = append(parts, *fragA.Category)
	}
	if fragB != nil && fragB.Category != nil && *fragB.Category != "" {
		parts = append(parts, *fragB.Category)
	}
	if fragB != nil && fragB.Threat != nil && *fragB.Threat != "" {
		parts = append(parts, *fragB.Threat)
	}
	joined := strings.ToLower(strings.Join(parts, " "))

	c := Classification{Status: StatusUnknown, Label: "Unsure", Reason: "No reputation signals matched."}
	switch {
	case containsAny(joined, blockedSignals):
		c = Classification{Status: StatusBlocked, Label: "Blocked", Reason: "Matched a blocked-category signal."}
	case containsAny(joined, reviewSignals):
		c = Classification{Status: StatusReview, Label: "Needs Review", Reason: "Matched a review-category signal."}
	case containsAny(joined, goodSignals):
		c = Classification{Status: StatusGood, Label: "Good", Reason: "Matched a good-category signal."}
	}

	// Negative reputation score always wins, whatever the keywords said.
	if fragA != nil && fragA.Score != nil && *fragA.Score < 0 {
		c = Classification{Status: StatusBlocked, Label: "Blocked", Reason: "Upstream reported a negative reputation score."}
	}

	return c
}

func containsAny(text string, signals []string) bool {
	for _, s := range signals {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
