package repscan

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		fragA *VerdictFragment
		fragB *VerdictFragment
		want  Classification
	}{
		{
			name: "both fragments absent",
			want: Classification{Status: StatusUnknown, Label: "Unsure", Reason: "No reputation signals matched."},
		},
		{
			name:  "phishing category from service A",
			fragA: &VerdictFragment{Category: strPtr("phishing campaign")},
			want:  Classification{Status: StatusBlocked, Label: "Blocked", Reason: "Matched a blocked-category signal."},
		},
		{
			name:  "games category from service B",
			fragB: &VerdictFragment{Category: strPtr("Online Games")},
			want:  Classification{Status: StatusReview, Label: "Needs Review", Reason: "Matched a review-category signal."},
		},
		{
			name:  "business category from service A",
			fragA: &VerdictFragment{Category: strPtr("Business/Economy")},
			fragB: &VerdictFragment{},
			want:  Classification{Status: StatusGood, Label: "Good", Reason: "Matched a good-category signal."},
		},
		{
			name:  "blocked dominates good",
			fragA: &VerdictFragment{Category: strPtr("education")},
			fragB: &VerdictFragment{Threat: strPtr("malware")},
			want:  Classification{Status: StatusBlocked, Label: "Blocked", Reason: "Matched a blocked-category signal."},
		},
		{
			name:  "review dominates good",
			fragA: &VerdictFragment{Category: strPtr("educational streaming")},
			want:  Classification{Status: StatusReview, Label: "Needs Review", Reason: "Matched a review-category signal."},
		},
		{
			name:  "threat level alone can classify",
			fragB: &VerdictFragment{Threat: strPtr("botnet c2")},
			want:  Classification{Status: StatusBlocked, Label: "Blocked", Reason: "Matched a blocked-category signal."},
		},
		{
			name:  "matching is case-insensitive",
			fragA: &VerdictFragment{Category: strPtr("PHISHING")},
			want:  Classification{Status: StatusBlocked, Label: "Blocked", Reason: "Matched a blocked-category signal."},
		},
		{
			name:  "empty category strings are ignored",
			fragA: &VerdictFragment{Category: strPtr("")},
			fragB: &VerdictFragment{Category: strPtr(""), Threat: strPtr("")},
			want:  Classification{Status: StatusUnknown, Label: "Unsure", Reason: "No reputation signals matched."},
		},
		{
			// Substring containment is the documented policy: "bizchat"
			// matches the "chat" review signal.
			name:  "substring match inside a larger word",
			fragA: &VerdictFragment{Category: strPtr("bizchat")},
			want:  Classification{Status: StatusReview, Label: "Needs Review", Reason: "Matched a review-category signal."},
		},
		{
			name:  "negative score overrides with no keyword match",
			fragA: &VerdictFragment{Score: numPtr(-1)},
			want:  Classification{Status: StatusBlocked, Label: "Blocked", Reason: "Upstream reported a negative reputation score."},
		},
		{
			name:  "negative score overrides a good match",
			fragA: &VerdictFragment{Category: strPtr("education"), Score: numPtr(-0.5)},
			want:  Classification{Status: StatusBlocked, Label: "Blocked", Reason: "Upstream reported a negative reputation score."},
		},
		{
			name:  "zero score does not trigger the override",
			fragA: &VerdictFragment{Score: numPtr(0)},
			want:  Classification{Status: StatusUnknown, Label: "Unsure", Reason: "No reputation signals matched."},
		},
		{
			name:  "positive score does not trigger the override",
			fragA: &VerdictFragment{Category: strPtr("reference"), Score: numPtr(42)},
			want:  Classification{Status: StatusGood, Label: "Good", Reason: "Matched a good-category signal."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("https://example.com", tt.fragA, tt.fragB)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Classify mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifyDoesNotMutateFragments(t *testing.T) {
	fragA := &VerdictFragment{Category: strPtr("malware"), Score: numPtr(3)}
	fragB := &VerdictFragment{Category: strPtr("games"), Threat: strPtr("low")}

	Classify("https://example.com", fragA, fragB)

	if *fragA.Category != "malware" || *fragA.Score != 3 {
		t.Errorf("fragment A mutated: %+v", fragA)
	}
	if *fragB.Category != "games" || *fragB.Threat != "low" {
		t.Errorf("fragment B mutated: %+v", fragB)
	}
}
