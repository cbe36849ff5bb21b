package analysis

import (
	"fmt"

	"fieldscout/pkg/models"
)

// insightRule pairs a predicate with the insight it produces. Rules are
// evaluated in order and the first match wins, so exactly one insight is
// emitted per analysis.
type insightRule struct {
	match func(c Classification) bool
	build func(c Classification) models.Insight
}

var insightRules = []insightRule{
	{
		match: func(c Classification) bool { return c.DisplayIndex < 0.3 },
		build: func(c Classification) models.Insight {
			return models.Insight{
				Title: "Critical Vegetation Stress",
				Description: fmt.Sprintf(
					"Extremely low healthy vegetation index detected (%v). This suggests severe crop failure or dormant areas.",
					c.DisplayIndex),
				Severity: models.SeverityHigh,
				Icon:     "AlertTriangle",
				Recommendations: []string{
					"Immediate field inspection",
					"Review local irrigation supply",
					"Check for soil toxicity",
				},
			}
		},
	},
	{
		match: func(c Classification) bool { return c.AffectedArea > 20 },
		build: func(c Classification) models.Insight {
			return models.Insight{
				Title: "Abnormal Pattern Detected",
				Description: fmt.Sprintf(
					"Automated scan identified %v%% of the area as stressed. Pattern suggests potential pest or nutrient deficiency.",
					c.AffectedArea),
				Severity: models.SeverityMedium,
				Icon:     "Bug",
				Recommendations: []string{
					"Targeted soil sampling",
					"Apply micro-nutrient boost",
					"Monitor adjacent zones",
				},
			}
		},
	},
	{
		match: func(Classification) bool { return true },
		build: func(Classification) models.Insight {
			return models.Insight{
				Title:       "Optimal Growth Context",
				Description: "Consistent healthy vegetation profile across the majority of the field.",
				Severity:    models.SeverityLow,
				Icon:        "CheckCircle2",
				Recommendations: []string{
					"Continue current irrigation",
					"Next scan in 5 days",
				},
			}
		},
	},
}

// GenerateInsight produces the single contextual insight for a classification.
func GenerateInsight(c Classification) models.Insight {
	for _, rule := range insightRules {
		if rule.match(c) {
			return rule.build(c)
		}
	}
	// Unreachable: the last rule always matches.
	return models.Insight{}
}
