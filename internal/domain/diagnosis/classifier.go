package diagnosis

import "strings"

// NormalizeConfidence maps any inbound confidence to the canonical 0–1
// fraction. Upstream sometimes reports percentages; anything above 1 is
// treated as one.
func NormalizeConfidence(c float64) float64 {
	if c > 1 {
		c = c / 100
	}
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

var fungalKeywords = []string{"rust", "blight", "spot", "scorch", "scab"}

// Classify resolves a disease label and 0–1 confidence to a display
// record. Exact table keys win; otherwise ordered substring predicates
// over the lowercased label, first match wins. Unknown labels degrade
// to a consult-expert record, never an error.
func Classify(label string, confidence float64) Info {
	if info, ok := Lookup(label); ok {
		return info
	}

	lower := strings.ToLower(label)

	switch {
	case strings.Contains(lower, "healthy"):
		return Info{
			Type:       "healthy",
			Severity:   "None",
			Fertilizer: "Balanced NPK 10-10-10",
			Treatment: []string{
				"Crop appears healthy.",
				"Maintain regular irrigation and fertilization.",
			},
		}

	case strings.Contains(lower, "bacterial"):
		return Info{
			Type:       "bacterial",
			Severity:   severityAbove(confidence, 0.9),
			Fertilizer: "NPK 10-10-10",
			Treatment: []string{
				"Apply copper-based bactericide.",
				"Remove infected leaves.",
				"Avoid overhead irrigation.",
			},
		}

	case strings.Contains(lower, "virus"):
		return Info{
			Type:       "viral",
			Severity:   severityAbove(confidence, 0.8),
			Fertilizer: "Balanced NPK + Micronutrients",
			Treatment: []string{
				"Remove infected plants immediately.",
				"Control whiteflies using insecticides.",
				"Use virus-resistant varieties.",
			},
		}

	case containsAny(lower, fungalKeywords):
		return Info{
			Type:       "fungal",
			Severity:   severityAbove(confidence, 0.9),
			Fertilizer: "NPK 10-10-10",
			Treatment: []string{
				"Apply a broad-spectrum fungicide such as Mancozeb.",
				"Remove infected leaves.",
				"Improve air circulation.",
			},
		}
	}

	return Info{
		Type:       "unknown",
		Severity:   "Unknown",
		Fertilizer: "Balanced NPK",
		Treatment: []string{
			"Consult a local agricultural expert.",
			"Monitor the crop for spreading symptoms.",
		},
	}
}

func severityAbove(confidence, threshold float64) string {
	if confidence > threshold {
		return "High"
	}
	return "Medium"
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
