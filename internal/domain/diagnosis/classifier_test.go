package diagnosis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeConfidence(t *testing.T) {
	assert.Equal(t, 0.87, NormalizeConfidence(0.87))
	assert.Equal(t, 0.87, NormalizeConfidence(87))
	assert.Equal(t, 1.0, NormalizeConfidence(1))
	assert.Equal(t, 1.0, NormalizeConfidence(250))
	assert.Equal(t, 0.0, NormalizeConfidence(-3))
}

func TestClassify_ExactTableWins(t *testing.T) {
	info := Classify("Tomato___Late_blight", 0.1)

	// An exact key resolves from the table regardless of confidence.
	assert.Equal(t, "fungal", info.Type)
	assert.Equal(t, "High", info.Severity)
	assert.NotEmpty(t, info.Fertilizer)
	require.NotEmpty(t, info.Treatment)
}

func TestClassify_HealthyTableEntry(t *testing.T) {
	info := Classify("Apple___healthy", 0.99)
	assert.Equal(t, "healthy", info.Type)
	assert.Equal(t, "None", info.Severity)
}

func TestClassify_FallbackOrder(t *testing.T) {
	t.Run("healthy beats fungal keywords", func(t *testing.T) {
		// Contains "spot" but "healthy" is checked first.
		info := Classify("Grape healthy spot check", 0.95)
		assert.Equal(t, "healthy", info.Type)
		assert.Equal(t, "None", info.Severity)
	})

	t.Run("bacterial beats fungal keywords", func(t *testing.T) {
		info := Classify("Peach bacterial spot", 0.95)
		assert.Equal(t, "bacterial", info.Type)
		assert.Equal(t, "High", info.Severity)
	})

	t.Run("virus", func(t *testing.T) {
		info := Classify("Squash mosaic virus", 0.85)
		assert.Equal(t, "viral", info.Type)
		assert.Equal(t, "High", info.Severity)
	})

	t.Run("fungal keywords", func(t *testing.T) {
		for _, label := range []string{
			"Wheat leaf rust",
			"Potato early blight",
			"Grape black spot",
			"Strawberry scorch",
			"Pear scab",
		} {
			info := Classify(label, 0.95)
			assert.Equal(t, "fungal", info.Type, label)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		info := Classify("Something never seen", 0.99)
		assert.Equal(t, "unknown", info.Type)
		assert.Equal(t, "Unknown", info.Severity)
		assert.Contains(t, info.Treatment[0], "expert")
	})
}

func TestClassify_SeverityThresholds(t *testing.T) {
	// Bacterial and fungal flip at 0.9, viral at 0.8. The threshold
	// itself is Medium.
	assert.Equal(t, "Medium", Classify("x bacterial x", 0.9).Severity)
	assert.Equal(t, "High", Classify("x bacterial x", 0.91).Severity)

	assert.Equal(t, "Medium", Classify("x virus x", 0.8).Severity)
	assert.Equal(t, "High", Classify("x virus x", 0.81).Severity)

	assert.Equal(t, "Medium", Classify("x rust x", 0.9).Severity)
	assert.Equal(t, "High", Classify("x rust x", 0.91).Severity)
}

func TestLookup_CaseSensitiveKeys(t *testing.T) {
	_, ok := Lookup("tomato___late_blight")
	assert.False(t, ok, "table keys are exact, lowercased labels fall through")
}
