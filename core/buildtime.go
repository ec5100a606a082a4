package core

import (
	"math"

	"github.com/huangsam/testaudit/internal/artifact"
	"github.com/huangsam/testaudit/schema"
)

// buildTimeSteps maps the lower bound of each build time bracket (seconds) to its score.
// Brackets are checked from slowest to fastest.
var buildTimeSteps = []struct {
	minSeconds float64
	score      float64
}{
	{12.0, 0.00},
	{10.0, 0.20},
	{9.0, 0.30},
	{8.0, 0.40},
	{6.0, 0.60},
	{4.0, 0.80},
	{2.0, 0.85},
	{1.5, 0.90},
	{1.0, 0.95},
	{0.1, 1.00},
}

// BuildTimeScore converts a build duration into a compliance score in [0,1].
// Faster builds score higher; anything from 12 seconds up and anything under 0.1 seconds scores 0.
func BuildTimeScore(seconds float64) float64 {
	if math.IsNaN(seconds) {
		return 0
	}
	for _, step := range buildTimeSteps {
		if seconds >= step.minSeconds {
			return step.score
		}
	}
	return 0
}

// BuildTimeScoreFromLog scores a raw value taken from a build log.
// A value that was not found or cannot be parsed scores 0.
func BuildTimeScoreFromLog(value string, found bool) schema.BuildTimeResult {
	result := schema.BuildTimeResult{Raw: value, Found: found}
	if !found {
		return result
	}
	seconds, err := artifact.ParseBuildSeconds(value)
	if err != nil {
		return result
	}
	result.Seconds = seconds
	result.Score = BuildTimeScore(seconds)
	return result
}
