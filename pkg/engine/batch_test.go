package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateBatch(t *testing.T) {
	assessments := []*Assessment{
		referenceAssessment(t),
		{Event: "quiet day"},
		referenceAssessment(t),
	}

	results, err := EvaluateBatch(context.Background(), assessments, DefaultWeights(), DefaultThresholds())
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.InDelta(t, 6.30, results[0].Summary.Composite, 0.001)
	assert.NotEmpty(t, results[0].Alerts)

	assert.Equal(t, 0.0, results[1].Summary.Composite)
	assert.Empty(t, results[1].Alerts)

	// Same input, same output, regardless of fan-out.
	assert.Equal(t, results[0], results[2])
}

func TestEvaluateBatch_Empty(t *testing.T) {
	results, err := EvaluateBatch(context.Background(), nil, DefaultWeights(), DefaultThresholds())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestEvaluateBatch_ManyInputsKeepOrder(t *testing.T) {
	var assessments []*Assessment
	for i := 0; i < 50; i++ {
		v := float64(i % 11)
		assessments = append(assessments, &Assessment{
			Scores: map[string]ScoreSet{"soram": {"S": &v}},
		})
	}

	results, err := EvaluateBatch(context.Background(), assessments, DefaultWeights(), DefaultThresholds())
	require.NoError(t, err)
	require.Len(t, results, 50)
	for i, r := range results {
		want := round2(float64(i%11) * 0.25)
		assert.InDelta(t, want, r.Summary.Composite, 0.001, "index %d", i)
	}
}

func TestEvaluateBatch_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := EvaluateBatch(ctx, []*Assessment{{}, {}}, DefaultWeights(), DefaultThresholds())
	assert.Error(t, err)
}
