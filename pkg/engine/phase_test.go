package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectPhase_Dominant(t *testing.T) {
	s := ScoreSet{
		"T": score(8), "R": score(3), "A": score(6),
		"P": score(7), "N": score(2),
	}
	assert.Equal(t, "T — TENSION BUILDING", SelectPhase(s))
}

func TestSelectPhase_TieBreakRegistryOrder(t *testing.T) {
	// R and P tied at the max: R is declared earlier and must win,
	// on every call.
	s := ScoreSet{
		"T": score(2), "R": score(7), "A": score(5),
		"P": score(7), "N": score(1),
	}
	for i := 0; i < 20; i++ {
		assert.Equal(t, "R — RALLY PHASE", SelectPhase(s))
	}
}

func TestSelectPhase_Empty(t *testing.T) {
	assert.Empty(t, SelectPhase(nil))
	assert.Empty(t, SelectPhase(ScoreSet{}))
}

func TestSelectPhase_AllNil(t *testing.T) {
	s := ScoreSet{"T": nil, "R": nil, "A": nil, "P": nil, "N": nil}
	assert.Empty(t, SelectPhase(s))
}

func TestSelectPhase_AllZero(t *testing.T) {
	s := ScoreSet{
		"T": score(0), "R": score(0), "A": score(0),
		"P": score(0), "N": score(0),
	}
	assert.Empty(t, SelectPhase(s))
}

func TestSelectPhase_UnknownAxesIgnored(t *testing.T) {
	s := ScoreSet{"X": score(10), "N": score(4)}
	assert.Equal(t, "N — NORMALISATION UNDERWAY", SelectPhase(s))
}

func TestSelectPhase_SingleAxis(t *testing.T) {
	s := ScoreSet{"P": score(5)}
	assert.Equal(t, "P — POLARISATION ACTIVE", SelectPhase(s))
}
