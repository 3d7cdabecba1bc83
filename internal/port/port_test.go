package port

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompatible(t *testing.T) {
	t.Parallel()

	kinds := []Kind{Power, Signal, Metabolite, Mechanical}
	dirs := []Direction{In, Out}

	// Exhaustively check every pairing of kind and direction.
	for _, ka := range kinds {
		for _, kb := range kinds {
			for _, da := range dirs {
				for _, db := range dirs {
					a := New("a", ka, da)
					b := New("b", kb, db)
					want := ka == kb && da != db
					assert.Equal(t, want, Compatible(a, b), "%s vs %s", a, b)
					assert.Equal(t, Compatible(a, b), Compatible(b, a), "compatibility must be symmetric")
				}
			}
		}
	}
}

func TestPort_SetKeepsValueFinite(t *testing.T) {
	t.Parallel()

	p := NewIn("glucose_in", Metabolite)
	p.Set(10)
	assert.Equal(t, 10.0, p.Value())

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		p.Set(v)
		assert.Equal(t, 0.0, p.Value())
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	k, err := ParseKind("METABOLITE")
	require.NoError(t, err)
	assert.Equal(t, Metabolite, k)
	assert.Equal(t, "metabolite", k.String())

	_, err = ParseKind("plasma")
	require.Error(t, err)
}
