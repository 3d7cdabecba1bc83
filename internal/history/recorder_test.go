package history

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/wetware/internal/component"
)

func snap(t float64, atp float64) Snapshot {
	return Snapshot{
		Time: t,
		Components: []ComponentSnapshot{{
			Name:    "power",
			State:   component.State{{Name: "atp_reserve", Value: atp}},
			Outputs: map[string]float64{"atp_out": atp / 2},
		}},
	}
}

func TestRecorder_AppendAndIndex(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	_, ok := r.Latest()
	assert.False(t, ok)

	r.Append(snap(0.1, 100))
	r.Append(snap(0.2, 110))

	require.Equal(t, 2, r.Len())
	first, ok := r.At(0)
	require.True(t, ok)
	assert.Equal(t, 0.1, first.Time)

	last, ok := r.Latest()
	require.True(t, ok)
	assert.Equal(t, 0.2, last.Time)

	_, ok = r.At(2)
	assert.False(t, ok)
	_, ok = r.At(-3)
	assert.False(t, ok)
}

func TestRecorder_Series(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.Append(snap(0.1, 100))
	r.Append(snap(0.2, 110))

	assert.Equal(t, []Point{{0.1, 100}, {0.2, 110}}, r.Series("power", "atp_reserve"))
	assert.Equal(t, []Point{{0.1, 50}, {0.2, 55}}, r.Series("power", "atp_out"))
	assert.Empty(t, r.Series("power", "missing"))
	assert.Empty(t, r.Series("liver", "atp_reserve"))
}

func TestRecorder_ConcurrentReaders(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			r.Append(snap(float64(i), float64(i)))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			r.Latest()
			r.Series("power", "atp_reserve")
		}
	}()
	wg.Wait()
	assert.Equal(t, 200, r.Len())
}
