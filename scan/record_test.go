package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

func TestRecordAdd(t *testing.T) {
	r := newRecord(0.0)
	r.Add(99.9)
	r.Add(-99.9)

	assert.Equal(t, uint64(3), r.Count)
	assert.Equal(t, -99.9, r.Min)
	assert.Equal(t, 99.9, r.Max)
	assert.InDelta(t, 0.0, r.Mean(), 1e-9)
}

func TestRecordMergeIdentity(t *testing.T) {
	a := newRecord(1.5)
	a.Add(-2.5)
	b := newRecord(7.0)

	ab, ba := a, b
	ab.Merge(b)
	ba.Merge(a)
	assert.Equal(t, ab, ba)
	assert.Equal(t, uint64(3), ab.Count)
	assert.Equal(t, -2.5, ab.Min)
	assert.Equal(t, 7.0, ab.Max)
}

// Splitting observations arbitrarily and merging the parts in any order
// gives the same record as folding them one by one.
func TestRecordMergeAnyPartition(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for range 200 {
		n := 1 + rng.Intn(500)
		values := make([]float64, n)
		for i := range values {
			values[i] = float64(rng.Intn(1999)-999) / 10
		}

		want := newRecord(values[0])
		for _, v := range values[1:] {
			want.Add(v)
		}

		parts := splitRandomly(rng, values)
		rng.Shuffle(len(parts), func(i, j int) { parts[i], parts[j] = parts[j], parts[i] })

		got := parts[0]
		for _, p := range parts[1:] {
			got.Merge(p)
		}

		assert.Equal(t, want.Count, got.Count)
		assert.Equal(t, want.Min, got.Min)
		assert.Equal(t, want.Max, got.Max)
		assert.InDelta(t, want.Sum, got.Sum, 1e-6)
		assert.LessOrEqual(t, got.Min, got.Max)
	}
}

func splitRandomly(rng *rand.Rand, values []float64) []Record {
	var parts []Record
	for len(values) > 0 {
		n := 1 + rng.Intn(len(values))
		r := newRecord(values[0])
		for _, v := range values[1:n] {
			r.Add(v)
		}
		parts = append(parts, r)
		values = values[n:]
	}
	return parts
}
