package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	var tests = []struct {
		name  string
		chunk string
		rows  int
		keys  int
	}{
		{"empty", "", 0, 0},
		{"single", "a;1.0\n", 1, 1},
		{"no trailing newline", "a;1.0\nb;2.0", 2, 2},
		{"repeated key", "a;1.0\na;2.0\na;-3.0\n", 3, 1},
		{"non-ascii", "Chișinău;4.2\nİzmir;-0.5\n", 2, 2},
	}

	for _, tt := range tests {
		lt := NewLocalTable()
		rows, err := Aggregate([]byte(tt.chunk), ';', lt)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.rows, rows, tt.name)
		assert.Equal(t, tt.keys, lt.Len(), tt.name)
	}
}

func TestAggregateFoldsValues(t *testing.T) {
	lt := NewLocalTable()
	_, err := Aggregate([]byte("Paris;12.3\nLondon;-1.0\nParis;15.0\nParis;13.8\n"), ';', lt)
	require.NoError(t, err)

	paris, ok := lt.Get("Paris")
	require.True(t, ok)
	assert.Equal(t, uint64(3), paris.Count)
	assert.Equal(t, 12.3, paris.Min)
	assert.Equal(t, 15.0, paris.Max)
	assert.InDelta(t, 41.1, paris.Sum, 1e-9)

	london, ok := lt.Get("London")
	require.True(t, ok)
	assert.Equal(t, Record{Count: 1, Min: -1, Max: -1, Sum: -1}, london)

	_, ok = lt.Get("Berlin")
	assert.False(t, ok)
}

func TestAggregateCustomDelimiter(t *testing.T) {
	lt := NewLocalTable()
	rows, err := Aggregate([]byte("a,b|1.0\n"), '|', lt)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	_, ok := lt.Get("a,b")
	assert.True(t, ok)
}

func TestAggregateErrors(t *testing.T) {
	var tests = []struct {
		chunk string
		err   error
	}{
		{"a;1.0\nb\n", ErrNoDelimiter},
		{"a;1.0\n\nb;2.0\n", ErrNoDelimiter},
		{"a;1.0\nb;1.23\n", ErrBadValue},
		{"a;x.0\n", ErrBadValue},
	}

	for _, tt := range tests {
		_, err := Aggregate([]byte(tt.chunk), ';', NewLocalTable())
		assert.ErrorIs(t, err, tt.err, tt.chunk)
	}
}

func BenchmarkAggregate(b *testing.B) {
	chunk := []byte("Hamburg;12.0\nBulawayo;8.9\nPalembang;38.8\nSt. John's;15.2\nCracow;12.6\n")
	lt := NewLocalTable()

	b.SetBytes(int64(len(chunk)))
	b.ResetTimer()
	for range b.N {
		if _, err := Aggregate(chunk, ';', lt); err != nil {
			b.Fatal(err)
		}
	}
}
