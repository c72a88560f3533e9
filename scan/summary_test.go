package scan

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintSummary(t *testing.T) {
	res, err := New(WithWorkers(3)).Run(NewBytesSource([]byte("a;1.0\nb;2.0\nc;3.0\n")))
	require.NoError(t, err)

	var b bytes.Buffer
	PrintSummary(&b, res)
	out := b.String()
	assert.Contains(t, out, "Chunks")
	assert.Contains(t, out, "Merge")
	assert.Contains(t, out, "keys: 3")
}

func TestPrintSummaryNoWorkers(t *testing.T) {
	var b bytes.Buffer
	PrintSummary(&b, &Result{})
	assert.Empty(t, b.String())
}
