package scan

import "bytes"

// Aggregate folds every line of a line-aligned chunk into t and returns the
// number of rows read. A final line without a newline is still a row.
func Aggregate(chunk []byte, delim byte, t *LocalTable) (int, error) {
	var rows int
	for len(chunk) > 0 {
		line := chunk
		if i := bytes.IndexByte(chunk, '\n'); i >= 0 {
			line, chunk = chunk[:i], chunk[i+1:]
		} else {
			chunk = nil
		}

		key, temp, err := ParseRow(line, delim)
		if err != nil {
			return rows, err
		}
		t.Add(key, temp)
		rows++
	}
	return rows, nil
}
