package scan

// Record holds the running statistics for one key. Sum is only used to
// derive the mean.
type Record struct {
	Count uint64
	Min   float64
	Max   float64
	Sum   float64
}

func newRecord(v float64) Record {
	return Record{
		Count: 1,
		Min:   v,
		Max:   v,
		Sum:   v,
	}
}

func (r *Record) Add(v float64) {
	r.Count++
	r.Min = min(r.Min, v)
	r.Max = max(r.Max, v)
	r.Sum += v
}

// Merge folds o into r. The result does not depend on the order records
// are merged in.
func (r *Record) Merge(o Record) {
	r.Count += o.Count
	r.Min = min(r.Min, o.Min)
	r.Max = max(r.Max, o.Max)
	r.Sum += o.Sum
}

func (r Record) Mean() float64 {
	return r.Sum / float64(r.Count)
}
