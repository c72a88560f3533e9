package scan

import (
	"strings"
	"sync"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"github.com/dolthub/swiss"
)

const LOCAL_TABLE_SIZE = 1024

// LocalTable is owned by a single worker and needs no locking. Its keys
// borrow the bytes of the chunk they were read from, so the chunk must
// outlive the table. Keys are only copied when merged into a SharedTable.
type LocalTable struct {
	m *swiss.Map[string, *Record]
}

func NewLocalTable() *LocalTable {
	return &LocalTable{
		m: swiss.NewMap[string, *Record](LOCAL_TABLE_SIZE),
	}
}

func (t *LocalTable) Add(key []byte, v float64) {
	k := bytesToString(key)
	if r, ok := t.m.Get(k); ok {
		r.Add(v)
		return
	}
	r := newRecord(v)
	t.m.Put(k, &r)
}

func (t *LocalTable) Get(key string) (Record, bool) {
	r, ok := t.m.Get(key)
	if !ok {
		return Record{}, false
	}
	return *r, true
}

func (t *LocalTable) Len() int {
	return t.m.Count()
}

func (t *LocalTable) Each(f func(key string, r Record)) {
	t.m.Iter(func(k string, r *Record) bool {
		f(k, *r)
		return false
	})
}

func bytesToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// SharedTable collects the records of every worker. Keys are spread over
// one or more shards, each guarded by its own mutex.
type SharedTable struct {
	shards []shard
}

type shard struct {
	mu      sync.Mutex
	records map[string]*Record
}

type entry struct {
	key string
	rec Record
}

func NewSharedTable(shards int) *SharedTable {
	if shards < 1 {
		shards = 1
	}
	st := &SharedTable{
		shards: make([]shard, shards),
	}
	for i := range st.shards {
		st.shards[i].records = make(map[string]*Record)
	}
	return st
}

// Merge folds a worker's local table into the shared one. Entries are
// grouped by shard before any lock is taken, so each critical section only
// runs the fold loop.
func (st *SharedTable) Merge(lt *LocalTable) {
	buckets := make([][]entry, len(st.shards))
	lt.Each(func(key string, r Record) {
		i := st.shardFor(key)
		buckets[i] = append(buckets[i], entry{key: key, rec: r})
	})

	for i, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		s := &st.shards[i]
		s.mu.Lock()
		for _, e := range bucket {
			if r, ok := s.records[e.key]; ok {
				r.Merge(e.rec)
				continue
			}
			// The local key points into a chunk buffer.
			rec := e.rec
			s.records[strings.Clone(e.key)] = &rec
		}
		s.mu.Unlock()
	}
}

func (st *SharedTable) Len() int {
	var n int
	for i := range st.shards {
		s := &st.shards[i]
		s.mu.Lock()
		n += len(s.records)
		s.mu.Unlock()
	}
	return n
}

// Snapshot copies every record out of the table.
func (st *SharedTable) Snapshot() map[string]Record {
	out := make(map[string]Record)
	for i := range st.shards {
		s := &st.shards[i]
		s.mu.Lock()
		for k, r := range s.records {
			out[k] = *r
		}
		s.mu.Unlock()
	}
	return out
}

func (st *SharedTable) shardFor(key string) int {
	if len(st.shards) == 1 {
		return 0
	}
	return int(xxhash.Sum64String(key) % uint64(len(st.shards)))
}
