package router

import (
	"container/heap"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
)

// queueEntry is one frontier cell. index is its slot in the heap.
type queueEntry struct {
	cell  grid.Cell
	f, h  int
	seq   uint64
	index int
}

// entryHeap implements heap.Interface over queue entries.
type entryHeap []*queueEntry

func (eh entryHeap) Len() int { return len(eh) }

func (eh entryHeap) Less(i, j int) bool {
	a, b := eh[i], eh[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (eh entryHeap) Swap(i, j int) {
	eh[i], eh[j] = eh[j], eh[i]
	eh[i].index = i
	eh[j].index = j
}

func (eh *entryHeap) Push(x interface{}) {
	e := x.(*queueEntry)
	e.index = len(*eh)
	*eh = append(*eh, e)
}

func (eh *entryHeap) Pop() interface{} {
	old := *eh
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*eh = old[:n-1]
	return e
}

// frontier is a min-priority queue of cells supporting decrease-key.
// Each cell is present at most once.
type frontier struct {
	heap  entryHeap
	byKey map[grid.Cell]*queueEntry
	seq   uint64
}

func newFrontier() *frontier {
	return &frontier{byKey: make(map[grid.Cell]*queueEntry)}
}

func (q *frontier) Len() int {
	return q.heap.Len()
}

// Upsert queues c with priority (f, h), or lowers the priority of an already
// queued c. A worse priority for a queued cell is ignored. The insertion
// sequence of a cell is fixed when it is first queued.
func (q *frontier) Upsert(c grid.Cell, f, h int) {
	if e, ok := q.byKey[c]; ok {
		if f < e.f || (f == e.f && h < e.h) {
			e.f, e.h = f, h
			heap.Fix(&q.heap, e.index)
		}
		return
	}
	q.seq++
	e := &queueEntry{cell: c, f: f, h: h, seq: q.seq}
	q.byKey[c] = e
	heap.Push(&q.heap, e)
}

// Pop removes and returns the lowest-priority cell.
func (q *frontier) Pop() grid.Cell {
	e := heap.Pop(&q.heap).(*queueEntry)
	delete(q.byKey, e.cell)
	return e.cell
}
