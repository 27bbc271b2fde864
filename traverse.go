package isochrones

import (
	"container/heap"
)

// reachLabel maps a vertex to the minimal cumulative cost found from one
// start vertex. Vertices that were not reached within the horizon are absent.
type reachLabel map[VertexID]float64

// traverse runs a bounded label-setting search (Dijkstra) from the given
// start vertex. Expansion stops once the cheapest frontier entry exceeds
// maxCost, so vertices beyond the horizon never enter the label. A start
// vertex unknown to the index yields an empty label.
//
// The search uses lazy decrease-key: improved costs are pushed as duplicate
// heap entries and stale ones are skipped on pop.
func (index *graphIndex) traverse(start VertexID, maxCost float64) reachLabel {
	labels := make(reachLabel)
	if !index.hasVertex(start) {
		return labels
	}
	settled := make(map[VertexID]bool)
	frontier := &costHeap{{vertex: start, cost: 0}}
	heap.Init(frontier)
	labels[start] = 0
	for frontier.Len() > 0 {
		item := heap.Pop(frontier).(costItem)
		if settled[item.vertex] {
			continue
		}
		if item.cost > maxCost {
			break
		}
		settled[item.vertex] = true
		for _, out := range index.adjacency[item.vertex] {
			nextCost := item.cost + out.cost
			if nextCost > maxCost {
				continue
			}
			if known, ok := labels[out.head]; ok && known <= nextCost {
				continue
			}
			labels[out.head] = nextCost
			heap.Push(frontier, costItem{vertex: out.head, cost: nextCost})
		}
	}
	return labels
}

type costItem struct {
	vertex VertexID
	cost   float64
}

// costHeap is a min-heap of frontier entries ordered by cumulative cost
type costHeap []costItem

func (h costHeap) Len() int { return len(h) }

func (h costHeap) Less(i, j int) bool { return h[i].cost < h[j].cost }

func (h costHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *costHeap) Push(x interface{}) { *h = append(*h, x.(costItem)) }

func (h *costHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
