package board

import (
	"container/heap"
	"fmt"
)

// MovePriority orders moves within a MoveList. Higher values are returned first.
type MovePriority int32

// MovePriorityFn assigns a priority to a move.
type MovePriorityFn func(m Move) MovePriority

// First returns a priority function that ranks `first` above everything else, deferring to fn
// otherwise. Used to splice a hash move or IID move to the front of the generator's output.
func First(first Move, fn MovePriorityFn) MovePriorityFn {
	return func(m Move) MovePriority {
		if first.Equals(m) {
			return 1<<31 - 1
		}
		return fn(m)
	}
}

// MoveList is a priority queue over a fixed move set, used to implement the staged move
// generator's lazy picker (spec §4.1): Next always returns the highest-priority remaining move.
type MoveList struct {
	h moveHeap
}

// NewMoveList builds a move list, scoring each move with fn.
func NewMoveList(moves []Move, fn MovePriorityFn) *MoveList {
	h := make(moveHeap, len(moves))
	for i, m := range moves {
		h[i] = elm{m: m, val: fn(m)}
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

// Next pops and returns the highest-priority remaining move.
func (ml *MoveList) Next() (Move, bool) {
	if ml.h.Len() == 0 {
		return Move{}, false
	}
	e := heap.Pop(&ml.h).(elm)
	return e.m, true
}

func (ml *MoveList) Size() int {
	return ml.h.Len()
}

func (ml *MoveList) String() string {
	if ml.h.Len() == 0 {
		return "[]"
	}
	return fmt.Sprintf("[top=%v size=%v]", ml.h[0].m, ml.h.Len())
}

type elm struct {
	m   Move
	val MovePriority
}

type moveHeap []elm

func (h moveHeap) Len() int            { return len(h) }
func (h moveHeap) Less(i, j int) bool  { return h[i].val > h[j].val }
func (h moveHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *moveHeap) Push(x interface{}) { *h = append(*h, x.(elm)) }

func (h *moveHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
