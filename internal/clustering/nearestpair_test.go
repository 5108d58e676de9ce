package clustering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNearestTwo_Empty(t *testing.T) {
	got := NearestTwo([]int{}, func(int) float64 { return 0 })
	assert.Empty(t, got)
}

func TestNearestTwo_SingleCandidate(t *testing.T) {
	got := NearestTwo([]int{7}, func(c int) float64 { return float64(c) })
	assert.Equal(t, []Pair[int]{{7, 7}}, got)
}

func TestNearestTwo_OrdersAscending(t *testing.T) {
	dist := map[int]float64{1: 9, 2: 1, 3: 5, 4: 2}
	got := NearestTwo([]int{1, 2, 3, 4}, func(c int) float64 { return dist[c] })
	assert.Equal(t, []Pair[int]{{2, 1}, {4, 2}}, got)
}

func TestNearestTwo_TiesBreakByFirstSeen(t *testing.T) {
	dist := map[int]float64{1: 3, 2: 3, 3: 3}
	got := NearestTwo([]int{1, 2, 3}, func(c int) float64 { return dist[c] })
	assert.Equal(t, []Pair[int]{{1, 3}, {2, 3}}, got)
}
