package clustering

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/streamfit/streamfit/internal/space"
)

func TestModel_NeighborhoodEmpty(t *testing.T) {
	m := NewModel[[]float64](space.Euclidean())
	assert.Empty(t, m.Neighborhood([]float64{0, 0}))
}

func TestModel_NeighborhoodOrdersByNormalizedDistance(t *testing.T) {
	m := NewModel[[]float64](space.Euclidean())
	far := m.AddBall(NewBall([]float64{0, 0}, 100, 1), nil)
	near := m.AddBall(NewBall([]float64{10, 0}, 1, 1), nil)

	got := m.Neighborhood([]float64{10, 1})
	assert.Len(t, got, 2)
	assert.Equal(t, near, got[0].Candidate)
	assert.Equal(t, far, got[1].Candidate)
}

func TestLoad_RebuildsNeighborsFromScratch(t *testing.T) {
	balls := []Ball[[]float64]{
		NewBall([]float64{0, 0}, 1, 1),
		NewBall([]float64{1, 0}, 1, 1),
		NewBall([]float64{10, 0}, 1, 1),
	}

	m := Load(space.Euclidean(), balls)
	assert.Equal(t, 3, m.Len())

	refs := m.graph.Iter()
	neighbors := m.graph.Neighbors(refs[0])
	assert.Contains(t, neighbors, refs[1])
}
