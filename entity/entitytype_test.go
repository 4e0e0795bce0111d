package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellIndexRoundTrip(t *testing.T) {
	const size = int32(7)
	for i := int32(0); i < size*size; i++ {
		c := CellFromIndex(i, size)
		assert.Equal(t, i, c.Index(size))
		assert.True(t, c.In(size))
	}
	assert.False(t, Cell{X: -1, Y: 0}.In(size))
	assert.False(t, Cell{X: 0, Y: 7}.In(size))
}

func TestCellManhattan(t *testing.T) {
	assert.Equal(t, int32(0), Cell{X: 2, Y: 3}.Manhattan(Cell{X: 2, Y: 3}))
	assert.Equal(t, int32(7), Cell{X: 0, Y: 0}.Manhattan(Cell{X: 3, Y: 4}))
	assert.Equal(t, int32(7), Cell{X: 3, Y: 4}.Manhattan(Cell{X: 0, Y: 0}))
}

func TestTerrainPassable(t *testing.T) {
	assert.True(t, TerrainRoad.Passable())
	assert.True(t, TerrainHighway.Passable())
	assert.True(t, TerrainTrafficLight.Passable())
	assert.False(t, TerrainBuilding.Passable())
}

func TestCarStatusTerminal(t *testing.T) {
	assert.False(t, StatusActive.Terminal())
	assert.True(t, StatusArrived.Terminal())
	assert.True(t, StatusStuck.Terminal())
}
