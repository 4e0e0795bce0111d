package city_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/gridcity-sim/entity"
	"github.com/tsinghua-fib-lab/gridcity-sim/entity/city"
)

func baseCost(t entity.TerrainType) float64 {
	switch t {
	case entity.TerrainRoad:
		return 1.0
	case entity.TerrainHighway:
		return 0.5
	case entity.TerrainTrafficLight:
		return 1.5
	default:
		return entity.Infinity
	}
}

func TestGenerate(t *testing.T) {
	const size = int32(20)
	g := city.Generate(size, 42)
	require.Equal(t, size, g.Size())

	buildings := 0
	highways := 0
	lights := 0
	for y := int32(0); y < size; y++ {
		for x := int32(0); x < size; x++ {
			switch g.TerrainOf(entity.Cell{X: x, Y: y}) {
			case entity.TerrainBuilding:
				buildings++
			case entity.TerrainHighway:
				highways++
			case entity.TerrainTrafficLight:
				lights++
			}
		}
	}
	// ~15% buildings before highways and the border carve some back out
	assert.Greater(t, buildings, 0)
	assert.Less(t, buildings, int(float64(size*size)*0.15)+1)
	assert.Greater(t, highways, 0)
	assert.Greater(t, lights, 0)

	// the outer border is always clear road
	for i := int32(0); i < size; i++ {
		assert.Equal(t, entity.TerrainRoad, g.TerrainOf(entity.Cell{X: i, Y: 0}))
		assert.Equal(t, entity.TerrainRoad, g.TerrainOf(entity.Cell{X: i, Y: size - 1}))
		assert.Equal(t, entity.TerrainRoad, g.TerrainOf(entity.Cell{X: 0, Y: i}))
		assert.Equal(t, entity.TerrainRoad, g.TerrainOf(entity.Cell{X: size - 1, Y: i}))
	}

	// interior of the horizontal highway row is highway or traffic light
	row := size / 4
	for x := int32(1); x < size-1; x++ {
		tt := g.TerrainOf(entity.Cell{X: x, Y: row})
		assert.Contains(t, []entity.TerrainType{entity.TerrainHighway, entity.TerrainTrafficLight}, tt)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := city.Generate(16, 7)
	b := city.Generate(16, 7)
	for i := int32(0); i < 16*16; i++ {
		c := entity.CellFromIndex(i, 16)
		assert.Equal(t, a.TerrainOf(c), b.TerrainOf(c))
	}
}

func TestValidCellsExcludeBuildings(t *testing.T) {
	g := city.Generate(12, 3)
	for _, c := range g.ValidCells() {
		assert.True(t, g.TerrainOf(c).Passable())
	}
}

func TestBuildCongestion(t *testing.T) {
	positions := []entity.Cell{{X: 3, Y: 3}, {X: 3, Y: 3}, {X: 1, Y: 2}}
	m := city.BuildCongestion(5, positions)

	assert.Equal(t, int32(2), m.Count(entity.Cell{X: 3, Y: 3}))
	assert.Equal(t, int32(1), m.Count(entity.Cell{X: 1, Y: 2}))
	assert.Equal(t, int32(0), m.Count(entity.Cell{X: 0, Y: 0}))
	// sum over all cells equals the number of supplied positions
	assert.Equal(t, int32(len(positions)), m.Total())
}

func TestBuildCongestionEmpty(t *testing.T) {
	// zero active cars is a normal condition, not an error
	m := city.BuildCongestion(5, nil)
	assert.Equal(t, int32(0), m.Total())
}

func TestBuildCostGrid(t *testing.T) {
	const size = int32(5)
	terrain := make([]entity.TerrainType, size*size)
	terrain[entity.Cell{X: 2, Y: 2}.Index(size)] = entity.TerrainBuilding
	terrain[entity.Cell{X: 1, Y: 0}.Index(size)] = entity.TerrainHighway
	g := city.NewGrid(size, terrain)

	cong := city.BuildCongestion(size, []entity.Cell{
		{X: 3, Y: 3}, {X: 3, Y: 3},
		{X: 2, Y: 2}, // even an occupied building stays impassable
	})
	grid := city.BuildCostGrid(g, baseCost, 0.5, cong)

	assert.Equal(t, 1.0, grid.Cost(entity.Cell{X: 0, Y: 0}))
	assert.Equal(t, 0.5, grid.Cost(entity.Cell{X: 1, Y: 0}))
	// base 1.0 + 0.5 * 2 cars
	assert.Equal(t, 2.0, grid.Cost(entity.Cell{X: 3, Y: 3}))
	assert.True(t, math.IsInf(grid.Cost(entity.Cell{X: 2, Y: 2}), 1))
}
