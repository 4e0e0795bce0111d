package route_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/gridcity-sim/entity"
	"github.com/tsinghua-fib-lab/gridcity-sim/entity/car/route"
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

// buildGrid assembles a cost grid from a terrain layout with no congestion.
func buildGrid(size int32, terrain []entity.TerrainType) entity.ICostGrid {
	g := city.NewGrid(size, terrain)
	return city.BuildCostGrid(g, baseCost, 0.5, city.BuildCongestion(size, nil))
}

func assertAdjacent(t *testing.T, path []entity.Cell) {
	t.Helper()
	for i := 1; i < len(path); i++ {
		assert.Equal(t, int32(1), path[i-1].Manhattan(path[i]))
	}
}

func TestFindRouteAvoidsBuilding(t *testing.T) {
	// 5x5 all road except a building at (2,2), no congestion:
	// the route from (0,0) to (4,4) detours around it at total cost 8
	const size = int32(5)
	terrain := make([]entity.TerrainType, size*size)
	terrain[entity.Cell{X: 2, Y: 2}.Index(size)] = entity.TerrainBuilding
	grid := buildGrid(size, terrain)

	path, err := route.FindRoute(grid, entity.Cell{X: 0, Y: 0}, entity.Cell{X: 4, Y: 4})
	require.NoError(t, err)

	assert.Equal(t, entity.Cell{X: 0, Y: 0}, path[0])
	assert.Equal(t, entity.Cell{X: 4, Y: 4}, path[len(path)-1])
	assert.Len(t, path, 9)
	assert.Equal(t, 8.0, route.PathCost(grid, path))
	assert.NotContains(t, path, entity.Cell{X: 2, Y: 2})
	assertAdjacent(t, path)
}

func TestFindRouteUnreachable(t *testing.T) {
	// destination walled in by buildings: a distinct outcome, not an empty path
	const size = int32(5)
	terrain := make([]entity.TerrainType, size*size)
	for _, c := range []entity.Cell{
		{X: 3, Y: 3}, {X: 3, Y: 4}, {X: 4, Y: 3},
	} {
		terrain[c.Index(size)] = entity.TerrainBuilding
	}
	grid := buildGrid(size, terrain)

	path, err := route.FindRoute(grid, entity.Cell{X: 0, Y: 0}, entity.Cell{X: 4, Y: 4})
	assert.ErrorIs(t, err, route.ErrUnreachable)
	assert.Nil(t, path)
}

func TestFindRouteTrivial(t *testing.T) {
	const size = int32(3)
	grid := buildGrid(size, make([]entity.TerrainType, size*size))

	path, err := route.FindRoute(grid, entity.Cell{X: 1, Y: 1}, entity.Cell{X: 1, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, []entity.Cell{{X: 1, Y: 1}}, path)
}

func TestFindRouteTieBreak(t *testing.T) {
	// on a uniform grid every monotone staircase has equal cost; the
	// ascending-cell-index rule makes the result a fixed, reproducible path
	const size = int32(3)
	grid := buildGrid(size, make([]entity.TerrainType, size*size))

	expected := []entity.Cell{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2},
	}
	for i := 0; i < 3; i++ {
		path, err := route.FindRoute(grid, entity.Cell{X: 0, Y: 0}, entity.Cell{X: 2, Y: 2})
		require.NoError(t, err)
		assert.Equal(t, expected, path)
	}
}

func TestFindRoutePrefersHighway(t *testing.T) {
	// a highway row at y=1 halves the cost of the long middle stretch
	const size = int32(5)
	terrain := make([]entity.TerrainType, size*size)
	for x := int32(0); x < size; x++ {
		terrain[entity.Cell{X: x, Y: 1}.Index(size)] = entity.TerrainHighway
	}
	grid := buildGrid(size, terrain)

	// the direct road path costs 4.0, detouring through the highway 4.5
	path, err := route.FindRoute(grid, entity.Cell{X: 0, Y: 0}, entity.Cell{X: 4, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, 4.0, route.PathCost(grid, path))

	// with the destination on the highway itself it pays off: 0.5*5 = 2.5
	path, err = route.FindRoute(grid, entity.Cell{X: 0, Y: 0}, entity.Cell{X: 4, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, 2.5, route.PathCost(grid, path))
	// enters the highway immediately and rides it to the end
	assert.Equal(t, entity.Cell{X: 0, Y: 1}, path[1])
}

func TestFindRouteAvoidsCongestion(t *testing.T) {
	// two cars parked on (3,3) raise its cost to 1.0 + 0.5*2 = 2.0; a third
	// agent with an equal-length alternative must route around it
	const size = int32(5)
	g := city.NewGrid(size, make([]entity.TerrainType, size*size))

	cong := city.BuildCongestion(size, []entity.Cell{{X: 3, Y: 3}, {X: 3, Y: 3}})
	grid := city.BuildCostGrid(g, baseCost, 0.5, cong)
	assert.Equal(t, 2.0, grid.Cost(entity.Cell{X: 3, Y: 3}))

	path, err := route.FindRoute(grid, entity.Cell{X: 2, Y: 3}, entity.Cell{X: 3, Y: 4})
	require.NoError(t, err)
	assert.NotContains(t, path, entity.Cell{X: 3, Y: 3})
	assert.Equal(t, 2.0, route.PathCost(grid, path))
}

// bruteForce enumerates every simple path and returns the true minimum cost.
func bruteForce(grid entity.ICostGrid, src, dst entity.Cell) (float64, bool) {
	size := grid.Size()
	visited := make([]bool, size*size)
	best := entity.Infinity
	found := false

	var dfs func(c entity.Cell, cost float64)
	dfs = func(c entity.Cell, cost float64) {
		if c == dst {
			if cost < best {
				best = cost
			}
			found = true
			return
		}
		visited[c.Index(size)] = true
		for _, d := range []entity.Cell{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}} {
			next := entity.Cell{X: c.X + d.X, Y: c.Y + d.Y}
			if !next.In(size) || visited[next.Index(size)] {
				continue
			}
			stepCost := grid.Cost(next)
			if stepCost == entity.Infinity {
				continue
			}
			dfs(next, cost+stepCost)
		}
		visited[c.Index(size)] = false
	}
	dfs(src, 0)
	return best, found
}

func TestFindRouteOptimalAllPairs(t *testing.T) {
	// cross-check against exhaustive search on a small mixed-terrain grid
	const size = int32(4)
	terrain := make([]entity.TerrainType, size*size)
	terrain[entity.Cell{X: 1, Y: 1}.Index(size)] = entity.TerrainBuilding
	terrain[entity.Cell{X: 2, Y: 0}.Index(size)] = entity.TerrainTrafficLight
	for y := int32(0); y < size; y++ {
		terrain[entity.Cell{X: 3, Y: y}.Index(size)] = entity.TerrainHighway
	}
	grid := buildGrid(size, terrain)

	cells := make([]entity.Cell, 0)
	for i := int32(0); i < size*size; i++ {
		c := entity.CellFromIndex(i, size)
		if grid.Cost(c) != entity.Infinity {
			cells = append(cells, c)
		}
	}

	for _, src := range cells {
		for _, dst := range cells {
			if src == dst {
				continue
			}
			want, reachable := bruteForce(grid, src, dst)
			path, err := route.FindRoute(grid, src, dst)
			if !reachable {
				assert.ErrorIs(t, err, route.ErrUnreachable)
				continue
			}
			require.NoError(t, err, "from %v to %v", src, dst)
			assert.Equal(t, want, route.PathCost(grid, path), "from %v to %v", src, dst)
			assertAdjacent(t, path)
		}
	}
}

func TestRouteCursor(t *testing.T) {
	path := []entity.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	r := route.New(path)

	assert.False(t, r.Exhausted())
	assert.Equal(t, 2, r.Remaining())
	assert.Equal(t, entity.Cell{X: 2, Y: 0}, r.Destination())

	c, ok := r.Step()
	assert.True(t, ok)
	assert.Equal(t, entity.Cell{X: 1, Y: 0}, c)

	c, ok = r.Step()
	assert.True(t, ok)
	assert.Equal(t, entity.Cell{X: 2, Y: 0}, c)
	assert.True(t, r.Exhausted())

	_, ok = r.Step()
	assert.False(t, ok)
}
