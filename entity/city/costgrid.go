package city

import (
	"github.com/tsinghua-fib-lab/gridcity-sim/entity"
)

// CostGrid 通行代价面
// 功能：地形基础代价与实时拥堵惩罚叠加后的单一代价面
// 说明：进入格子的代价 = 基础代价 + 拥堵权重 × 该格车辆数；
// 建筑物格子无条件为正无穷；仅在构建它的重新寻路周期内使用，不持久化
type CostGrid struct {
	size  int32     // 网格边长
	costs []float64 // 进入每个格子的通行代价（行主序）
}

// BuildCostGrid 由拥堵图构建通行代价面
// 功能：把静态地形代价与动态拥堵计数合成为寻路用的代价面
// 参数：grid-地形网格，baseCost-地形类型到基础代价的映射函数，
// weight-拥堵权重，congestion-当前拥堵图
// 返回：构建完成的代价面
// 说明：纯函数，无副作用，可重复调用；建筑物最后强制为正无穷，
// 不受拥堵惩罚影响
func BuildCostGrid(
	grid *Grid,
	baseCost func(t entity.TerrainType) float64,
	weight float64,
	congestion entity.ICongestionMap,
) *CostGrid {
	size := grid.Size()
	g := &CostGrid{
		size:  size,
		costs: make([]float64, size*size),
	}
	for i := range g.costs {
		c := entity.CellFromIndex(int32(i), size)
		t := grid.TerrainOf(c)
		if !t.Passable() {
			g.costs[i] = entity.Infinity
			continue
		}
		g.costs[i] = baseCost(t) + weight*float64(congestion.Count(c))
	}
	return g
}

// Size 获取网格边长
func (g *CostGrid) Size() int32 {
	return g.size
}

// Cost 查询进入格子的通行代价
// 参数：c-网格坐标
// 返回：通行代价，建筑物为正无穷
func (g *CostGrid) Cost(c entity.Cell) float64 {
	return g.costs[c.Index(g.size)]
}
