package city

import (
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/gridcity-sim/entity"
)

var log = logrus.WithField("module", "city")

// Grid 城市地形网格
// 功能：城市中每个格子的地形分类，行主序存储
// 说明：模拟开始前一次性生成，此后不可变；所有寻路与代价计算都以它为底
type Grid struct {
	size    int32                // 网格边长
	terrain []entity.TerrainType // 每个格子的地形类型（行主序）
}

// NewGrid 由地形数据创建网格
// 功能：包装已生成的地形层
// 参数：size-网格边长，terrain-行主序地形数据
// 返回：网格实例
// 说明：长度不匹配属于程序错误，直接panic
func NewGrid(size int32, terrain []entity.TerrainType) *Grid {
	if int32(len(terrain)) != size*size {
		log.Panicf("city: terrain length %d does not match size %d", len(terrain), size)
	}
	return &Grid{size: size, terrain: terrain}
}

// Size 获取网格边长
func (g *Grid) Size() int32 {
	return g.size
}

// TerrainOf 查询格子的地形类型
// 功能：地形层的只读查询接口
// 参数：c-网格坐标
// 返回：该格子的地形类型
func (g *Grid) TerrainOf(c entity.Cell) entity.TerrainType {
	return g.terrain[c.Index(g.size)]
}

// ValidCells 获取所有非建筑物格子
// 功能：枚举车辆可以出生/通行的格子
// 返回：行主序排列的非建筑物格子列表
// 说明：顺序固定，供随机抽样时保证可复现
func (g *Grid) ValidCells() []entity.Cell {
	cells := make([]entity.Cell, 0, len(g.terrain))
	for i, t := range g.terrain {
		if t.Passable() {
			cells = append(cells, entity.CellFromIndex(int32(i), g.size))
		}
	}
	return cells
}
