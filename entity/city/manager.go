package city

import (
	"github.com/tsinghua-fib-lab/gridcity-sim/entity"
)

// CityManager 城市管理器
// 功能：管理地形网格及其派生数据（拥堵图、代价面）的构建
// 说明：地形在Init时生成后不可变；拥堵图与代价面按需重建，不缓存
type CityManager struct {
	ctx entity.ITaskContext

	grid       *Grid         // 地形网格
	validCells []entity.Cell // 非建筑物格子缓存（行主序，顺序固定）
}

// NewManager 创建城市管理器实例
// 功能：初始化城市管理器
// 参数：ctx-任务上下文
// 返回：新创建的城市管理器实例
func NewManager(ctx entity.ITaskContext) *CityManager {
	return &CityManager{ctx: ctx}
}

// Init 初始化城市
// 功能：按配置程序化生成地形网格并缓存非建筑物格子
// 说明：同一种子生成的城市完全一致
func (m *CityManager) Init() {
	rc := m.ctx.RuntimeConfig()
	m.grid = Generate(int32(rc.GridSize), rc.Seed)
	m.validCells = m.grid.ValidCells()
	log.Infof("city: %dx%d grid, %d passable cells", rc.GridSize, rc.GridSize, len(m.validCells))
}

// Grid 获取地形网格
func (m *CityManager) Grid() *Grid {
	return m.grid
}

// Size 获取网格边长
func (m *CityManager) Size() int32 {
	return m.grid.Size()
}

// TerrainOf 查询格子的地形类型
// 参数：c-网格坐标
// 返回：该格子的地形类型
func (m *CityManager) TerrainOf(c entity.Cell) entity.TerrainType {
	return m.grid.TerrainOf(c)
}

// BaseCost 查询地形类型的基础通行代价
// 功能：将配置中的地形代价映射到地形类型
// 参数：t-地形类型
// 返回：基础通行代价，建筑物为正无穷
func (m *CityManager) BaseCost(t entity.TerrainType) float64 {
	rc := m.ctx.RuntimeConfig()
	switch t {
	case entity.TerrainRoad:
		return rc.RoadCost
	case entity.TerrainHighway:
		return rc.HighwayCost
	case entity.TerrainTrafficLight:
		return rc.TrafficLightCost
	case entity.TerrainBuilding:
		return entity.Infinity
	default:
		log.Panicf("city: unknown terrain type %v", t)
		return entity.Infinity
	}
}

// ValidCells 获取所有非建筑物格子
// 返回：行主序排列的非建筑物格子列表
func (m *CityManager) ValidCells() []entity.Cell {
	return m.validCells
}

// BuildCongestion 由活跃车辆位置构建拥堵图
// 参数：positions-tick开始时刻的活跃车辆位置
// 返回：构建完成的拥堵图
func (m *CityManager) BuildCongestion(positions []entity.Cell) entity.ICongestionMap {
	return BuildCongestion(m.grid.Size(), positions)
}

// BuildCostGrid 由拥堵图构建通行代价面
// 参数：congestion-当前拥堵图
// 返回：构建完成的代价面
func (m *CityManager) BuildCostGrid(congestion entity.ICongestionMap) entity.ICostGrid {
	return BuildCostGrid(m.grid, m.BaseCost, m.ctx.RuntimeConfig().CongestionWeight, congestion)
}
