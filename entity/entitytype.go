package entity

import (
	"fmt"
	"math"
)

// TerrainType 地形类型
// 功能：表示城市网格中每个格子的地形分类
// 说明：数值与历史表中的编码保持一致，模拟期间不可变
type TerrainType int32

const (
	TerrainRoad         TerrainType = 0 // 普通道路
	TerrainBuilding     TerrainType = 1 // 建筑物（不可通行）
	TerrainHighway      TerrainType = 2 // 高速路
	TerrainTrafficLight TerrainType = 3 // 红绿灯路口
)

// String 获取地形类型的字符串表示
func (t TerrainType) String() string {
	switch t {
	case TerrainRoad:
		return "road"
	case TerrainBuilding:
		return "building"
	case TerrainHighway:
		return "highway"
	case TerrainTrafficLight:
		return "traffic_light"
	default:
		return fmt.Sprintf("unknown(%d)", int32(t))
	}
}

// Passable 检查地形是否可通行
// 功能：判断车辆能否进入该类地形的格子
// 返回：true表示可通行
// 说明：建筑物在任何拥堵条件下都不可通行
func (t TerrainType) Passable() bool {
	return t != TerrainBuilding
}

// Cell 网格坐标
// 功能：表示城市网格中的一个格子位置
type Cell struct {
	X int32 // 列（横向）
	Y int32 // 行（纵向）
}

// Index 计算格子的线性下标
// 功能：将二维坐标按行主序折算为一维下标
// 参数：size-网格边长
// 返回：线性下标 y*size+x
// 说明：线性下标同时用作寻路时等代价扩展的确定性次序键
func (c Cell) Index(size int32) int32 {
	return c.Y*size + c.X
}

// CellFromIndex 根据线性下标还原网格坐标
// 功能：Index的逆运算
// 参数：index-线性下标，size-网格边长
// 返回：对应的网格坐标
func CellFromIndex(index, size int32) Cell {
	return Cell{X: index % size, Y: index / size}
}

// In 检查坐标是否在网格范围内
// 功能：判断格子是否落在[0,size)×[0,size)内
// 参数：size-网格边长
// 返回：true表示在范围内
func (c Cell) In(size int32) bool {
	return c.X >= 0 && c.X < size && c.Y >= 0 && c.Y < size
}

// Manhattan 计算到另一格子的曼哈顿距离
// 功能：|dx|+|dy|，四连通网格上的最短步数下界
// 参数：o-目标格子
// 返回：曼哈顿距离
func (c Cell) Manhattan(o Cell) int32 {
	dx := c.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dy := c.Y - o.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// String 获取格子的字符串表示
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// CarStatus 车辆状态
// 功能：表示车辆在模拟中的生命周期状态
// 说明：active为唯一非终态；arrived与stuck均为终态，车辆进入终态后
// 永不离开车队集合，仅停止移动
type CarStatus int32

const (
	StatusActive  CarStatus = 0 // 行驶中
	StatusArrived CarStatus = 1 // 已到达目的地（终态）
	StatusStuck   CarStatus = 2 // 无法到达目的地（终态）
)

// String 获取车辆状态的字符串表示
func (s CarStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusArrived:
		return "arrived"
	case StatusStuck:
		return "stuck"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// Terminal 检查是否为终态
// 功能：判断车辆是否已结束其行程（到达或被困）
// 返回：true表示终态
func (s CarStatus) Terminal() bool {
	return s == StatusArrived || s == StatusStuck
}

// Infinity 不可通行格子的通行代价
// 说明：建筑物格子的代价恒为正无穷，叠加任何拥堵惩罚后保持不变
var Infinity = math.Inf(1)

// ICongestionMap 拥堵图的依赖倒置
// 功能：每个格子上当前活跃车辆数的只读视图
// 说明：每个重新寻路tick从零重建；所有格子计数之和等于当前活跃车辆数
type ICongestionMap interface {
	// 输入格子，返回其上的活跃车辆数
	Count(c Cell) int32
	// 返回全图车辆计数之和
	Total() int32
}

// ICostGrid 通行代价面的依赖倒置
// 功能：地形基础代价与实时拥堵叠加后的单一代价面
// 说明：仅在构建它的重新寻路周期内有效，不做任何持久化
type ICostGrid interface {
	// 返回网格边长
	Size() int32
	// 输入格子，返回进入该格子的通行代价，建筑物恒为Infinity
	Cost(c Cell) float64
}

// ICar 车辆实体的依赖倒置
// 功能：历史记录与统计所需的车辆只读视图
type ICar interface {
	ID() int32
	// 当前位置
	Position() Cell
	// 目的地（出生时固定，此后不变）
	Destination() Cell
	Status() CarStatus
	// 出生tick
	SpawnTick() int32
	// 到达tick，未到达时为-1
	ArrivalTick() int32
	// 进入终态的tick，仍活跃时为-1
	TerminalTick() int32
}
