package car

import (
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/gridcity-sim/entity"
	"github.com/tsinghua-fib-lab/gridcity-sim/entity/car/route"
)

var log = logrus.WithField("module", "car")

// runtime 车辆运行时数据结构
// 功能：记录车辆在模拟过程中的可变状态
// 说明：该数据结构需要可以被直接复制，不应产生浅拷贝带来的副作用
type runtime struct {
	Position entity.Cell      // 当前位置
	Status   entity.CarStatus // 当前状态
}

// Car 车辆实体
// 功能：表示模拟中的一个车辆智能体，持有自己的目的地与缓存路线
// 说明：车辆由车队集合独占持有，出生后从不删除，
// 行程结束只通过状态转移（arrived/stuck）表达
type Car struct {
	ctx entity.ITaskContext
	m   *CarManager

	// 静态属性
	id          int32       // 唯一标识
	destination entity.Cell // 目的地，出生时固定
	spawnTick   int32       // 出生tick

	// 运行时数据，快照在每tick开始时由Prepare复制
	runtime  runtime // 运行时数据
	snapshot runtime // tick开始时刻的快照

	// 终态记录
	arrivalTick  int32 // 到达tick，未到达为-1
	terminalTick int32 // 进入终态的tick，仍活跃为-1

	// 缓存路线，每次全局重新寻路整体替换
	route *route.Route
}

// newCar 创建并初始化一个新的Car实例
// 功能：按给定出生点与目的地构造车辆
// 参数：ctx-任务上下文，m-车辆管理器，id-车辆ID，origin-出生点，
// destination-目的地，spawnTick-出生tick
// 返回：初始化完成的Car实例
// 说明：出生点与目的地的合法性（非建筑物、互不相同）由管理器的
// 出生逻辑保证，这里不再检查
func newCar(
	ctx entity.ITaskContext,
	m *CarManager,
	id int32,
	origin, destination entity.Cell,
	spawnTick int32,
) *Car {
	c := &Car{
		ctx:         ctx,
		m:           m,
		id:          id,
		destination: destination,
		spawnTick:   spawnTick,
		runtime: runtime{
			Position: origin,
			Status:   entity.StatusActive,
		},
		arrivalTick:  -1,
		terminalTick: -1,
	}
	// 出生当tick即参与拥堵统计
	c.snapshot = c.runtime
	return c
}

// ID 获取车辆ID
func (c *Car) ID() int32 {
	return c.id
}

// Position 获取当前位置
func (c *Car) Position() entity.Cell {
	return c.runtime.Position
}

// Destination 获取目的地
func (c *Car) Destination() entity.Cell {
	return c.destination
}

// Status 获取当前状态
func (c *Car) Status() entity.CarStatus {
	return c.runtime.Status
}

// SpawnTick 获取出生tick
func (c *Car) SpawnTick() int32 {
	return c.spawnTick
}

// ArrivalTick 获取到达tick
// 返回：到达tick，未到达为-1
func (c *Car) ArrivalTick() int32 {
	return c.arrivalTick
}

// TerminalTick 获取进入终态的tick
// 返回：进入终态的tick，仍活跃为-1
func (c *Car) TerminalTick() int32 {
	return c.terminalTick
}

// Route 获取缓存路线
func (c *Car) Route() *route.Route {
	return c.route
}

// prepare 准备阶段
// 功能：把运行时数据复制为tick开始时刻的快照
// 说明：拥堵统计读快照，移动阶段改运行时，两者互不干扰
func (c *Car) prepare() {
	c.snapshot = c.runtime
}

// recompute 重新寻路
// 功能：从车辆当前位置（而非出生点）到目的地重新计算最小代价路径
// 参数：grid-本周期的通行代价面
// 算法说明：
// 1. 非活跃车辆直接跳过
// 2. 旧路线无论剩余多少一律整体替换——新路线从当前位置出发，
//    放弃旧进度没有代价
// 3. 不可达时转为stuck终态：此后不再移动，但保留在车队中，
//    每个后续快照仍以最后位置记录它
// 说明：只修改本车状态，可与其他车辆的寻路并行执行
func (c *Car) recompute(grid entity.ICostGrid) {
	if c.runtime.Status != entity.StatusActive {
		return
	}
	path, err := route.FindRoute(grid, c.runtime.Position, c.destination)
	if err != nil {
		// 地形静态，不可达不会随时间改善，stuck为终态
		c.route = nil
		c.runtime.Status = entity.StatusStuck
		c.terminalTick = c.ctx.Clock().Tick
		c.m.recordStuck()
		log.Debugf("car %d stuck at %v, destination %v unreachable", c.id, c.runtime.Position, c.destination)
		return
	}
	c.route = route.New(path)
	log.Debugf("car %d routed: %d steps to %v", c.id, c.route.Remaining(), c.route.Destination())
}

// update 更新阶段
// 功能：沿缓存路线前进恰好一格
// 算法说明：
// 1. 非活跃车辆不移动
// 2. 无路线或路线耗尽时原地等待本tick
// 3. 消费游标移动到下一格；新位置等于目的地时转为arrived终态，
//    记录到达tick为当前tick
// 说明：只读取本tick开始时固定的路线与代价面结论，不依赖其他车辆
// 本tick的移动，可并行执行
func (c *Car) update() {
	if c.runtime.Status != entity.StatusActive {
		return
	}
	if c.route == nil || c.route.Exhausted() {
		// 无路线或路线耗尽，原地等待本tick
		return
	}
	next, _ := c.route.Step()
	c.runtime.Position = next
	if next == c.destination {
		c.runtime.Status = entity.StatusArrived
		c.arrivalTick = c.ctx.Clock().Tick
		c.terminalTick = c.arrivalTick
		c.m.recordTripEnd(c)
	}
}
