package car

import (
	"fmt"
	"sync"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/gridcity-sim/entity"
	"github.com/tsinghua-fib-lab/gridcity-sim/utils/container"
	"github.com/tsinghua-fib-lab/gridcity-sim/utils/randengine"
)

// CarManager 车辆管理器
// 功能：管理所有Car实体，提供创建、查找、批量寻路、批量移动等功能
// 说明：车队只增不减；晚高峰注入的车辆先进入待并入缓冲区，
// 由编排方在同一tick的移动阶段前并入
type CarManager struct {
	ctx entity.ITaskContext

	cityManager entity.ICityManager

	data map[int32]*Car

	// 参与计算与输出的车队
	cars *container.IncrementalArray[*Car]

	carInserted      []*Car // 新加入的车辆
	carInsertedMutex sync.Mutex
	nextCarID        int32

	generator *randengine.Engine // 随机数生成器，驱动出生点与目的地抽样

	snapshot, runtime entity.GlobalRuntime
	runtimeMtx        sync.Mutex
}

// NewManager 创建车辆管理器实例
// 功能：初始化车辆管理器，创建内部数据结构
// 参数：ctx-任务上下文
// 返回：新创建的车辆管理器实例
func NewManager(ctx entity.ITaskContext) *CarManager {
	m := &CarManager{
		ctx:         ctx,
		data:        make(map[int32]*Car),
		cars:        container.NewIncrementalArray[*Car](),
		carInserted: make([]*Car, 0),
	}
	return m
}

// Init 初始化车队
// 功能：生成初始批次的车辆
// 参数：cityManager-城市管理器，提供出生点抽样的合法格子
// 说明：随机数引擎以配置种子+1初始化，与城市生成的种子区分，
// 保证同一配置下车队完全一致
func (m *CarManager) Init(cityManager entity.ICityManager) {
	rc := m.ctx.RuntimeConfig()
	m.cityManager = cityManager
	m.generator = randengine.New(rc.Seed + 1)
	m.SpawnBatch(rc.InitialCars, 0)
	m.PrepareNode()
	log.Infof("car: spawned %d initial cars", m.cars.Len())
}

// Get 根据ID获取Car实例
// 功能：通过Car ID查找对应的Car对象，如果不存在则panic
// 参数：id-Car的唯一标识符
// 返回：对应的Car实例，如果不存在则panic
func (m *CarManager) Get(id int32) entity.ICar {
	if c, ok := m.data[id]; !ok {
		log.Panicf("no id %d in car data", id)
		return nil
	} else {
		return c
	}
}

// GetOrError 根据ID获取Car实例（带错误处理）
// 功能：通过Car ID查找对应的Car对象，如果不存在则返回错误
// 参数：id-Car的唯一标识符
// 返回：Car实例和错误信息，如果不存在则返回nil和错误
func (m *CarManager) GetOrError(id int32) (entity.ICar, error) {
	if c, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in car data", id)
	} else {
		return c, nil
	}
}

// PrepareNode 准备阶段：并入新注入的车辆
// 功能：把待并入缓冲区中的车辆合并进车队集合与ID映射
// 说明：晚高峰批次在注入的同一tick并入，使其在移动阶段前即进入活跃集合
func (m *CarManager) PrepareNode() {
	m.carInsertedMutex.Lock()
	defer m.carInsertedMutex.Unlock()
	for _, newC := range m.carInserted {
		if _, ok := m.data[newC.ID()]; ok {
			log.Panic("car: same id between new car and existed car")
		}
		m.data[newC.ID()] = newC
		m.cars.Add(newC)
	}
	m.carInserted = []*Car{}

	m.cars.Prepare()
}

// Prepare 准备阶段：snapshot更新
// 功能：把每辆车的运行时数据复制为tick开始时刻的快照
// 说明：快照固定后，本tick的拥堵统计与寻路都以快照为准
func (m *CarManager) Prepare() {
	parallel.GoFor(m.cars.Data(), func(c *Car) { c.prepare() })
	m.runtimeMtx.Lock()
	m.snapshot = m.runtime
	m.runtimeMtx.Unlock()
	log.Debug("CarManager: prepare done")
}

// Update 更新阶段
// 功能：每辆活跃车辆沿缓存路线前进一格
// 说明：每辆车只读自己的路线与游标，车辆间无数据依赖，并行执行
func (m *CarManager) Update() {
	parallel.GoFor(m.cars.Data(), func(c *Car) { c.update() })
}

// RecomputeAll 全量重新寻路
// 功能：对所有活跃车辆，从其当前位置到目的地batch重新计算路径
// 参数：grid-本周期新构建的通行代价面
// 说明：所有车辆共享同一代价面，每车寻路相互独立，并行执行；
// 不可达的车辆在各自的recompute中转为stuck
func (m *CarManager) RecomputeAll(grid entity.ICostGrid) {
	parallel.GoFor(m.cars.Data(), func(c *Car) { c.recompute(grid) })
}

// RecomputeNew 仅对新注入车辆寻路
// 功能：为尚无缓存路线的活跃车辆计算首条路径
// 参数：grid-为该批次新构建的通行代价面
// 说明：晚高峰批次注入后、移动阶段前调用，保证新车不会在没有路线
// 的情况下移动；此刻路线为空的活跃车辆恰好就是该批次
func (m *CarManager) RecomputeNew(grid entity.ICostGrid) {
	news := lo.Filter(m.cars.Data(), func(c *Car, _ int) bool {
		return c.runtime.Status == entity.StatusActive && c.route == nil
	})
	parallel.GoFor(news, func(c *Car) { c.recompute(grid) })
}

// Cars 获取全部车辆
// 功能：返回包含终态车辆在内的整个车队
// 返回：车队的只读视图
func (m *CarManager) Cars() []entity.ICar {
	return lo.Map(m.cars.Data(), func(c *Car, _ int) entity.ICar { return c })
}

// ActivePositions 获取活跃车辆位置
// 功能：返回tick开始时刻所有活跃车辆的位置（读快照）
// 返回：位置列表，长度等于当前活跃车辆数
// 说明：拥堵图的散点累加输入，终态车辆不参与拥堵统计
func (m *CarManager) ActivePositions() []entity.Cell {
	return lo.FilterMap(m.cars.Data(), func(c *Car, _ int) (entity.Cell, bool) {
		return c.snapshot.Position, c.snapshot.Status == entity.StatusActive
	})
}

// ActiveCount 获取当前活跃车辆数
func (m *CarManager) ActiveCount() int {
	return lo.CountBy(m.cars.Data(), func(c *Car) bool {
		return c.runtime.Status == entity.StatusActive
	})
}

// Count 获取全部车辆数
func (m *CarManager) Count() int {
	return m.cars.Len()
}

// Stats 获取全局运行时统计快照
// 返回：tick开始时刻的全局统计
func (m *CarManager) Stats() entity.GlobalRuntime {
	m.runtimeMtx.Lock()
	defer m.runtimeMtx.Unlock()
	return m.snapshot
}

// recordTripEnd 记录行程结束
// 功能：车辆到达目的地时更新全局运行时数据
func (m *CarManager) recordTripEnd(c *Car) {
	m.runtimeMtx.Lock()
	defer m.runtimeMtx.Unlock()
	m.runtime.NumArrived++
	m.runtime.TravelTicks += int64(c.arrivalTick - c.spawnTick + 1)
}

// recordStuck 记录车辆被困
// 功能：车辆被判定不可达时更新全局运行时数据
func (m *CarManager) recordStuck() {
	m.runtimeMtx.Lock()
	defer m.runtimeMtx.Unlock()
	m.runtime.NumStuck++
}
