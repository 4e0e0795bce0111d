package entity

// Manager依赖倒置

// GlobalRuntime 车队全局运行时数据结构
// 功能：管理全局运行时数据，包括到达数、被困数、累计行程tick数
// 说明：每tick开始时固定为快照，心跳日志读快照
type GlobalRuntime struct {
	NumArrived  int32 // 已到达的车辆
	NumStuck    int32 // 被困的车辆
	TravelTicks int64 // 已到达车辆的累计行程tick数
}

// entity/city/manager.go的依赖倒置
type ICityManager interface {
	Init() // 初始化（地形生成）

	// 返回网格边长
	Size() int32
	// 输入格子，返回其地形类型
	TerrainOf(c Cell) TerrainType
	// 输入地形类型，返回其基础通行代价，建筑物为Infinity
	BaseCost(t TerrainType) float64
	// 返回所有非建筑物格子（行主序）
	ValidCells() []Cell

	// 由活跃车辆位置构建拥堵图（散点累加）
	BuildCongestion(positions []Cell) ICongestionMap
	// 由拥堵图构建通行代价面：基础代价+权重×占用数，建筑物恒为Infinity
	BuildCostGrid(congestion ICongestionMap) ICostGrid
}

// entity/car/manager.go的依赖倒置
type ICarManager interface {
	// 初始化：生成初始车队
	Init(cityManager ICityManager)

	// 输入Car ID，查找Car，如果不存在则panic
	Get(id int32) ICar
	// 输入Car ID，查找Car，如果不存在则返回error
	GetOrError(id int32) (ICar, error)

	PrepareNode() // 准备阶段：并入新注入的车辆
	Prepare()     // 准备阶段：snapshot更新
	Update()      // 更新阶段：每辆活跃车辆沿缓存路线前进一格

	// 注入晚高峰车辆批次（进入待并入缓冲区，PrepareNode后生效）
	SpawnBatch(count int, tick int32)
	// 对所有活跃车辆batch重新寻路，不可达者转为stuck
	RecomputeAll(grid ICostGrid)
	// 仅对最近注入、尚无路线的车辆寻路
	RecomputeNew(grid ICostGrid)

	// 返回全部车辆（含终态）
	Cars() []ICar
	// 返回tick开始时刻所有活跃车辆的位置
	ActivePositions() []Cell
	// 返回当前活跃车辆数
	ActiveCount() int
	// 返回全部车辆数
	Count() int
	// 返回tick开始时刻的全局统计快照
	Stats() GlobalRuntime
}
