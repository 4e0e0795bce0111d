package task

import (
	"flag"

	"github.com/tsinghua-fib-lab/gridcity-sim/entity"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 10, "心跳日志间隔tick数，非正值关闭心跳")
)

// prepare 准备阶段，每tick执行一次
// 功能：在每个tick开始时进行准备工作
// 算法说明：
// 1. 并入上一tick注入、尚未合并的车辆（常规tick为空操作）
// 2. 快照更新：把每辆车的运行时数据固定为tick开始时刻的快照，
//    本tick的拥堵统计与寻路全部以快照为准
// 3. 心跳日志：定期输出车队状态与全局统计，间隔≤0表示关闭心跳
func (ctx *Context) prepare() {
	ctx.carManager.PrepareNode()
	ctx.carManager.Prepare()

	if *heartBeatInterval > 0 && ctx.clock.Tick%int32(*heartBeatInterval) == 0 {
		stats := ctx.carManager.Stats()
		log.Infof(
			"TICK: %d | active: %d | arrived: %d | stuck: %d | total: %d",
			ctx.clock.Tick,
			ctx.carManager.ActiveCount(),
			stats.NumArrived,
			stats.NumStuck,
			ctx.carManager.Count(),
		)
	}
}

// buildCostGrid 构建本周期的通行代价面
// 功能：由当前活跃车辆位置聚合拥堵图，再与地形基础代价合成代价面
// 返回：新构建的代价面
// 说明：拥堵聚合是本tick的全局归约屏障——所有活跃车辆的位置
// 统计完成之前，任何寻路都不得读取拥堵图；代价面在本周期内只读
func (ctx *Context) buildCostGrid() entity.ICostGrid {
	congestion := ctx.cityManager.BuildCongestion(ctx.carManager.ActivePositions())
	return ctx.cityManager.BuildCostGrid(congestion)
}

// update 更新阶段，每tick执行一次
// 功能：执行一个tick的主要仿真逻辑，严格按固定顺序
// 算法说明：
// 1. 晚高峰注入：到达配置tick时注入一批新车并立即只为该批次寻路
//    （新车不得在没有路线的情况下移动），事件最多触发一次
// 2. 周期性全量寻路：tick是寻路周期的整数倍时，重建代价面并对
//    所有活跃车辆batch重新寻路；寻路只由引擎驱动，车辆侧逻辑
//    从不隐式触发
// 3. 移动：每辆活跃车辆沿缓存路线前进恰好一格，到达目的地的
//    转为arrived并记录到达tick
// 4. 历史快照：捕获全部车辆（活跃、本tick到达、曾经到达、被困）
//    步进后的状态并追加
// 说明：步骤3中车辆间无数据依赖，步骤2中每车寻路相互独立，
// 均可并行执行
func (ctx *Context) update() {
	tick := ctx.clock.Tick
	rc := ctx.runtimeConfig

	if !ctx.rushHourFired && tick == int32(rc.RushHourTick) {
		log.Infof("rush hour! spawning %d extra cars at tick %d", rc.RushHourCars, tick)
		ctx.carManager.SpawnBatch(rc.RushHourCars, tick)
		ctx.carManager.PrepareNode()
		ctx.carManager.RecomputeNew(ctx.buildCostGrid())
		ctx.rushHourFired = true
	}

	if tick%int32(rc.RecomputeInterval) == 0 {
		ctx.carManager.RecomputeAll(ctx.buildCostGrid())
	}

	ctx.carManager.Update()

	ctx.recorder.Append(tick, ctx.carManager.Cars())
}

// Run 运行
// 功能：执行整场模拟直到终止条件满足
// 算法说明：
// 1. 初始化所有组件
// 2. 逐tick执行prepare+update
// 3. 终止判定：tick到达配置上限，或所有已出生车辆（含晚高峰批次）
//    均进入终态，两者先到为准
// 说明：这是一个封闭的批计算，不存在取消或超时语义，
// tick上限是唯一的强制终止机制
func (ctx *Context) Run() {
	// 初始化
	ctx.Init()
	for !ctx.clock.Done() {
		ctx.prepare()
		ctx.update()
		log.Debugf("%v: update complete", ctx.clock)
		if ctx.carManager.ActiveCount() == 0 {
			log.Infof("all cars reached a terminal status at %v", ctx.clock)
			ctx.clock.Tick++
			break
		}
		ctx.clock.Tick++
	}
	ctx.finished = true
	log.Infof("engine complete at %v", ctx.clock)
}
