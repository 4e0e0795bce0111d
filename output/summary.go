package output

import (
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/gridcity-sim/entity"
)

// Summary 运行摘要
// 功能：对一次完整运行的聚合统计
type Summary struct {
	TotalCars   int         // 车辆总数（含晚高峰批次）
	Arrived     int         // 到达数
	Stuck       int         // 被困数
	StillActive int         // 运行结束时仍活跃的车辆数
	AvgTrip     float64     // 已到达车辆的平均行程tick数
	MinTrip     int32       // 最短行程
	MaxTrip     int32       // 最长行程
	BusiestTick int32       // 活跃车辆最多的tick
	Hotspot     entity.Cell // 活跃车辆累计占用最高的格子
	Rows        int         // 历史表总行数
}

// Summarize 计算运行摘要
// 功能：从记录器的快照序列聚合整场模拟的统计指标
// 参数：r-历史记录器
// 返回：运行摘要
// 算法说明：
// 1. 最后一个快照给出每辆车的最终状态与行程长度
// 2. 逐tick统计活跃车辆数取最大者为最忙tick
// 3. 逐格子累计活跃车辆占用次数，取最大者为拥堵热点
func Summarize(r *Recorder) Summary {
	s := Summary{MinTrip: -1, BusiestTick: -1}
	snapshots := r.Snapshots()
	if len(snapshots) == 0 {
		return s
	}

	last := snapshots[len(snapshots)-1]
	s.TotalCars = len(last.States)
	s.Arrived = lo.CountBy(last.States, func(st AgentState) bool { return st.Status == entity.StatusArrived })
	s.Stuck = lo.CountBy(last.States, func(st AgentState) bool { return st.Status == entity.StatusStuck })
	s.StillActive = s.TotalCars - s.Arrived - s.Stuck

	trips := lo.FilterMap(last.States, func(st AgentState, _ int) (int32, bool) {
		return st.ArrivalTick - st.SpawnTick + 1, st.Status == entity.StatusArrived
	})
	if len(trips) > 0 {
		s.MinTrip = lo.Min(trips)
		s.MaxTrip = lo.Max(trips)
		s.AvgTrip = float64(lo.Sum(trips)) / float64(len(trips))
	}

	occupancy := make(map[entity.Cell]int)
	peak := -1
	for _, snap := range snapshots {
		active := 0
		for _, st := range snap.States {
			if st.Status == entity.StatusActive {
				active++
				occupancy[st.Position]++
			}
		}
		if active > peak {
			peak = active
			s.BusiestTick = snap.Tick
		}
	}
	// map遍历顺序随机，计数相同时取行主序最小的格子保证结果确定
	best := -1
	for c, n := range occupancy {
		if n > best || (n == best && (c.Y < s.Hotspot.Y || (c.Y == s.Hotspot.Y && c.X < s.Hotspot.X))) {
			best = n
			s.Hotspot = c
		}
	}

	s.Rows = len(r.Rows())
	return s
}

// Log 输出运行摘要日志
// 功能：把摘要逐项写入日志
func (s Summary) Log() {
	log.Infof("summary: %d cars total, %d arrived (%.1f%%), %d stuck, %d still active",
		s.TotalCars, s.Arrived, 100*float64(s.Arrived)/float64(max(s.TotalCars, 1)), s.Stuck, s.StillActive)
	if s.Arrived > 0 {
		log.Infof("summary: trip length avg %.1f ticks, min %d, max %d", s.AvgTrip, s.MinTrip, s.MaxTrip)
	}
	log.Infof("summary: busiest tick %d, congestion hotspot %v", s.BusiestTick, s.Hotspot)
	log.Infof("summary: history table has %s rows", humanize.Comma(int64(s.Rows)))
}
