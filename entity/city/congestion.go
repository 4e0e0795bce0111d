package city

import (
	"github.com/tsinghua-fib-lab/gridcity-sim/entity"
)

// CongestionMap 拥堵图
// 功能：记录当前每个格子上的活跃车辆数
// 说明：每个重新寻路tick由活跃车辆位置从零重建，不做增量维护；
// 不变量：所有格子计数之和等于构建时的活跃车辆数
type CongestionMap struct {
	size   int32   // 网格边长
	counts []int32 // 每个格子上的车辆数（行主序）
	total  int32   // 全图车辆计数之和
}

// BuildCongestion 由车辆位置构建拥堵图
// 功能：对每个车辆位置做散点累加，统计每个格子上的车辆数
// 参数：size-网格边长，positions-活跃车辆位置列表
// 返回：构建完成的拥堵图
// 说明：位置列表为空是正常情况（所有车辆均已进入终态），返回全零图
func BuildCongestion(size int32, positions []entity.Cell) *CongestionMap {
	m := &CongestionMap{
		size:   size,
		counts: make([]int32, size*size),
	}
	for _, c := range positions {
		m.counts[c.Index(size)]++
		m.total++
	}
	return m
}

// Count 查询格子上的车辆数
// 参数：c-网格坐标
// 返回：该格子上的活跃车辆数
func (m *CongestionMap) Count(c entity.Cell) int32 {
	return m.counts[c.Index(m.size)]
}

// Total 获取全图车辆计数之和
// 返回：构建时的活跃车辆总数
func (m *CongestionMap) Total() int32 {
	return m.total
}
