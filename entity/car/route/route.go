package route

import (
	"github.com/tsinghua-fib-lab/gridcity-sim/entity"
)

// Route 缓存路线
// 功能：一次寻路结果加上消费游标，记录车辆沿线的行进进度
// 说明：path[0]为计算时刻的车辆位置，最后一个元素为目的地；
// 每次全局重新寻路时整体替换，从不做增量修补——新路线从车辆当前位置出发，
// 放弃旧路线的剩余部分是有意为之
type Route struct {
	path   []entity.Cell // 相邻格子序列
	cursor int           // 下一个未消费格子的下标
}

// New 由寻路结果创建路线
// 功能：包装路径并把游标置于第一个未消费格子
// 参数：path-FindRoute返回的相邻格子序列
// 返回：路线实例
// 说明：path[0]是车辆当前位置，已消费，游标从1开始
func New(path []entity.Cell) *Route {
	return &Route{path: path, cursor: 1}
}

// Step 消费并返回下一个格子
// 功能：车辆每tick前进一格时调用
// 返回：下一个格子与是否成功；路线耗尽时返回false
func (r *Route) Step() (entity.Cell, bool) {
	if r.cursor >= len(r.path) {
		return entity.Cell{}, false
	}
	c := r.path[r.cursor]
	r.cursor++
	return c, true
}

// Exhausted 检查路线是否已消费完
// 返回：true表示没有剩余格子
func (r *Route) Exhausted() bool {
	return r.cursor >= len(r.path)
}

// Destination 获取路线终点
// 返回：路径的最后一个格子
func (r *Route) Destination() entity.Cell {
	return r.path[len(r.path)-1]
}

// Remaining 获取剩余未消费的格子数
func (r *Route) Remaining() int {
	return len(r.path) - r.cursor
}
