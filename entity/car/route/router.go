package route

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/gridcity-sim/entity"
	"github.com/tsinghua-fib-lab/gridcity-sim/utils/container"
)

var log = logrus.WithField("module", "route")

// ErrUnreachable 目的地不可达
// 说明：被建筑物隔绝时的每车级可恢复结果，与空路径严格区分；
// 上层将其转换为stuck状态而不是中断模拟
var ErrUnreachable = errors.New("route: destination unreachable")

// 四连通邻接偏移，固定扫描顺序：上、下、左、右
var directions = [4]entity.Cell{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

// FindRoute 在代价面上计算最小代价路径
// 功能：四连通网格上的单源最短路（Dijkstra）
// 参数：grid-当前通行代价面，src-起点，dst-终点
// 返回：从起点到终点的相邻格子序列（含起点），不可达时返回ErrUnreachable
// 算法说明：
// 1. 边代价定义为进入的格子在代价面上的值（代价附着在格子上而非边上）
// 2. 代价为正无穷的格子（建筑物）永不入队，返回路径保证不含建筑物
// 3. 等代价扩展的确定性规则：边界队列以格子线性下标为次序键，
//    代价相同时按下标升序弹出；邻居按固定顺序（上下左右）扫描。
//    该规则是人为选定的确定性策略，保证同一代价面下结果可复现
// 4. 复杂度O(E log V)；多辆车对同一代价面的查询由上层批处理，
//    每个重新寻路周期只构建一次代价面
func FindRoute(grid entity.ICostGrid, src, dst entity.Cell) ([]entity.Cell, error) {
	size := grid.Size()
	n := size * size

	dist := make([]float64, n)
	prev := make([]int32, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = entity.Infinity
		prev[i] = -1
	}

	srcIdx := src.Index(size)
	dstIdx := dst.Index(size)
	dist[srcIdx] = 0

	pq := container.NewPriorityQueue[int32]()
	pq.HeapPush(srcIdx, 0, int64(srcIdx))

	for pq.Len() > 0 {
		idx, cost := pq.HeapPop()
		if visited[idx] {
			continue
		}
		visited[idx] = true
		if idx == dstIdx {
			break
		}
		cur := entity.CellFromIndex(idx, size)
		for _, d := range directions {
			next := entity.Cell{X: cur.X + d.X, Y: cur.Y + d.Y}
			if !next.In(size) {
				continue
			}
			nextIdx := next.Index(size)
			stepCost := grid.Cost(next)
			if visited[nextIdx] || stepCost == entity.Infinity {
				continue
			}
			alt := cost + stepCost
			if alt < dist[nextIdx] {
				dist[nextIdx] = alt
				prev[nextIdx] = idx
				pq.HeapPush(nextIdx, alt, int64(nextIdx))
			}
		}
	}

	if dist[dstIdx] == entity.Infinity {
		return nil, ErrUnreachable
	}

	// 沿前驱回溯重建路径
	length := 1
	for idx := dstIdx; idx != srcIdx; idx = prev[idx] {
		length++
	}
	path := make([]entity.Cell, length)
	for i, idx := length-1, dstIdx; i >= 0; i, idx = i-1, prev[idx] {
		path[i] = entity.CellFromIndex(idx, size)
	}
	return path, nil
}

// PathCost 计算路径的总通行代价
// 功能：沿路径累加进入每个格子的代价（不含起点格子）
// 参数：grid-通行代价面，path-相邻格子序列
// 返回：总代价
func PathCost(grid entity.ICostGrid, path []entity.Cell) float64 {
	total := 0.0
	for _, c := range path[1:] {
		total += grid.Cost(c)
	}
	return total
}
