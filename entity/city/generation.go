package city

import (
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/tsinghua-fib-lab/gridcity-sim/entity"
)

const (
	buildingRatio     = 0.15 // 建筑物占全网格的目标比例
	buildingNoiseFreq = 0.35 // 建筑物噪声采样频率，越小建筑物成片越大
	trafficLightEvery = 4    // 高速路上每隔多少格设置一个红绿灯
)

// Generate 程序化生成城市地形
// 功能：一次性生成整张城市地形层
// 参数：size-网格边长，seed-随机种子
// 返回：生成完成的不可变网格
// 算法说明：
// 1. 全图初始化为普通道路
// 2. 建筑物：对每个格子采样opensimplex噪声，取噪声值最高的约15%格子，
//    噪声的空间相关性使建筑物自然成片（阈值按分位数取，保证比例精确）
// 3. 高速路：一横一纵两条直线（行size/4、列size/2），覆盖其上的建筑物
// 4. 红绿灯：沿高速路每隔4格设置一个
// 5. 边界：最外圈强制为普通道路，保证全图连通的出入口
// 说明：同一种子生成的城市完全一致
func Generate(size int32, seed uint64) *Grid {
	n := size * size
	terrain := make([]entity.TerrainType, n)
	for i := range terrain {
		terrain[i] = entity.TerrainRoad
	}

	// 建筑物
	noise := opensimplex.NewNormalized(int64(seed))
	values := make([]float64, n)
	for i := int32(0); i < n; i++ {
		c := entity.CellFromIndex(i, size)
		values[i] = noise.Eval2(float64(c.X)*buildingNoiseFreq, float64(c.Y)*buildingNoiseFreq)
	}
	numBuildings := int(float64(n) * buildingRatio)
	order := make([]int32, n)
	for i := range order {
		order[i] = int32(i)
	}
	sort.Slice(order, func(i, j int) bool {
		if values[order[i]] != values[order[j]] {
			return values[order[i]] > values[order[j]]
		}
		return order[i] < order[j]
	})
	for _, idx := range order[:numBuildings] {
		terrain[idx] = entity.TerrainBuilding
	}

	// 高速路（覆盖建筑物，高速路的连通性优先）
	highwayRow := size / 4
	highwayCol := size / 2
	for x := int32(0); x < size; x++ {
		terrain[entity.Cell{X: x, Y: highwayRow}.Index(size)] = entity.TerrainHighway
	}
	for y := int32(0); y < size; y++ {
		terrain[entity.Cell{X: highwayCol, Y: y}.Index(size)] = entity.TerrainHighway
	}

	// 红绿灯
	for x := int32(0); x < size; x += trafficLightEvery {
		terrain[entity.Cell{X: x, Y: highwayRow}.Index(size)] = entity.TerrainTrafficLight
	}
	for y := int32(0); y < size; y += trafficLightEvery {
		terrain[entity.Cell{X: highwayCol, Y: y}.Index(size)] = entity.TerrainTrafficLight
	}

	// 边界道路
	for x := int32(0); x < size; x++ {
		terrain[entity.Cell{X: x, Y: 0}.Index(size)] = entity.TerrainRoad
		terrain[entity.Cell{X: x, Y: size - 1}.Index(size)] = entity.TerrainRoad
	}
	for y := int32(0); y < size; y++ {
		terrain[entity.Cell{X: 0, Y: y}.Index(size)] = entity.TerrainRoad
		terrain[entity.Cell{X: size - 1, Y: y}.Index(size)] = entity.TerrainRoad
	}

	return NewGrid(size, terrain)
}
