package car


// SpawnBatch 注入一批车辆
// 功能：生成count辆新车并放入待并入缓冲区（PrepareNode后生效）
// 参数：count-车辆数，tick-出生tick
// 算法说明：
// 1. 出生点与目的地都从非建筑物格子中等概率抽样，
//    这是出生逻辑保证的前置条件而非运行时错误路径
// 2. 目的地重抽样直到与出生点不同，避免出生即到达的退化车辆
// 3. ID从0起连续分配，晚高峰批次接着已有ID继续编号
// 说明：初始批次与晚高峰批次共用本方法；抽样顺序固定，
// 同一种子下车队完全可复现
func (m *CarManager) SpawnBatch(count int, tick int32) {
	validCells := m.cityManager.ValidCells()
	if len(validCells) < 2 {
		log.Panicf("car: cannot spawn on a grid with %d passable cells", len(validCells))
	}
	m.carInsertedMutex.Lock()
	defer m.carInsertedMutex.Unlock()
	for i := 0; i < count; i++ {
		origin := validCells[m.generator.Intn(len(validCells))]
		destination := validCells[m.generator.Intn(len(validCells))]
		for destination == origin {
			destination = validCells[m.generator.Intn(len(validCells))]
		}
		c := newCar(m.ctx, m, m.nextCarID, origin, destination, tick)
		m.nextCarID++
		m.carInserted = append(m.carInserted, c)
	}
}
