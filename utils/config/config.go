package config

// 默认值：仅对完全缺省的可选字段生效
const (
	DefaultRecomputeInterval = 5   // 默认全局重新寻路周期
	DefaultCongestionWeight  = 0.5 // 默认拥堵权重
	DefaultRoadCost          = 1.0 // 默认普通道路代价
	DefaultHighwayCost       = 0.5 // 默认高速路代价
	DefaultTrafficLightCost  = 1.5 // 默认红绿灯路口代价
)

// RuntimeConfig 运行时配置
// 功能：存储仿真运行时的配置信息，所有可选字段已解析为具体值
// 说明：将YAML配置转换为运行时可用的配置对象，供各管理器直接读取
type RuntimeConfig struct {
	All Config // 全部配置

	GridSize          int     // 网格边长
	Seed              uint64  // 随机种子
	InitialCars       int     // 初始车辆数
	MaxTicks          int     // 最大tick数
	RecomputeInterval int     // 全局重新寻路周期
	CongestionWeight  float64 // 拥堵权重
	RushHourTick      int     // 晚高峰触发tick，-1表示不触发
	RushHourCars      int     // 晚高峰注入车辆数

	RoadCost         float64 // 普通道路基础代价
	HighwayCost      float64 // 高速路基础代价
	TrafficLightCost float64 // 红绿灯路口基础代价
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：创建运行时配置对象，为缺省的可选字段填入默认值
// 参数：config-已通过Validate校验的原始配置对象
// 返回：初始化的运行时配置指针
// 说明：调用方必须先执行Config.Validate，本函数不再做合法性检查
func NewRuntimeConfig(config Config) *RuntimeConfig {
	rc := &RuntimeConfig{
		All:               config,
		GridSize:          config.City.GridSize,
		Seed:              config.City.Seed,
		InitialCars:       config.Cars.InitialCount,
		MaxTicks:          config.Control.MaxTicks,
		RecomputeInterval: DefaultRecomputeInterval,
		CongestionWeight:  DefaultCongestionWeight,
		RushHourTick:      -1,
		RoadCost:          DefaultRoadCost,
		HighwayCost:       DefaultHighwayCost,
		TrafficLightCost:  DefaultTrafficLightCost,
	}
	if v := config.Control.RecomputeInterval; v != nil {
		rc.RecomputeInterval = *v
	}
	if v := config.Control.CongestionWeight; v != nil {
		rc.CongestionWeight = *v
	}
	if rh := config.Control.RushHour; rh != nil {
		rc.RushHourTick = rh.Tick
		rc.RushHourCars = rh.Count
	}
	if v := config.Costs.Road; v != nil {
		rc.RoadCost = *v
	}
	if v := config.Costs.Highway; v != nil {
		rc.HighwayCost = *v
	}
	if v := config.Costs.TrafficLight; v != nil {
		rc.TrafficLightCost = *v
	}
	return rc
}
