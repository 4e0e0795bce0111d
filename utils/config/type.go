package config

import "fmt"

// City 城市网格配置
// 功能：定义城市网格的生成参数
// 说明：网格为正方形，地形在模拟开始前一次性生成且不再变化
type City struct {
	GridSize int    `yaml:"grid_size"` // 网格边长（格子数）
	Seed     uint64 `yaml:"seed"`      // 随机种子，城市生成与车辆出生共用
}

// Cars 车辆配置
// 功能：定义初始车队的规模
type Cars struct {
	InitialCount int `yaml:"initial_count"` // 初始车辆数
}

// RushHour 晚高峰事件配置
// 功能：定义一次性的中途加车事件
// 说明：整个配置项缺省表示不触发晚高峰
type RushHour struct {
	Tick  int `yaml:"tick"`  // 触发的tick
	Count int `yaml:"count"` // 注入的车辆数
}

// Control 模拟器控制配置
// 功能：定义仿真系统的核心控制参数
// 说明：可缺省字段使用指针区分"未填写"与"显式填写非法值"，
// 未填写时采用默认值，显式填写的非法值在校验阶段直接报错
type Control struct {
	MaxTicks          int       `yaml:"max_ticks"`                    // 最大tick数，模拟区间[0, MaxTicks)
	RecomputeInterval *int      `yaml:"recompute_interval,omitempty"` // 全局重新寻路周期（tick），默认5
	CongestionWeight  *float64  `yaml:"congestion_weight,omitempty"`  // 拥堵权重（每辆车增加的通行代价），默认0.5
	RushHour          *RushHour `yaml:"rush_hour,omitempty"`          // 晚高峰事件，缺省不触发
}

// Costs 地形基础通行代价配置
// 功能：定义每类地形的基础通行代价
// 说明：建筑物恒为不可通行（+Inf），不提供配置项
type Costs struct {
	Road         *float64 `yaml:"road,omitempty"`          // 普通道路，默认1.0
	Highway      *float64 `yaml:"highway,omitempty"`       // 高速路，默认0.5
	TrafficLight *float64 `yaml:"traffic_light,omitempty"` // 红绿灯路口，默认1.5
}

// Output 历史输出配置
// 功能：定义历史表的落盘方式
// 说明：CSV、SQLite、MongoDB三种sink相互独立，路径/URI为空表示禁用对应sink
type Output struct {
	CSV    string `yaml:"csv,omitempty"`    // CSV文件路径
	SQLite string `yaml:"sqlite,omitempty"` // SQLite数据库文件路径
	URI    string `yaml:"uri,omitempty"`    // MongoDB连接字符串
	DB     string `yaml:"db,omitempty"`     // MongoDB数据库名
	Col    string `yaml:"col,omitempty"`    // MongoDB集合名
}

// Config YAML配置文件的根结构
// 功能：定义整个仿真系统的配置结构
// 说明：包含城市、车辆、控制、代价、输出所有配置项
type Config struct {
	City    City    `yaml:"city"`              // 城市网格
	Cars    Cars    `yaml:"cars"`              // 车辆
	Control Control `yaml:"control"`           // 模拟过程控制
	Costs   Costs   `yaml:"costs,omitempty"`   // 地形代价
	Output  Output  `yaml:"output,omitempty"`  // 输出
}

// Validate 校验配置
// 功能：在模拟开始前检查所有配置项的合法性
// 返回：首个发现的配置错误，全部合法时返回nil
// 说明：非法配置是致命错误，绝不静默回退到默认值；
// 只有完全缺省的可选字段才会在NewRuntimeConfig中取默认值
func (c Config) Validate() error {
	if c.City.GridSize <= 0 {
		return fmt.Errorf("config: city.grid_size must be positive, got %d", c.City.GridSize)
	}
	if c.Cars.InitialCount < 0 {
		return fmt.Errorf("config: cars.initial_count must be non-negative, got %d", c.Cars.InitialCount)
	}
	if c.Control.MaxTicks <= 0 {
		return fmt.Errorf("config: control.max_ticks must be positive, got %d", c.Control.MaxTicks)
	}
	if c.Control.RecomputeInterval != nil && *c.Control.RecomputeInterval <= 0 {
		return fmt.Errorf("config: control.recompute_interval must be positive, got %d", *c.Control.RecomputeInterval)
	}
	if c.Control.CongestionWeight != nil && *c.Control.CongestionWeight < 0 {
		return fmt.Errorf("config: control.congestion_weight must be non-negative, got %f", *c.Control.CongestionWeight)
	}
	if rh := c.Control.RushHour; rh != nil {
		if rh.Tick < 0 || rh.Tick >= c.Control.MaxTicks {
			return fmt.Errorf("config: control.rush_hour.tick must be in [0, %d), got %d", c.Control.MaxTicks, rh.Tick)
		}
		if rh.Count <= 0 {
			return fmt.Errorf("config: control.rush_hour.count must be positive, got %d", rh.Count)
		}
	}
	for name, cost := range map[string]*float64{
		"road":          c.Costs.Road,
		"highway":       c.Costs.Highway,
		"traffic_light": c.Costs.TrafficLight,
	} {
		if cost != nil && *cost <= 0 {
			return fmt.Errorf("config: costs.%s must be positive, got %f", name, *cost)
		}
	}
	if (c.Output.URI != "") != (c.Output.DB != "" && c.Output.Col != "") {
		return fmt.Errorf("config: output.uri, output.db and output.col must be set together")
	}
	return nil
}
