package entity

import (
	"github.com/tsinghua-fib-lab/gridcity-sim/clock"
	"github.com/tsinghua-fib-lab/gridcity-sim/utils/config"
)

// ITaskContext task.Context的依赖倒置
// 功能：各实体管理器访问仿真任务上下文的接口
// 说明：避免entity子包直接依赖task包造成循环引用
type ITaskContext interface {
	// 仿真时钟
	Clock() *clock.Clock
	// 运行时配置
	RuntimeConfig() *config.RuntimeConfig
	// 城市管理器
	CityManager() ICityManager
	// 车辆管理器
	CarManager() ICarManager
}
