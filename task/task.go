package task

import (
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/gridcity-sim/clock"
	"github.com/tsinghua-fib-lab/gridcity-sim/entity"
	"github.com/tsinghua-fib-lab/gridcity-sim/entity/car"
	"github.com/tsinghua-fib-lab/gridcity-sim/entity/city"
	"github.com/tsinghua-fib-lab/gridcity-sim/output"
	"github.com/tsinghua-fib-lab/gridcity-sim/utils/config"
)

var log = logrus.WithField("module", "task")

// Context 仿真任务上下文
// 功能：包含一次仿真任务的所有变量和状态，替代全局变量
// 说明：管理仿真系统的所有组件，包括时钟、管理器、配置、历史记录器；
// 引擎单线程逐tick推进，tick之间绝不重叠
type Context struct {

	// 任务名
	job string

	// 时钟
	clock *clock.Clock

	// City管理器
	cityManager entity.ICityManager
	// Car管理器
	carManager entity.ICarManager

	// 运行时配置文件
	runtimeConfig *config.RuntimeConfig

	// 历史记录器
	recorder *output.Recorder

	// 晚高峰是否已触发（最多触发一次）
	rushHourFired bool
	// 引擎状态：running -> finished
	finished bool
}

// NewContext 创建新的仿真任务上下文
// 功能：初始化仿真系统的所有组件和配置
// 参数：job-任务名称，c-已通过Validate校验的配置对象
// 返回：初始化完成的Context实例
// 算法说明：
// 1. 创建Context实例并解析运行时配置
// 2. 初始化时钟与历史记录器
// 3. 创建各管理器（城市、车辆）
// 说明：地形生成与车辆出生在Init中执行，NewContext只完成装配
func NewContext(
	job string,
	c config.Config,
) *Context {
	ctx := &Context{
		job: job,
	}
	ctx.runtimeConfig = config.NewRuntimeConfig(c)
	ctx.clock = clock.New(ctx.runtimeConfig.MaxTicks)
	ctx.recorder = output.NewRecorder()

	// 新建各类模拟对象
	ctx.cityManager = city.NewManager(ctx)
	ctx.carManager = car.NewManager(ctx)

	return ctx
}

func (ctx *Context) Job() string {
	return ctx.job
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

func (ctx *Context) CityManager() entity.ICityManager {
	return ctx.cityManager
}

func (ctx *Context) CarManager() entity.ICarManager {
	return ctx.carManager
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

func (ctx *Context) Recorder() *output.Recorder {
	return ctx.recorder
}

// Finished 检查引擎是否已结束
// 返回：true表示引擎已从running转入finished状态
func (ctx *Context) Finished() bool {
	return ctx.finished
}

// Init 初始化仿真任务
// 功能：按依赖顺序初始化所有组件
// 说明：城市地形先于车辆生成，车辆出生需要合法格子列表
func (ctx *Context) Init() {
	ctx.clock.Init()

	log.Infof("job %s: grid %dx%d, %d initial cars, %d max ticks",
		ctx.job, ctx.runtimeConfig.GridSize, ctx.runtimeConfig.GridSize,
		ctx.runtimeConfig.InitialCars, ctx.runtimeConfig.MaxTicks)

	// 先完成城市地形的所有初始化
	ctx.cityManager.Init()
	// 在建立好地形的基础上构建车队
	ctx.carManager.Init(ctx.cityManager)
}
