package clock

import (
	"fmt"
)

// Clock 仿真时钟管理器
// 功能：管理仿真系统的tick推进，维护当前tick和结束tick
// 说明：模拟严格按tick逐步推进，tick是唯一的时间单位
type Clock struct {
	END_TICK int32 // 结束tick，模拟区间[0, END)

	Tick int32 // 当前tick
}

// New 根据最大tick数创建新的时钟实例
// 功能：初始化时钟信息
// 参数：maxTicks-最大tick数
// 返回：初始化完成的时钟实例
func New(maxTicks int) *Clock {
	c := &Clock{
		END_TICK: int32(maxTicks),
	}
	c.Init()
	return c
}

// Init 初始化时钟状态
// 功能：重置当前tick为起始值
// 说明：起始tick固定为0，允许同一时钟驱动多次运行
func (c *Clock) Init() {
	c.Tick = 0
}

// Done 检查模拟时间是否耗尽
// 功能：判断当前tick是否已到达结束tick
// 返回：true表示时间耗尽，应停止模拟
func (c *Clock) Done() bool {
	return c.Tick >= c.END_TICK
}

// String 获取时钟的字符串表示
// 功能：将当前tick格式化为可读的字符串
// 返回：格式化的tick字符串（tick X/Y）
func (c *Clock) String() string {
	return fmt.Sprintf("tick %d/%d", c.Tick, c.END_TICK)
}
