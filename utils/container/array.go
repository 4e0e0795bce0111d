package container

import (
	"sync"
)

// IncrementalArray 增量数组，支持批量延迟插入的数组
// 功能：车队等实体集合的底层容器，运行中途只增不减（实体终态保留在原位）
// 说明：使用延迟更新机制，新元素先进入缓冲区，在Prepare时统一并入主数组；
// Add线程安全，Data/Prepare只允许在单线程编排阶段调用
type IncrementalArray[T any] struct {
	data     []T        // 主数据数组
	add      []T        // 待添加的元素列表
	addMutex sync.Mutex // 添加操作的互斥锁
}

// NewIncrementalArray 创建增量数组
// 功能：初始化一个新的增量数组实例
// 返回：新创建的增量数组指针
func NewIncrementalArray[T any]() *IncrementalArray[T] {
	return &IncrementalArray[T]{
		data: make([]T, 0),
		add:  make([]T, 0),
	}
}

// Len 获取当前数组长度
// 功能：返回主数据数组的当前长度（不含待添加元素）
// 返回：数组长度
func (a *IncrementalArray[T]) Len() int {
	return len(a.data)
}

// Data 获取原始数据
// 功能：返回主数据数组
// 说明：返回的是当前已应用所有增量操作的数据，调用方不得修改切片结构
func (a *IncrementalArray[T]) Data() []T {
	return a.data
}

// Add 增加元素（等到Prepare时才会真正增加）
// 功能：将元素添加到待添加列表中
// 参数：value-要添加的元素
// 说明：使用互斥锁保护并发安全，元素不会立即添加到主数组中
func (a *IncrementalArray[T]) Add(value T) {
	a.addMutex.Lock()
	defer a.addMutex.Unlock()
	a.add = append(a.add, value)
}

// Prepare 执行增量操作
// 功能：将所有待添加元素按加入顺序并入主数组并清空缓冲区
// 说明：加入顺序即遍历顺序，保证同一种子下模拟结果可复现
func (a *IncrementalArray[T]) Prepare() {
	a.data = append(a.data, a.add...)
	a.add = []T{}
}
