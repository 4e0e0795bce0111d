package output

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/gridcity-sim/entity"
	"github.com/tsinghua-fib-lab/gridcity-sim/utils/config"
)

var log = logrus.WithField("module", "output")

// AgentState 单辆车在某tick的状态记录
// 功能：快照中每辆车的不可变状态值
type AgentState struct {
	CarID        int32            // 车辆ID
	Position     entity.Cell      // 步进后的位置
	Destination  entity.Cell      // 目的地
	Status       entity.CarStatus // 步进后的状态
	SpawnTick    int32            // 出生tick
	ArrivalTick  int32            // 到达tick，未到达为-1
	TerminalTick int32            // 进入终态的tick，仍活跃为-1
}

// Snapshot 单tick的车队快照
// 功能：某tick移动阶段结束后全部车辆（活跃、本tick到达、曾经到达、
// 被困）的状态记录
// 说明：追加后不可变
type Snapshot struct {
	Tick   int32        // 所属tick
	States []AgentState // 全部车辆的状态
}

// Row 历史表的一行
// 功能：展平后的(tick, 车辆)记录，交给分析/可视化协作方的唯一数据
type Row struct {
	Tick        int32            // tick
	CarID       int32            // 车辆ID
	X, Y        int32            // 步进后的位置
	DestX       int32            // 目的地X
	DestY       int32            // 目的地Y
	Status      entity.CarStatus // 状态
	SpawnTick   int32            // 出生tick
	ArrivalTick int32            // 到达tick，未到达为-1（落盘为null/空）
}

// Recorder 历史记录器
// 功能：逐tick追加车队快照的只增日志
// 说明：已追加的快照永不修改；展平导出时每辆车只保留其活跃期
// 加上首个终态tick的行（进入终态后的后续tick不再产生行）
type Recorder struct {
	runID     string     // 本次运行的唯一标识
	snapshots []Snapshot // 按tick有序的快照序列
}

// NewRecorder 创建历史记录器
// 功能：初始化记录器并分配运行标识
// 返回：新创建的记录器实例
func NewRecorder() *Recorder {
	return &Recorder{
		runID:     uuid.New().String(),
		snapshots: make([]Snapshot, 0),
	}
}

// RunID 获取本次运行的唯一标识
func (r *Recorder) RunID() string {
	return r.runID
}

// Append 追加一个tick的车队快照
// 功能：捕获全部车辆在本tick步进后的状态并追加到日志末尾
// 参数：tick-当前tick，cars-包含终态车辆在内的整个车队
// 说明：状态值在追加时拷贝，后续tick对车辆的修改不影响已有快照
func (r *Recorder) Append(tick int32, cars []entity.ICar) {
	states := make([]AgentState, 0, len(cars))
	for _, c := range cars {
		states = append(states, AgentState{
			CarID:        c.ID(),
			Position:     c.Position(),
			Destination:  c.Destination(),
			Status:       c.Status(),
			SpawnTick:    c.SpawnTick(),
			ArrivalTick:  c.ArrivalTick(),
			TerminalTick: c.TerminalTick(),
		})
	}
	r.snapshots = append(r.snapshots, Snapshot{Tick: tick, States: states})
}

// Snapshots 获取全部快照
// 说明：只读，调用方不得修改
func (r *Recorder) Snapshots() []Snapshot {
	return r.snapshots
}

// Rows 导出展平的历史表
// 功能：把快照序列展平为(tick, 车辆)行的有序列表
// 返回：历史表行，按(tick, 车辆ID追加顺序)排列
// 说明：每辆车保留从出生tick到首个终态tick（含）的行；
// 行数恒等于对每辆车的(终态tick - 出生tick + 1)求和
func (r *Recorder) Rows() []Row {
	rows := make([]Row, 0)
	for _, snap := range r.snapshots {
		for _, st := range snap.States {
			// 进入终态之后的tick不再产生行
			if st.TerminalTick != -1 && snap.Tick > st.TerminalTick {
				continue
			}
			rows = append(rows, Row{
				Tick:        snap.Tick,
				CarID:       st.CarID,
				X:           st.Position.X,
				Y:           st.Position.Y,
				DestX:       st.Destination.X,
				DestY:       st.Destination.Y,
				Status:      st.Status,
				SpawnTick:   st.SpawnTick,
				ArrivalTick: st.ArrivalTick,
			})
		}
	}
	return rows
}

// Flush 把历史表写入所有已启用的sink
// 功能：按配置依次落盘CSV、SQLite、MongoDB
// 参数：cfg-输出配置
// 返回：首个失败sink的错误
func (r *Recorder) Flush(cfg config.Output) error {
	rows := r.Rows()
	if cfg.CSV != "" {
		if err := WriteCSV(cfg.CSV, rows); err != nil {
			return err
		}
	}
	if cfg.SQLite != "" {
		if err := WriteSQLite(cfg.SQLite, r.runID, rows); err != nil {
			return err
		}
	}
	if cfg.URI != "" {
		if err := WriteMongo(cfg.URI, cfg.DB, cfg.Col, r.runID, rows); err != nil {
			return err
		}
	}
	return nil
}
