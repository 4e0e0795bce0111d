package output

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// historySchema 历史表的SQLite结构
// 说明：history按(run_id, tick, car_id)组织；同一个数据库文件可以
// 累积多次运行的结果，run_id区分
const historySchema = `
CREATE TABLE IF NOT EXISTS history (
	run_id TEXT NOT NULL,
	tick INTEGER NOT NULL,
	car_id INTEGER NOT NULL,
	x INTEGER NOT NULL,
	y INTEGER NOT NULL,
	dest_x INTEGER NOT NULL,
	dest_y INTEGER NOT NULL,
	status TEXT NOT NULL,
	spawn_tick INTEGER NOT NULL,
	arrival_tick INTEGER,
	PRIMARY KEY (run_id, tick, car_id)
);
CREATE INDEX IF NOT EXISTS idx_history_car ON history (run_id, car_id, tick);
`

// WriteSQLite 把历史表写入SQLite数据库
// 功能：打开（或创建）数据库，建表后在单个事务内批量插入全部行
// 参数：path-数据库文件路径，runID-本次运行标识，rows-展平的历史表
// 返回：写入错误
func WriteSQLite(path, runID string, rows []Row) error {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("output: open sqlite %s: %w", path, err)
	}
	defer conn.Close()

	if _, err := conn.Exec(historySchema); err != nil {
		return fmt.Errorf("output: migrate sqlite: %w", err)
	}

	tx, err := conn.Beginx()
	if err != nil {
		return fmt.Errorf("output: begin tx: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO history
		(run_id, tick, car_id, x, y, dest_x, dest_y, status, spawn_tick, arrival_tick)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("output: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		var arrival any
		if row.ArrivalTick >= 0 {
			arrival = row.ArrivalTick
		}
		if _, err := stmt.Exec(
			runID, row.Tick, row.CarID, row.X, row.Y,
			row.DestX, row.DestY, row.Status.String(), row.SpawnTick, arrival,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("output: insert row: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("output: commit: %w", err)
	}
	log.Infof("output: wrote %s rows to sqlite %s (run %s)", humanize.Comma(int64(len(rows))), path, runID)
	return nil
}
