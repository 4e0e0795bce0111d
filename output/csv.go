package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
)

// csvHeader 历史表CSV的列定义
var csvHeader = []string{
	"tick", "car_id", "x", "y", "dest_x", "dest_y",
	"status", "spawn_tick", "arrival_tick",
}

// WriteCSV 把历史表写入CSV文件
// 功能：行式落盘，一行对应一条(tick, 车辆)记录
// 参数：path-目标文件路径，rows-展平的历史表
// 返回：写入错误
// 说明：arrival_tick在车辆未到达时写空串
func WriteCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create csv %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("output: write csv header: %w", err)
	}
	for _, row := range rows {
		arrival := ""
		if row.ArrivalTick >= 0 {
			arrival = strconv.Itoa(int(row.ArrivalTick))
		}
		record := []string{
			strconv.Itoa(int(row.Tick)),
			strconv.Itoa(int(row.CarID)),
			strconv.Itoa(int(row.X)),
			strconv.Itoa(int(row.Y)),
			strconv.Itoa(int(row.DestX)),
			strconv.Itoa(int(row.DestY)),
			row.Status.String(),
			strconv.Itoa(int(row.SpawnTick)),
			arrival,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("output: write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("output: flush csv: %w", err)
	}
	log.Infof("output: wrote %s rows to %s", humanize.Comma(int64(len(rows))), path)
	return nil
}
