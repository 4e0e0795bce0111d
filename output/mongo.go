package output

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoBatchSize = 1000 // 单次InsertMany的文档数上限

// WriteMongo 把历史表写入MongoDB集合
// 功能：连接数据库并分批插入全部历史行，每行一个文档
// 参数：uri-连接字符串，db-数据库名，col-集合名，
// runID-本次运行标识，rows-展平的历史表
// 返回：写入错误
// 说明：仅当配置了output.uri时启用；arrival_tick未到达写null
func WriteMongo(uri, db, col, runID string, rows []Row) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("output: connect mongo: %w", err)
	}
	defer client.Disconnect(context.Background())

	collection := client.Database(db).Collection(col)
	docs := make([]interface{}, 0, mongoBatchSize)
	flush := func() error {
		if len(docs) == 0 {
			return nil
		}
		if _, err := collection.InsertMany(context.Background(), docs); err != nil {
			return fmt.Errorf("output: insert mongo batch: %w", err)
		}
		docs = docs[:0]
		return nil
	}
	for _, row := range rows {
		var arrival any
		if row.ArrivalTick >= 0 {
			arrival = row.ArrivalTick
		}
		docs = append(docs, bson.M{
			"run_id":       runID,
			"tick":         row.Tick,
			"car_id":       row.CarID,
			"x":            row.X,
			"y":            row.Y,
			"dest_x":       row.DestX,
			"dest_y":       row.DestY,
			"status":       row.Status.String(),
			"spawn_tick":   row.SpawnTick,
			"arrival_tick": arrival,
		})
		if len(docs) >= mongoBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}
	log.Infof("output: wrote %s rows to mongo %s.%s (run %s)", humanize.Comma(int64(len(rows))), db, col, runID)
	return nil
}
