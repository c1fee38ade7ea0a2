package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"etsy_sales_collector/internal/repository"
)

// 握手记录的存活时间
// 授权流程几分钟内就会完成，留 24 小时余量后清理
const stateMaxAge = 24 * time.Hour

// StateTask 定时清理陈旧的 OAuth 握手记录
type StateTask struct {
	StateRepo repository.StateRepository
	Cron      *cron.Cron
}

// NewStateTask 工厂方法
func NewStateTask(stateRepo repository.StateRepository) *StateTask {
	return &StateTask{
		StateRepo: stateRepo,
		Cron:      cron.New(),
	}
}

// Start 启动定时任务
func (t *StateTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		log.Println("[Task] 服务启动，正在执行首次握手记录清理...")
		t.pruneJob(ctx)
	}()

	// 每小时清一次
	_, err := t.Cron.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.pruneJob(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动握手清理定时任务: %v", err)
	}

	t.Cron.Start()
	log.Println("握手记录清理任务已启动 (每小时一次)")
}

// Stop 停止定时任务
func (t *StateTask) Stop() {
	t.Cron.Stop()
}

func (t *StateTask) pruneJob(ctx context.Context) {
	cutoff := time.Now().Add(-stateMaxAge)
	deleted, err := t.StateRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("[Cron] 清理握手记录失败: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[Cron] 已清理 %d 条陈旧握手记录", deleted)
	}
}
