package services

import (
	"fmt"
	"renthub/pkg/logger"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// OverdueScheduler 逾期缴费扫描调度器
// 定时把到期未付的pending缴费记录置为overdue
type OverdueScheduler struct {
	db      *gorm.DB
	cron    *cron.Cron
	spec    string
	running bool
}

// NewOverdueScheduler 创建逾期扫描调度器
func NewOverdueScheduler(db *gorm.DB) *OverdueScheduler {
	return &OverdueScheduler{
		db:   db,
		cron: cron.New(),
		spec: "@hourly",
	}
}

// Start 启动调度器，启动时先执行一次全量扫描
func (s *OverdueScheduler) Start() error {
	if s.running {
		return fmt.Errorf("调度器已经在运行")
	}

	logger.GetLogger().Info("启动逾期缴费扫描调度器")

	if _, err := s.cron.AddFunc(s.spec, s.sweep); err != nil {
		return fmt.Errorf("注册逾期扫描任务失败: %v", err)
	}

	s.cron.Start()
	s.running = true

	// 启动即扫一次，避免等待整点
	go s.sweep()

	return nil
}

// Stop 停止调度器
func (s *OverdueScheduler) Stop() {
	if !s.running {
		return
	}

	logger.GetLogger().Info("停止逾期缴费扫描调度器")
	s.cron.Stop()
	s.running = false
}

// sweep 扫描失败只记录日志，不影响主服务
func (s *OverdueScheduler) sweep() {
	affected, err := NewPaymentServiceWithDB(s.db).MarkOverduePending(time.Now())
	if err != nil {
		logger.GetLogger().Errorf("逾期缴费扫描失败: %v", err)
		return
	}
	if affected > 0 {
		logger.GetLogger().Infof("逾期缴费扫描完成，更新 %d 条记录", affected)
	}
}
