package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"etsy_sales_collector/internal/model"
)

// ==================== 接口定义 ====================

// StateRepository OAuth 握手状态仓储接口
// oauth_states 行只由这里写入，其他组件不直接动库
type StateRepository interface {
	// Register 登记一次待完成的握手，副作用是新增一行
	Register(ctx context.Context, state, codeVerifier string) error

	// Exists 纯存在性检查，用于回调入口快速拦截伪造/失效的 state
	Exists(ctx context.Context, state string) (bool, error)

	// Resolve 取出 state 对应的握手记录
	// 每次合法回调恰好调用一次，紧接着换 Token；查无记录返回 ErrSessionNotFound
	Resolve(ctx context.Context, state string) (*model.OAuthState, error)

	// DeleteOlderThan 清理指定时间之前登记的陈旧握手，返回删除行数
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ==================== 仓储实现 ====================

type stateRepo struct {
	db *gorm.DB
}

// NewStateRepository 创建握手状态仓储
func NewStateRepository(db *gorm.DB) StateRepository {
	return &stateRepo{db: db}
}

func (r *stateRepo) Register(ctx context.Context, state, codeVerifier string) error {
	return r.db.WithContext(ctx).Create(&model.OAuthState{
		State:        state,
		CodeVerifier: codeVerifier,
	}).Error
}

func (r *stateRepo) Exists(ctx context.Context, state string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.OAuthState{}).
		Where("state = ?", state).
		Count(&count).Error
	return count > 0, err
}

func (r *stateRepo) Resolve(ctx context.Context, state string) (*model.OAuthState, error) {
	var row model.OAuthState
	err := r.db.WithContext(ctx).Where("state = ?", state).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *stateRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.OAuthState{})
	return result.RowsAffected, result.Error
}
