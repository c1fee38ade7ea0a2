package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"etsy_sales_collector/internal/model"
)

// 报表统计的固定历史窗口：2018-01 .. 2024-12
const (
	ReportStartYear = 2018
	ReportEndYear   = 2024
)

// ==================== 接口定义 ====================

// MonthlyAggregate 某店铺某个自然月的汇总
// Revenue / Units 为 nil 表示该月没有任何成交记录 (区别于零销售额)
type MonthlyAggregate struct {
	ShopIndex int // 店铺在枚举序列中的位置，从 1 开始
	ShopID    int64
	Year      int
	Month     time.Month
	Revenue   *float64
	Units     *int64
}

// SalesRepository 销售数据仓储接口
// shops / sales 行只由这里写入
//
// 契约说明：EnsureShop 是先查后插，不是原子 upsert；并发首次摄入同一店铺
// 可能撞唯一索引，调用方需按店铺串行摄入，或将约束冲突视为"已存在"
type SalesRepository interface {
	ShopExists(ctx context.Context, shopID int64) (bool, error)

	// EnsureShop 店铺不存在时创建，存在时无副作用
	EnsureShop(ctx context.Context, shopID int64) error

	// InsertSales 批量插入交易行，不去重；重复摄入同一批 receipt 会产生重复行
	InsertSales(ctx context.Context, sales []model.Sale) error

	// ListShops 按主键升序枚举所有店铺，报表用它决定参与者编号
	ListShops(ctx context.Context) ([]model.Shop, error)

	// AggregateByShopAndMonth 对每个店铺、固定窗口内的每个自然月
	// 汇总 total_price 和 quantity；无记录的月份以 nil 标记
	AggregateByShopAndMonth(ctx context.Context) ([]MonthlyAggregate, error)
}

// ==================== 仓储实现 ====================

type salesRepo struct {
	db *gorm.DB
}

// NewSalesRepository 创建销售数据仓储
func NewSalesRepository(db *gorm.DB) SalesRepository {
	return &salesRepo{db: db}
}

func (r *salesRepo) ShopExists(ctx context.Context, shopID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Shop{}).
		Where("shop_id = ?", shopID).
		Count(&count).Error
	return count > 0, err
}

func (r *salesRepo) EnsureShop(ctx context.Context, shopID int64) error {
	exists, err := r.ShopExists(ctx, shopID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return r.db.WithContext(ctx).Create(&model.Shop{ShopID: shopID}).Error
}

func (r *salesRepo) InsertSales(ctx context.Context, sales []model.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&sales).Error
}

func (r *salesRepo) ListShops(ctx context.Context) ([]model.Shop, error) {
	var shops []model.Shop
	err := r.db.WithContext(ctx).Order("id ASC").Find(&shops).Error
	return shops, err
}

// monthlyTotals 单店铺单月的 SUM 查询
type monthlyTotals struct {
	Revenue *float64
	Units   *int64
}

func (r *salesRepo) AggregateByShopAndMonth(ctx context.Context) ([]MonthlyAggregate, error) {
	shops, err := r.ListShops(ctx)
	if err != nil {
		return nil, err
	}

	var rows []MonthlyAggregate
	for i, shop := range shops {
		for year := ReportStartYear; year <= ReportEndYear; year++ {
			for month := time.January; month <= time.December; month++ {
				start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
				end := start.AddDate(0, 1, 0)

				var totals monthlyTotals
				err := r.db.WithContext(ctx).
					Model(&model.Sale{}).
					Select("SUM(total_price) AS revenue, SUM(quantity) AS units").
					Where("shop_id = ? AND sale_date >= ? AND sale_date < ?", shop.ShopID, start, end).
					Scan(&totals).Error
				if err != nil {
					return nil, err
				}

				rows = append(rows, MonthlyAggregate{
					ShopIndex: i + 1,
					ShopID:    shop.ShopID,
					Year:      year,
					Month:     month,
					Revenue:   totals.Revenue,
					Units:     totals.Units,
				})
			}
		}
	}
	return rows, nil
}
