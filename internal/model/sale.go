package model

import (
	"time"
)

// Sale 一笔已归一化的交易行
// 一张 receipt 可以包含多条 transaction；同一 receipt 重复摄入会产生重复行
type Sale struct {
	BaseModel
	ReceiptID     int64 `gorm:"index;not null"`
	TransactionID int64 `gorm:"not null"` // receipt 内唯一
	ShopID        int64 `gorm:"index;not null"`

	ListingID int64
	ProductID int64
	Title     string `gorm:"size:255"`

	Quantity   int     `gorm:"not null"`
	UnitPrice  float64 `gorm:"not null"` // amount / divisor，divisor 为 0 时按 1 处理
	TotalPrice float64 `gorm:"not null"` // unit_price * quantity，冗余存储方便报表

	SaleDate time.Time `gorm:"index;not null"` // receipt 创建时间，区别于入库时间 CreatedAt
}

func (Sale) TableName() string {
	return "sales"
}
