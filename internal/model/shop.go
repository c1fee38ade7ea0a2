package model

// Shop 卖家店铺
// 首次为该店铺入库交易时惰性创建，shop_id 来自 Etsy 平台
type Shop struct {
	BaseModel
	ShopID int64 `gorm:"uniqueIndex;not null"` // 对应 Etsy 平台的 shop_id
}

func (Shop) TableName() string {
	return "shops"
}
