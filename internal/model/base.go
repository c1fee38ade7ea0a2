package model

import (
	"time"
)

// BaseModel 公共字段
// 本系统的表都是只插不改，所以不带 UpdatedAt / 软删除
type BaseModel struct {
	ID        int64     `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
