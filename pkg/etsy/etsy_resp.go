package etsy

import (
	"bytes"
	"fmt"
	"strconv"
)

// ==========================================
// DTO: 用于接收 Etsy API 返回的原始 JSON 数据
// 字段在边界上显式建模，畸形响应在解码时立刻失败
// ==========================================

// Amount 定点金额的分子部分
// Etsy 正式接口返回裸数字，部分历史接口返回带引号的小数字符串，这里两者都接受
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	*a = Amount(v)
	return nil
}

// Money Etsy 金额 {amount, divisor}
type Money struct {
	Amount       Amount  `json:"amount"`
	Divisor      float64 `json:"divisor"`
	CurrencyCode string  `json:"currency_code"`
}

// ToFloat 转换为浮点数
// divisor 为 0 时按 1 处理，避免除零
func (m Money) ToFloat() float64 {
	d := m.Divisor
	if d == 0 {
		d = 1
	}
	return float64(m.Amount) / d
}

// UserResp Etsy 当前用户 API 响应
// GET /v3/application/users/me
type UserResp struct {
	UserID int64 `json:"user_id"`
	ShopID int64 `json:"shop_id"`
}

// TokenResp OAuth 换取 Token 响应
// POST /v3/public/oauth/token
type TokenResp struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	Error        string `json:"error,omitempty"`
}

// TransactionResp 订单行项目
type TransactionResp struct {
	TransactionID int64  `json:"transaction_id"`
	Title         string `json:"title"`
	Quantity      int    `json:"quantity"`
	ListingID     int64  `json:"listing_id"`
	ProductID     int64  `json:"product_id"`
	Price         Money  `json:"price"`
}

// ReceiptResp Etsy 订单原始数据
type ReceiptResp struct {
	ReceiptID        int64             `json:"receipt_id"`
	SellerUserID     int64             `json:"seller_user_id"`
	BuyerUserID      int64             `json:"buyer_user_id"`
	CreatedTimestamp int64             `json:"created_timestamp"`
	Transactions     []TransactionResp `json:"transactions"`
}

// ReceiptListResp 订单列表响应
// GET /v3/application/shops/{shop_id}/receipts
type ReceiptListResp struct {
	Count   int           `json:"count"`
	Results []ReceiptResp `json:"results"`
}

// PingResp Etsy Ping 响应
// GET /v3/application/openapi-ping
type PingResp struct {
	ApplicationID int64 `json:"application_id"`
}

// ErrorResp Etsy 通用错误响应
type ErrorResp struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
