package service

import (
	"context"
	"log"
	"time"

	"etsy_sales_collector/internal/model"
	"etsy_sales_collector/internal/repository"
	"etsy_sales_collector/pkg/etsy"
)

// IngestResult 一次摄入的结果，供调用方记日志/展示
type IngestResult struct {
	ShopID      int64 `json:"shop_id"`
	RecordCount int   `json:"record_count"`
}

// IngestService 摄入管线
// 流程：换 Token → 解析卖家身份 → 拉全量订单 → 归一化 → 落库
// 同步执行，任何一步失败就停在那一步，已完成步骤的写入不回滚
type IngestService struct {
	auth      *AuthService
	client    *etsy.Client
	salesRepo repository.SalesRepository
}

// NewIngestService 工厂方法
func NewIngestService(auth *AuthService, client *etsy.Client, salesRepo repository.SalesRepository) *IngestService {
	return &IngestService{
		auth:      auth,
		client:    client,
		salesRepo: salesRepo,
	}
}

// Run 回调处理的唯一入口，每次回调执行一次
// 错误不在这里消化：repository.ErrSessionNotFound / ErrOAuthExchange /
// ErrRemoteAPI / 存储错误原样向上抛，由 HTTP 层翻译
func (s *IngestService) Run(ctx context.Context, code, state string) (*IngestResult, error) {
	bundle, err := s.auth.Exchange(ctx, code, state)
	if err != nil {
		return nil, err
	}

	session := NewSession(s.client, bundle)
	shopID, err := session.ResolveIdentity(ctx)
	if err != nil {
		return nil, err
	}

	log.Printf("[Ingest] 开始拉取店铺 %d 的销售数据", shopID)
	receipts, err := session.FetchAllReceipts(ctx)
	if err != nil {
		return nil, err
	}

	sales := normalizeReceipts(shopID, receipts)

	if err := s.salesRepo.EnsureShop(ctx, shopID); err != nil {
		return nil, err
	}
	if err := s.salesRepo.InsertSales(ctx, sales); err != nil {
		return nil, err
	}

	log.Printf("[Ingest] 店铺 %d 入库 %d 条交易记录", shopID, len(sales))
	return &IngestResult{ShopID: shopID, RecordCount: len(sales)}, nil
}

// normalizeReceipts 把原始 receipt 转成库表结构
// 只保留当前授权店铺是卖家的 receipt，其余整单丢弃
func normalizeReceipts(shopID int64, receipts []etsy.ReceiptResp) []model.Sale {
	var sales []model.Sale
	for _, receipt := range receipts {
		if receipt.SellerUserID != shopID {
			continue
		}
		saleDate := time.Unix(receipt.CreatedTimestamp, 0)
		for _, tx := range receipt.Transactions {
			unitPrice := tx.Price.ToFloat()
			sales = append(sales, model.Sale{
				ReceiptID:     receipt.ReceiptID,
				TransactionID: tx.TransactionID,
				ShopID:        shopID,
				ListingID:     tx.ListingID,
				ProductID:     tx.ProductID,
				Title:         tx.Title,
				Quantity:      tx.Quantity,
				UnitPrice:     unitPrice,
				TotalPrice:    unitPrice * float64(tx.Quantity),
				SaleDate:      saleDate,
			})
		}
	}
	return sales
}
