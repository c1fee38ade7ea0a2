package service

import (
	"context"
	"fmt"
	"log"

	"etsy_sales_collector/pkg/etsy"
)

// 分页拉取订单的固定页大小
const receiptPageSize = 100

// Session 一次摄入流程内的已授权会话
// 持有本次换到的 Token，单次使用，不做自动刷新
type Session struct {
	client *etsy.Client
	token  *TokenBundle

	// 卖家身份在会话生命周期内只解析一次
	shopID   int64
	resolved bool
}

// NewSession 从 TokenBundle 构建会话
func NewSession(client *etsy.Client, token *TokenBundle) *Session {
	return &Session{
		client: client,
		token:  token,
	}
}

// ResolveIdentity 查询当前授权卖家的 shop_id，结果缓存
func (s *Session) ResolveIdentity(ctx context.Context) (int64, error) {
	if s.resolved {
		return s.shopID, nil
	}

	user, err := s.client.GetMe(ctx, s.token.AccessToken)
	if err != nil {
		log.Printf("[Session] 获取 shop_id 失败: %v", err)
		return 0, fmt.Errorf("%w: getting shop id: %v", ErrRemoteAPI, err)
	}

	s.shopID = user.ShopID
	s.resolved = true
	return s.shopID, nil
}

// FetchAllReceipts 拉取该卖家的全部订单
// 固定页大小 100，从 offset 0 开始；总数在首页响应之前未知 (-1 哨兵，
// 不能用 0，否则空店铺和未知状态混在一起会提前退出)
// 任何一页失败立即中止，不返回部分结果，也不重试
func (s *Session) FetchAllReceipts(ctx context.Context) ([]etsy.ReceiptResp, error) {
	shopID, err := s.ResolveIdentity(ctx)
	if err != nil {
		return nil, err
	}

	offset := 0
	total := -1
	var results []etsy.ReceiptResp

	for total == -1 || len(results) < total {
		page, err := s.client.GetShopReceipts(ctx, s.token.AccessToken, shopID, receiptPageSize, offset)
		if err != nil {
			log.Printf("[Session] 拉取订单失败 shop=%d offset=%d total=%d fetched=%d: %v",
				shopID, offset, total, len(results), err)
			return nil, fmt.Errorf("%w: receipts for shop %d (offset=%d, total=%d, fetched=%d): %v",
				ErrRemoteAPI, shopID, offset, total, len(results), err)
		}

		// 总数以首页为准，后续页不再变
		total = page.Count
		if len(page.Results) == 0 && len(results) < total {
			// 远端声称还有数据却返回空页，继续循环只会死转
			return nil, fmt.Errorf("%w: empty receipts page for shop %d (offset=%d, total=%d, fetched=%d)",
				ErrRemoteAPI, shopID, offset, total, len(results))
		}
		results = append(results, page.Results...)
		offset += receiptPageSize
	}

	return results, nil
}
