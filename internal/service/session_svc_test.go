package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"etsy_sales_collector/pkg/etsy"
)

// ==================== 测试辅助 ====================

// mockEtsyAPI 模拟 users/me 和 receipts 两个端点
type mockEtsyAPI struct {
	shopID       int64
	totalCount   int
	meCalls      int
	offsetsSeen  []int
	failAtOffset int // -1 表示不注入失败
}

func newMockEtsyAPI(shopID int64, total int) *mockEtsyAPI {
	return &mockEtsyAPI{shopID: shopID, totalCount: total, failAtOffset: -1}
}

func (m *mockEtsyAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/application/users/me", func(w http.ResponseWriter, r *http.Request) {
		m.meCalls++
		json.NewEncoder(w).Encode(map[string]int64{"user_id": m.shopID, "shop_id": m.shopID})
	})
	mux.HandleFunc(fmt.Sprintf("/application/shops/%d/receipts", m.shopID), func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		offset, _ := strconv.Atoi(q.Get("offset"))
		limit, _ := strconv.Atoi(q.Get("limit"))
		m.offsetsSeen = append(m.offsetsSeen, offset)

		if q.Get("was_paid") != "true" || q.Get("was_canceled") != "false" {
			http.Error(w, "missing filters", http.StatusBadRequest)
			return
		}
		if m.failAtOffset >= 0 && offset == m.failAtOffset {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// 按 offset/limit 切出一页
		var results []map[string]interface{}
		for i := offset; i < m.totalCount && i < offset+limit; i++ {
			results = append(results, map[string]interface{}{
				"receipt_id":        i + 1,
				"seller_user_id":    m.shopID,
				"created_timestamp": 1700000000,
				"transactions":      []interface{}{},
			})
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count":   m.totalCount,
			"results": results,
		})
	})
	return mux
}

func newSessionAgainst(srv *httptest.Server) *Session {
	client := etsy.NewClient(etsy.Config{APIKey: "testkey", BaseURL: srv.URL})
	return NewSession(client, &TokenBundle{AccessToken: "a", RefreshToken: "r"})
}

// ==================== 单元测试 ====================

func TestSession_IdentityCached(t *testing.T) {
	api := newMockEtsyAPI(42, 0)
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	session := newSessionAgainst(srv)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		shopID, err := session.ResolveIdentity(ctx)
		if err != nil {
			t.Fatalf("解析身份失败: %v", err)
		}
		if shopID != 42 {
			t.Errorf("shop_id = %d, want 42", shopID)
		}
	}
	// 会话生命周期内只调用一次远端
	if api.meCalls != 1 {
		t.Errorf("users/me 调用次数 = %d, want 1", api.meCalls)
	}
}

func TestSession_FetchAllReceiptsPagination(t *testing.T) {
	// 250 条记录，页大小 100 → 恰好 3 页，offset 0/100/200
	api := newMockEtsyAPI(42, 250)
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	receipts, err := newSessionAgainst(srv).FetchAllReceipts(context.Background())
	if err != nil {
		t.Fatalf("拉取失败: %v", err)
	}

	if len(receipts) != 250 {
		t.Errorf("receipts = %d, want 250", len(receipts))
	}
	wantOffsets := []int{0, 100, 200}
	if len(api.offsetsSeen) != len(wantOffsets) {
		t.Fatalf("页数 = %d, want %d (offsets: %v)", len(api.offsetsSeen), len(wantOffsets), api.offsetsSeen)
	}
	for i, offset := range api.offsetsSeen {
		if offset != wantOffsets[i] {
			t.Errorf("offsets[%d] = %d, want %d", i, offset, wantOffsets[i])
		}
	}
}

func TestSession_FetchAllReceiptsEmptyShop(t *testing.T) {
	// count = 0：总数未知不等于 0，首页必须发出去，之后立即终止
	api := newMockEtsyAPI(42, 0)
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	receipts, err := newSessionAgainst(srv).FetchAllReceipts(context.Background())
	if err != nil {
		t.Fatalf("拉取失败: %v", err)
	}
	if len(receipts) != 0 {
		t.Errorf("receipts = %d, want 0", len(receipts))
	}
	if len(api.offsetsSeen) != 1 {
		t.Errorf("页数 = %d, want 1", len(api.offsetsSeen))
	}
}

func TestSession_FetchAbortsOnPageFailure(t *testing.T) {
	// 第二页失败：整个拉取中止，不返回部分结果
	api := newMockEtsyAPI(42, 250)
	api.failAtOffset = 100
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	_, err := newSessionAgainst(srv).FetchAllReceipts(context.Background())
	if !errors.Is(err, ErrRemoteAPI) {
		t.Fatalf("err = %v, want ErrRemoteAPI", err)
	}
	// 错误信息带上失败时的 offset 和累计数，便于人工续传
	if !strings.Contains(err.Error(), "offset=100") {
		t.Errorf("错误信息缺少 offset 上下文: %v", err)
	}
	if !strings.Contains(err.Error(), "fetched=100") {
		t.Errorf("错误信息缺少累计数上下文: %v", err)
	}
}

func TestSession_IdentityFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newSessionAgainst(srv).ResolveIdentity(context.Background())
	if !errors.Is(err, ErrRemoteAPI) {
		t.Errorf("err = %v, want ErrRemoteAPI", err)
	}
}
