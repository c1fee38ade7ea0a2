package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"etsy_sales_collector/internal/model"
	"etsy_sales_collector/internal/repository"
	"etsy_sales_collector/pkg/etsy"
)

// ==================== 测试辅助 ====================

const testRedirectURI = "https://example.com/api/oauth/callback"

func setupStateRepo(t *testing.T) repository.StateRepository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.OAuthState{}); err != nil {
		t.Fatalf("自动建表失败: %v", err)
	}
	return repository.NewStateRepository(db)
}

func newTestClient(apiKey, baseURL, tokenURL string) *etsy.Client {
	return etsy.NewClient(etsy.Config{
		APIKey:   apiKey,
		BaseURL:  baseURL,
		TokenURL: tokenURL,
	})
}

// ==================== 单元测试 ====================

func TestAuthService_GenerateAuthURL(t *testing.T) {
	stateRepo := setupStateRepo(t)
	svc := NewAuthService(stateRepo, newTestClient("testkey", "", ""), testRedirectURI)

	authURL, err := svc.GenerateAuthURL(context.Background())
	if err != nil {
		t.Fatalf("生成授权链接失败: %v", err)
	}

	parsed, err := url.Parse(authURL)
	if err != nil {
		t.Fatalf("授权链接解析失败: %v", err)
	}
	q := parsed.Query()

	if q.Get("response_type") != "code" {
		t.Errorf("response_type = %s, want code", q.Get("response_type"))
	}
	if q.Get("client_id") != "testkey" {
		t.Errorf("client_id = %s, want testkey", q.Get("client_id"))
	}
	if q.Get("redirect_uri") != testRedirectURI {
		t.Errorf("redirect_uri = %s, want %s", q.Get("redirect_uri"), testRedirectURI)
	}
	if q.Get("scope") != "transactions_r shops_r" {
		t.Errorf("scope = %s", q.Get("scope"))
	}
	if q.Get("code_challenge_method") != "S256" {
		t.Errorf("code_challenge_method = %s, want S256", q.Get("code_challenge_method"))
	}
	if q.Get("code_challenge") == "" {
		t.Error("缺少 code_challenge")
	}

	// URL 里的 state 必须已落库
	state := q.Get("state")
	if state == "" {
		t.Fatal("缺少 state")
	}
	valid, err := svc.StateIsValid(context.Background(), state)
	if err != nil {
		t.Fatalf("校验 state 失败: %v", err)
	}
	if !valid {
		t.Error("授权链接里的 state 未登记")
	}
}

func TestAuthService_GeneratedStatesAreFresh(t *testing.T) {
	stateRepo := setupStateRepo(t)
	svc := NewAuthService(stateRepo, newTestClient("testkey", "", ""), testRedirectURI)
	ctx := context.Background()

	// 连续生成的 state 互不重复 (碰撞时会重摇)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		authURL, err := svc.GenerateAuthURL(ctx)
		if err != nil {
			t.Fatalf("第 %d 次生成失败: %v", i, err)
		}
		parsed, _ := url.Parse(authURL)
		state := parsed.Query().Get("state")
		if seen[state] {
			t.Fatalf("state %s 重复出现", state)
		}
		seen[state] = true
	}
}

func TestAuthService_ExchangeSuccess(t *testing.T) {
	stateRepo := setupStateRepo(t)

	// mock OAuth Token 端点，校验换 Token 请求的表单内容
	var gotForm url.Values
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotForm = r.PostForm
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  "a",
			"refresh_token": "r",
			"expires_in":    3600,
		})
	}))
	defer tokenSrv.Close()

	svc := NewAuthService(stateRepo, newTestClient("testkey", "", tokenSrv.URL), testRedirectURI)
	ctx := context.Background()

	if err := stateRepo.Register(ctx, "s1", "v1"); err != nil {
		t.Fatalf("登记握手失败: %v", err)
	}

	before := time.Now()
	bundle, err := svc.Exchange(ctx, "c1", "s1")
	if err != nil {
		t.Fatalf("换取 Token 失败: %v", err)
	}

	if bundle.AccessToken != "a" {
		t.Errorf("access_token = %s, want a", bundle.AccessToken)
	}
	if bundle.RefreshToken != "r" {
		t.Errorf("refresh_token = %s, want r", bundle.RefreshToken)
	}
	// 相对秒数换算成绝对时间点
	wantExpiry := before.Add(3600 * time.Second)
	if bundle.ExpiresAt.Before(wantExpiry) || bundle.ExpiresAt.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("expires_at = %v, want ≈ %v", bundle.ExpiresAt, wantExpiry)
	}

	// 请求里必须带上登记时的 verifier
	if gotForm.Get("grant_type") != "authorization_code" {
		t.Errorf("grant_type = %s", gotForm.Get("grant_type"))
	}
	if gotForm.Get("code") != "c1" {
		t.Errorf("code = %s, want c1", gotForm.Get("code"))
	}
	if gotForm.Get("code_verifier") != "v1" {
		t.Errorf("code_verifier = %s, want v1", gotForm.Get("code_verifier"))
	}
	if gotForm.Get("client_id") != "testkey" {
		t.Errorf("client_id = %s, want testkey", gotForm.Get("client_id"))
	}
	if gotForm.Get("redirect_uri") != testRedirectURI {
		t.Errorf("redirect_uri = %s", gotForm.Get("redirect_uri"))
	}
}

func TestAuthService_ExchangeUnknownState(t *testing.T) {
	svc := NewAuthService(setupStateRepo(t), newTestClient("testkey", "", ""), testRedirectURI)

	_, err := svc.Exchange(context.Background(), "c1", "never-registered")
	if !errors.Is(err, repository.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestAuthService_ExchangeRemoteRejection(t *testing.T) {
	stateRepo := setupStateRepo(t)

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
	}))
	defer tokenSrv.Close()

	svc := NewAuthService(stateRepo, newTestClient("testkey", "", tokenSrv.URL), testRedirectURI)
	ctx := context.Background()
	stateRepo.Register(ctx, "s1", "v1")

	_, err := svc.Exchange(ctx, "used-code", "s1")
	if !errors.Is(err, ErrOAuthExchange) {
		t.Errorf("err = %v, want ErrOAuthExchange", err)
	}
	if err != nil && !strings.Contains(err.Error(), "400") {
		t.Errorf("错误信息应包含远端状态码: %v", err)
	}
}
