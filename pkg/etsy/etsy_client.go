package etsy

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Etsy 官方端点
const (
	DefaultBaseURL    = "https://openapi.etsy.com/v3"
	DefaultTokenURL   = "https://api.etsy.com/v3/public/oauth/token"
	DefaultConnectURL = "https://www.etsy.com/oauth/connect"
)

// Config 客户端配置
// BaseURL / TokenURL 可覆盖，测试时指向本地 mock 服务
type Config struct {
	APIKey     string
	BaseURL    string
	TokenURL   string
	ConnectURL string
	Timeout    time.Duration
}

// Client Etsy v3 API 客户端
// 所有请求统一带 x-api-key；需要授权的请求额外带 Bearer Token
type Client struct {
	apiKey     string
	baseURL    string
	tokenURL   string
	connectURL string
	http       *resty.Client
}

// NewClient 创建 Etsy 客户端
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.ConnectURL == "" {
		cfg.ConnectURL = DefaultConnectURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	client := resty.New()
	client.SetTimeout(cfg.Timeout)
	// Etsy 要求 Header 中必须带 x-api-key
	client.SetHeader("x-api-key", cfg.APIKey)

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		tokenURL:   cfg.TokenURL,
		connectURL: cfg.ConnectURL,
		http:       client,
	}
}

// APIKey 返回应用的 keystring (即 OAuth client_id)
func (c *Client) APIKey() string {
	return c.apiKey
}

// ConnectURL 返回授权跳转端点
func (c *Client) ConnectURL() string {
	return c.connectURL
}

// Ping 请求 Etsy 的公共健康检查接口，验证 keystring 是否有效
func (c *Client) Ping(ctx context.Context) (*PingResp, error) {
	var out PingResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(c.baseURL + "/application/openapi-ping")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("etsy ping failed: status %d: %s", resp.StatusCode(), resp.String())
	}
	return &out, nil
}

// ExchangeToken 用授权码 + verifier 换取 Token
func (c *Client) ExchangeToken(ctx context.Context, code, verifier, redirectURI string) (*TokenResp, error) {
	var out TokenResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "authorization_code",
			"client_id":     c.apiKey,
			"redirect_uri":  redirectURI,
			"code":          code,
			"code_verifier": verifier,
		}).
		SetResult(&out).
		Post(c.tokenURL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("etsy refused token exchange: status %d: %s", resp.StatusCode(), resp.String())
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("etsy token response missing access_token: %s", resp.String())
	}
	return &out, nil
}

// GetMe 查询当前授权用户
func (c *Client) GetMe(ctx context.Context, accessToken string) (*UserResp, error) {
	var out UserResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&out).
		Get(c.baseURL + "/application/users/me")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("etsy api error: status %d: %s", resp.StatusCode(), resp.String())
	}
	return &out, nil
}

// GetShopReceipts 分页查询店铺订单
// 过滤条件在服务端生效：只取已支付且未取消的订单
func (c *Client) GetShopReceipts(ctx context.Context, accessToken string, shopID int64, limit, offset int) (*ReceiptListResp, error) {
	var out ReceiptListResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParams(map[string]string{
			"limit":        strconv.Itoa(limit),
			"offset":       strconv.Itoa(offset),
			"was_paid":     "true",
			"was_canceled": "false",
		}).
		SetResult(&out).
		Get(fmt.Sprintf("%s/application/shops/%d/receipts", c.baseURL, shopID))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("etsy api error: status %d: %s", resp.StatusCode(), resp.String())
	}
	return &out, nil
}
