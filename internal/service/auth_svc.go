package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"etsy_sales_collector/internal/repository"
	"etsy_sales_collector/pkg/etsy"
	"etsy_sales_collector/pkg/utils"
)

// 授权范围：只读交易和店铺信息
const oauthScopes = "transactions_r shops_r"

// state 生成时的防碰撞重试上限
const maxStateAttempts = 5

// TokenBundle 一次授权换到的凭证
// ExpiresAt 是绝对时间点，由响应里的相对秒数换算而来
type TokenBundle struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// AuthService 负责授权链接生成和授权码换 Token
type AuthService struct {
	stateRepo   repository.StateRepository
	client      *etsy.Client
	redirectURI string
}

// NewAuthService 工厂方法
func NewAuthService(stateRepo repository.StateRepository, client *etsy.Client, redirectURI string) *AuthService {
	return &AuthService{
		stateRepo:   stateRepo,
		client:      client,
		redirectURI: redirectURI,
	}
}

// GenerateAuthURL 生成授权链接
// 生成 PKCE 参数并登记握手记录，返回给调用方引导用户跳转
func (s *AuthService) GenerateAuthURL(ctx context.Context) (string, error) {
	verifier, err := utils.NewCodeVerifier()
	if err != nil {
		return "", fmt.Errorf("生成 code verifier 失败: %w", err)
	}
	challenge := utils.GenerateCodeChallenge(verifier)

	state, err := s.newUniqueState(ctx)
	if err != nil {
		return "", err
	}

	if err := s.stateRepo.Register(ctx, state, verifier); err != nil {
		return "", fmt.Errorf("登记握手状态失败: %w", err)
	}

	/*
		etsy 官网案例：
		   https://www.etsy.com/oauth/connect?
		     response_type=code
		     &redirect_uri=https://www.example.com/some/location
		     &scope=transactions_r%20transactions_w
		     &client_id=1aa2bb33c44d55eeeeee6fff&state=superstate
		     &code_challenge=DSWlW2Abh-cf8CeLL8-g3hQ2WQyYdKyiu83u_s7nRhI
		     &code_challenge_method=S256
	*/
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", s.client.APIKey())
	params.Set("redirect_uri", s.redirectURI)
	params.Set("scope", oauthScopes)
	params.Set("state", state)
	params.Set("code_challenge", challenge)
	params.Set("code_challenge_method", "S256")

	return s.client.ConnectURL() + "?" + params.Encode(), nil
}

// newUniqueState 生成一个未被占用的 state
// 16 字节随机串撞库概率极低，但存活 state 之间必须唯一，撞上就重摇
func (s *AuthService) newUniqueState(ctx context.Context) (string, error) {
	for i := 0; i < maxStateAttempts; i++ {
		state, err := utils.NewState()
		if err != nil {
			return "", fmt.Errorf("生成 state 失败: %w", err)
		}
		exists, err := s.stateRepo.Exists(ctx, state)
		if err != nil {
			return "", err
		}
		if !exists {
			return state, nil
		}
	}
	return "", fmt.Errorf("state 生成连续碰撞 %d 次", maxStateAttempts)
}

// StateIsValid 回调入口的 state 校验
func (s *AuthService) StateIsValid(ctx context.Context, state string) (bool, error) {
	return s.stateRepo.Exists(ctx, state)
}

// Exchange 用授权码换取 Token
// 查出 state 绑定的 verifier 后向 Etsy 发起 authorization_code 交换
// 查无 state 返回 repository.ErrSessionNotFound；远端拒绝返回 ErrOAuthExchange
func (s *AuthService) Exchange(ctx context.Context, code, state string) (*TokenBundle, error) {
	session, err := s.stateRepo.Resolve(ctx, state)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.ExchangeToken(ctx, code, session.CodeVerifier, s.redirectURI)
	if err != nil {
		log.Printf("[Auth] 换取 Token 失败 state=%s code=%s…: %v", state, truncate(code, 8), err)
		return nil, fmt.Errorf("%w: %v", ErrOAuthExchange, err)
	}

	return &TokenBundle{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}, nil
}

// truncate 日志里只留授权码前缀
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
