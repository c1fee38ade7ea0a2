package model

// OAuthState 一次待完成的 OAuth 握手
// state 在授权 URL 生成时落库，回调时读取一次用于换 Token
// 注意：resolve 之后不做消费标记，重放保护依赖上游对授权码的单次校验
type OAuthState struct {
	BaseModel
	State        string `gorm:"uniqueIndex;size:64;not null"` // 防伪令牌，全局唯一
	CodeVerifier string `gorm:"size:128;not null"`            // 与 state 绑定的 PKCE verifier
}

func (OAuthState) TableName() string {
	return "oauth_states"
}
