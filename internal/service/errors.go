package service

import "errors"

var (
	// ErrOAuthExchange 远端拒绝了授权码/verifier (code 已用过、过期、verifier 不匹配等)
	// 对本次回调是终态错误，不重试
	ErrOAuthExchange = errors.New("oauth token exchange failed")

	// ErrRemoteAPI 身份查询或分页拉取阶段的任何失败 (网络、非 2xx、畸形响应)
	// 整个摄入流程立即中止，已提交步骤之外不会落任何数据
	ErrRemoteAPI = errors.New("etsy api request failed")
)
