package repository

import "errors"

// ErrSessionNotFound 给定 state 没有对应的握手记录 (未注册/已过期/伪造)
// 上层 HTTP 需要据此渲染独立的"链接失效"页面，所以必须与其他错误可区分
var ErrSessionNotFound = errors.New("missing oauth session for the given state")
