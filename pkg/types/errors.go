package types

import "errors"

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 提供者错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrProviderCreation 底层可达性资源无法构造
	// 在受支持的平台上构造应当总是成功，出现此错误通常意味着环境问题
	ErrProviderCreation = errors.New("reachability provider creation failed")

	// ErrNotifierRegistration 系统级通知器注册失败
	// 管理器对此错误只记录日志，不向调用方传播
	ErrNotifierRegistration = errors.New("reachability notifier registration failed")

	// ErrProviderClosed 提供者已被销毁
	ErrProviderClosed = errors.New("reachability provider closed")
)
