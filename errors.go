package reachability

import "github.com/dep2p/go-reachability/pkg/types"

// 公共错误定义
var (
	// ErrProviderCreation 底层提供者创建失败
	ErrProviderCreation = types.ErrProviderCreation

	// ErrNotifierRegistration 通知器注册失败
	ErrNotifierRegistration = types.ErrNotifierRegistration

	// ErrProviderClosed 提供者已销毁
	ErrProviderClosed = types.ErrProviderClosed
)
