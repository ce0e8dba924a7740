package provider

import (
	"context"
	"errors"
)

// ============================================================================
//                              routeWatcher 接口
// ============================================================================

// routeWatcher 平台原生网络变化监听器
//
// 监听操作系统级的路由/地址/链路变化，每次变化向事件通道
// 发送一个信号（内容无意义，仅用于触发立即探测）。
type routeWatcher interface {
	// Start 启动监听
	Start(ctx context.Context) error

	// Stop 停止监听并关闭事件通道；已停止时调用安全
	Stop() error

	// Events 返回事件通道
	Events() <-chan struct{}
}

// errNativeUnsupported 当前平台没有原生监听实现
var errNativeUnsupported = errors.New("native network watcher not supported on this platform")
