// Package interfaces 定义 go-reachability 的公共接口契约
//
// 上层模块只依赖本包接口，禁止依赖 internal/core 的具体实现。
package interfaces

import (
	"time"

	"github.com/dep2p/go-reachability/pkg/types"
)

// ============================================================================
//                              管理器接口
// ============================================================================

// ReachabilityManager 可达性观察管理器
//
// 协调三类参与者：
//   - 全局观察开关 + 持久委托（每次状态变更都收到通知）
//   - 一次性观察者（首次满足连通性要求时回调一次）
//   - 底层提供者的通知器生命周期（按需启动、闲置即停）
//
// 所有方法可从任意 goroutine 并发调用。
type ReachabilityManager interface {
	// StartObservingNetworkStatus 开启全局观察
	//
	// 置位全局观察开关并请求启动底层通知器。
	// 通知器启动失败只记录日志，开关仍保持开启（调用方无感知）。
	// 幂等：重复调用只会重试通知器启动。
	StartObservingNetworkStatus()

	// StopObservingNetworkStatus 关闭全局观察
	//
	// 清除全局观察开关；仅当一次性观察者列表为空时才停止通知器，
	// 仍有观察者等待时通知器保持运行。
	StopObservingNetworkStatus()

	// WhenReachable 注册一次性观察者
	//
	// 首次出现满足 via 要求的状态时，onConnect 在统一投递队列上
	// 恰好执行一次，随后观察者被移除。不支持取消；
	// 若通知器注册已静默失败，回调将永远不会触发。
	WhenReachable(via types.Connectivity, onConnect func())

	// SetDelegate 设置持久委托
	//
	// 非持有性注册：管理器不延长委托的生命周期，
	// 传入 nil 即解除注册。
	SetDelegate(d ReachabilityDelegate)

	// Status 同步探测当前语义状态
	//
	// 直接调用提供者的标志位探测，不依赖通知器是否运行。
	// 探测失败时返回 StatusUnknown。
	Status() types.NetworkStatus

	// IsReachable 检查当前是否可达（任意传输）
	IsReachable() bool

	// IsReachableViaWiFi 检查当前是否经 WiFi/有线可达
	IsReachableViaWiFi() bool

	// IsReachableViaWWAN 检查当前是否经蜂窝网络可达
	IsReachableViaWWAN() bool

	// Close 销毁管理器
	//
	// 无条件停止底层通知器并排空投递队列。幂等。
	Close() error
}

// ReachabilityDelegate 持久委托
//
// 全局观察开启期间，每次提交的状态变更都会在统一投递队列上
// 收到一次回调。from 为上一次投递给委托的状态，
// 首次通知时为 StatusUnknown。
type ReachabilityDelegate interface {
	ReachabilityDidChange(m ReachabilityManager, from, to types.NetworkStatus)
}

// ============================================================================
//                              提供者接口
// ============================================================================

// NetworkReachability 底层可达性提供者
//
// 把一个网络资源（默认路由、指定主机）转换为原始标志位，
// 并在标志位变化时异步回调。具体实现可以是路由表轮询、
// netlink/路由套接字订阅等任何平台机制。
type NetworkReachability interface {
	// Flags 同步探测当前原始标志位
	Flags() (types.Flags, error)

	// SetDelegate 绑定标志位变化回调的接收方
	//
	// 必须在 StartNotifier 之前调用；未绑定即启动属于编程错误，
	// 实现以 panic 处理而非返回错误。
	SetDelegate(d ProviderDelegate)

	// StartNotifier 启动系统级通知器
	//
	// 成功启动后开始异步投递 DidChangeReachability 回调，
	// 且必须随即投递一次当前标志位（调用方无需等待真实变化）。
	// 幂等：已在运行时为空操作。
	// 注册失败返回包装了 types.ErrNotifierRegistration 的错误。
	StartNotifier() error

	// StopNotifier 停止通知器
	//
	// 已停止时调用安全；可在销毁/清理路径调用。
	// 不等待在途回调结束（Close 负责等待）。
	StopNotifier()

	// Close 销毁提供者
	//
	// 无条件停止通知器并等待内部 goroutine 退出。幂等。
	Close() error
}

// ProviderDelegate 提供者回调接收方
//
// DidChangeReachability 可能在任意 goroutine 上被调用。
type ProviderDelegate interface {
	DidChangeReachability(flags types.Flags)
}

// ============================================================================
//                              提供者配置
// ============================================================================

// ProviderConfig 提供者接口级配置
//
// 用于跨包注入，具体实现包内有对应的转换函数。
type ProviderConfig struct {
	// PollInterval 轮询探测间隔
	// 默认: 2s
	PollInterval time.Duration

	// EventBufferSize 原生事件缓冲区大小
	// 默认: 16
	EventBufferSize int

	// EnableNativeWatcher 是否启用平台原生变化监听
	// 不可用时自动回退到纯轮询
	// 默认: true
	EnableNativeWatcher bool
}

// DefaultProviderConfig 返回默认提供者配置
func DefaultProviderConfig() *ProviderConfig {
	return &ProviderConfig{
		PollInterval:        2 * time.Second,
		EventBufferSize:     16,
		EnableNativeWatcher: true,
	}
}
