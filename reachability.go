package reachability

import (
	"fmt"
	"sync"

	"github.com/dep2p/go-reachability/internal/core/manager"
	"github.com/dep2p/go-reachability/internal/core/provider"
	"github.com/dep2p/go-reachability/pkg/lib/dispatch"
)

// ════════════════════════════════════════════════════════════════════════════
//                              构造入口
// ════════════════════════════════════════════════════════════════════════════

// New 创建可达性观察管理器
//
// 默认使用本机默认路由提供者和串行投递队列，
// 可通过 Option 替换。通知器按需启动：注册第一个观察者
// 或调用 StartObservingNetworkStatus 时才开始监视。
func New(opts ...Option) (Manager, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	prov := o.provider
	if prov == nil {
		device, err := provider.NewDevice(provider.FromInterfaceConfig(*o.providerConfig))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrProviderCreation, err)
		}
		if o.clk != nil {
			device.SetClock(o.clk)
		}
		prov = device
	}

	queue := o.queue
	if queue == nil {
		queue = dispatch.NewSerialQueue()
	}

	return manager.NewManager(prov, queue), nil
}

// NewForHost 创建面向指定主机的观察管理器
//
// 目前按默认路由可达性近似主机可达性。
// TODO: 对 hostname 做真实的逐主机探测（DNS 解析 + 路由查询）。
func NewForHost(hostname string, opts ...Option) (Manager, error) {
	if hostname == "" {
		return nil, fmt.Errorf("hostname cannot be empty")
	}
	return New(opts...)
}

// ════════════════════════════════════════════════════════════════════════════
//                              进程级默认实例
// ════════════════════════════════════════════════════════════════════════════

var (
	defaultOnce    sync.Once
	defaultManager Manager
)

// Default 返回进程级默认管理器
//
// 首次调用时惰性创建；创建失败属于环境级致命问题，直接 panic。
// 默认管理器与进程同生命周期，不需要 Close。
func Default() Manager {
	defaultOnce.Do(func() {
		m, err := New()
		if err != nil {
			panic(fmt.Sprintf("reachability: create default manager: %v", err))
		}
		defaultManager = m
	})
	return defaultManager
}

// StartObserving 在默认管理器上开启全局状态观察
func StartObserving() {
	Default().StartObservingNetworkStatus()
}

// StopObserving 在默认管理器上关闭全局状态观察
func StopObserving() {
	Default().StopObservingNetworkStatus()
}

// WhenReachable 在默认管理器上注册一次性观察者
func WhenReachable(via Connectivity, onConnect func()) {
	Default().WhenReachable(via, onConnect)
}

// SetDelegate 在默认管理器上绑定持久委托
func SetDelegate(delegate Delegate) {
	Default().SetDelegate(delegate)
}

// Status 返回默认管理器的当前网络状态
func Status() NetworkStatus {
	return Default().Status()
}

// IsReachable 检查默认管理器当前是否可达
func IsReachable() bool {
	return Default().IsReachable()
}

// IsReachableViaWiFi 检查默认管理器当前是否经 WiFi/有线可达
func IsReachableViaWiFi() bool {
	return Default().IsReachableViaWiFi()
}

// IsReachableViaWWAN 检查默认管理器当前是否经蜂窝网络可达
func IsReachableViaWWAN() bool {
	return Default().IsReachableViaWWAN()
}
