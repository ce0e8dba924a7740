package reachability

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-reachability/pkg/interfaces"
	"github.com/dep2p/go-reachability/pkg/lib/dispatch"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 底层提供者（nil 时创建默认路由提供者）
	provider interfaces.NetworkReachability

	// 回调投递队列（nil 时创建串行队列）
	queue dispatch.Queue

	// 提供者时钟（测试注入）
	clk clock.Clock

	// 默认提供者配置
	providerConfig *interfaces.ProviderConfig
}

// newOptions 创建默认选项
func newOptions() *options {
	return &options{
		providerConfig: interfaces.DefaultProviderConfig(),
	}
}

// WithProvider 使用自定义底层提供者
//
// 设置后 WithClock / WithPollInterval / WithNativeWatcher 不生效。
func WithProvider(provider interfaces.NetworkReachability) Option {
	return func(o *options) error {
		if provider == nil {
			return fmt.Errorf("provider cannot be nil")
		}
		o.provider = provider
		return nil
	}
}

// WithDeliveryQueue 使用自定义回调投递队列
//
// 队列必须串行执行任务，否则失去委托通知的有序保证。
func WithDeliveryQueue(queue dispatch.Queue) Option {
	return func(o *options) error {
		if queue == nil {
			return fmt.Errorf("delivery queue cannot be nil")
		}
		o.queue = queue
		return nil
	}
}

// WithClock 使用自定义时钟（测试注入 mock 时钟）
func WithClock(clk clock.Clock) Option {
	return func(o *options) error {
		if clk == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		o.clk = clk
		return nil
	}
}

// WithPollInterval 设置默认提供者的轮询探测间隔
func WithPollInterval(interval time.Duration) Option {
	return func(o *options) error {
		if interval <= 0 {
			return fmt.Errorf("poll interval must be positive, got %v", interval)
		}
		o.providerConfig.PollInterval = interval
		return nil
	}
}

// WithNativeWatcher 设置是否启用平台原生变化监听
func WithNativeWatcher(enable bool) Option {
	return func(o *options) error {
		o.providerConfig.EnableNativeWatcher = enable
		return nil
	}
}
