// Package provider 实现默认路由可达性提供者
package provider

import (
	"time"

	"github.com/dep2p/go-reachability/pkg/interfaces"
)

// ============================================================================
//                              提供者配置
// ============================================================================

// Config 提供者配置
type Config struct {
	// PollInterval 轮询探测间隔
	// 原生监听可用时轮询只是兜底，不可用时是唯一事件源
	// 默认值: 2s
	PollInterval time.Duration

	// EventBufferSize 原生事件缓冲区大小
	// 默认值: 16
	EventBufferSize int

	// EnableNativeWatcher 是否启用平台原生变化监听
	// 原生监听创建失败时自动回退到纯轮询
	// 默认值: true
	EnableNativeWatcher bool
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		PollInterval:        2 * time.Second,
		EventBufferSize:     16,
		EnableNativeWatcher: true,
	}
}

// Validate 验证配置
//
// 只修正无效值，永远返回 nil。
func (c *Config) Validate() error {
	if c.PollInterval <= 0 {
		c.PollInterval = 2 * time.Second
	}
	if c.EventBufferSize <= 0 {
		c.EventBufferSize = 16
	}
	return nil
}

// ToInterfaceConfig 转换为接口配置
func (c *Config) ToInterfaceConfig() interfaces.ProviderConfig {
	return interfaces.ProviderConfig{
		PollInterval:        c.PollInterval,
		EventBufferSize:     c.EventBufferSize,
		EnableNativeWatcher: c.EnableNativeWatcher,
	}
}

// FromInterfaceConfig 从接口配置创建
func FromInterfaceConfig(cfg interfaces.ProviderConfig) *Config {
	return &Config{
		PollInterval:        cfg.PollInterval,
		EventBufferSize:     cfg.EventBufferSize,
		EnableNativeWatcher: cfg.EnableNativeWatcher,
	}
}

// WithPollInterval 设置轮询间隔
func (c *Config) WithPollInterval(interval time.Duration) *Config {
	c.PollInterval = interval
	return c
}

// WithNativeWatcher 设置是否启用原生监听
func (c *Config) WithNativeWatcher(enable bool) *Config {
	c.EnableNativeWatcher = enable
	return c
}
