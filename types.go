package reachability

import (
	"github.com/dep2p/go-reachability/pkg/interfaces"
	"github.com/dep2p/go-reachability/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              公共类型别名
// ════════════════════════════════════════════════════════════════════════════

// NetworkStatus 网络状态分类
type NetworkStatus = types.NetworkStatus

// Connectivity 观察者的连通性要求
type Connectivity = types.Connectivity

// Flags 底层可达性原始标志位
type Flags = types.Flags

// 网络状态常量
const (
	// StatusUnknown 尚未观测到任何状态
	StatusUnknown = types.StatusUnknown

	// StatusNotReachable 不可达
	StatusNotReachable = types.StatusNotReachable

	// StatusReachableViaWiFi 经 WiFi/有线可达
	StatusReachableViaWiFi = types.StatusReachableViaWiFi

	// StatusReachableViaWWAN 经蜂窝网络可达
	StatusReachableViaWWAN = types.StatusReachableViaWWAN
)

// 连通性要求常量
const (
	// ConnectivityAny 任意可达即满足
	ConnectivityAny = types.ConnectivityAny

	// ConnectivityWiFi 要求 WiFi/有线
	ConnectivityWiFi = types.ConnectivityWiFi

	// ConnectivityWWAN 要求蜂窝网络
	ConnectivityWWAN = types.ConnectivityWWAN
)

// 原始标志位常量
const (
	// FlagReachable 目标可达
	FlagReachable = types.FlagReachable

	// FlagConnectionRequired 需要先建立连接
	FlagConnectionRequired = types.FlagConnectionRequired

	// FlagIsWWAN 经蜂窝网络
	FlagIsWWAN = types.FlagIsWWAN
)

// ════════════════════════════════════════════════════════════════════════════
//                              公共接口别名
// ════════════════════════════════════════════════════════════════════════════

// Manager 可达性观察管理器
type Manager = interfaces.ReachabilityManager

// Delegate 持久状态变化接收方
type Delegate = interfaces.ReachabilityDelegate

// Provider 底层可达性提供者
type Provider = interfaces.NetworkReachability

// ProviderDelegate 底层标志位变化接收方
type ProviderDelegate = interfaces.ProviderDelegate

// ProviderConfig 提供者配置
type ProviderConfig = interfaces.ProviderConfig
