// Package types 提供可达性领域的公共值类型
//
// 包含三层模型：
//   - Flags: 提供者上报的原始可达性标志位
//   - NetworkStatus: 由 Flags 计算出的语义状态
//   - Connectivity: 观察者声明的传输类别要求
package types

// ============================================================================
//                              Flags - 原始标志位
// ============================================================================

// Flags 原始可达性标志位
//
// 由底层提供者（路由表探测、系统网络变化通知等）上报，
// 经 Status() 归一化为语义状态后才对上层可见。
type Flags uint32

const (
	// FlagReachable 目标路由当前可达
	FlagReachable Flags = 1 << iota

	// FlagConnectionRequired 可达但需要先建立连接（按需拨号等）
	// 置位时视为不可达
	FlagConnectionRequired

	// FlagIsWWAN 经由蜂窝网络（WWAN）可达
	FlagIsWWAN
)

// IsReachable 检查可达位
func (f Flags) IsReachable() bool {
	return f&FlagReachable != 0
}

// ConnectionRequired 检查是否需要先建立连接
func (f Flags) ConnectionRequired() bool {
	return f&FlagConnectionRequired != 0
}

// IsWWAN 检查是否经由蜂窝网络
func (f Flags) IsWWAN() bool {
	return f&FlagIsWWAN != 0
}

// Status 由原始标志位计算语义状态
//
// 规则：
//   - 不可达或需要先建立连接 → StatusNotReachable
//   - 可达且经由蜂窝网络 → StatusReachableViaWWAN
//   - 其余可达情况（WiFi/有线统一归类） → StatusReachableViaWiFi
func (f Flags) Status() NetworkStatus {
	switch {
	case !f.IsReachable() || f.ConnectionRequired():
		return StatusNotReachable
	case f.IsWWAN():
		return StatusReachableViaWWAN
	default:
		return StatusReachableViaWiFi
	}
}

// String 返回标志位的可读表示
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	s := ""
	if f.IsReachable() {
		s += "reachable"
	}
	if f.ConnectionRequired() {
		if s != "" {
			s += "|"
		}
		s += "connection-required"
	}
	if f.IsWWAN() {
		if s != "" {
			s += "|"
		}
		s += "wwan"
	}
	return s
}

// ============================================================================
//                              Connectivity - 传输类别
// ============================================================================

// Connectivity 传输类别
//
// 用作观察者的匹配要求：ConnectivityAny 被任何可达状态满足。
type Connectivity int

const (
	// ConnectivityAny 任意传输（任何可达状态均满足）
	ConnectivityAny Connectivity = iota

	// ConnectivityWiFi WiFi/有线传输
	ConnectivityWiFi

	// ConnectivityWWAN 蜂窝网络传输
	ConnectivityWWAN
)

// String 返回传输类别字符串
func (c Connectivity) String() string {
	switch c {
	case ConnectivityAny:
		return "any"
	case ConnectivityWiFi:
		return "wifi"
	case ConnectivityWWAN:
		return "wwan"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              NetworkStatus - 语义状态
// ============================================================================

// NetworkStatus 语义连通性状态
type NetworkStatus int

const (
	// StatusUnknown 尚无已知状态（委托从未收到过通知时的前值）
	StatusUnknown NetworkStatus = iota

	// StatusNotReachable 不可达
	StatusNotReachable

	// StatusReachableViaWiFi 经由 WiFi/有线可达
	StatusReachableViaWiFi

	// StatusReachableViaWWAN 经由蜂窝网络可达
	StatusReachableViaWWAN
)

// String 返回状态字符串
func (s NetworkStatus) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusNotReachable:
		return "not_reachable"
	case StatusReachableViaWiFi:
		return "reachable_wifi"
	case StatusReachableViaWWAN:
		return "reachable_wwan"
	default:
		return "invalid"
	}
}

// IsReachable 检查是否处于任一可达状态
func (s NetworkStatus) IsReachable() bool {
	return s == StatusReachableViaWiFi || s == StatusReachableViaWWAN
}

// ConnectedVia 检查当前状态是否满足指定的传输类别要求
//
// ConnectivityAny 被任何可达状态满足；
// StatusUnknown 和 StatusNotReachable 不满足任何要求。
func (s NetworkStatus) ConnectedVia(req Connectivity) bool {
	switch req {
	case ConnectivityAny:
		return s.IsReachable()
	case ConnectivityWiFi:
		return s == StatusReachableViaWiFi
	case ConnectivityWWAN:
		return s == StatusReachableViaWWAN
	default:
		return false
	}
}
