package provider

import (
	"fmt"
	"net"
	"strings"

	"github.com/dep2p/go-reachability/pkg/types"
)

// ============================================================================
//                              默认路由探测
// ============================================================================

// probeDefaultRoute 探测默认路由的可达性标志位
//
// 枚举本机网络接口：存在启用的、持有可用单播地址的
// 非回环接口即视为可达；全部可用接口都是蜂窝接口时
// 置 WWAN 位。
func probeDefaultRoute() (types.Flags, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return 0, fmt.Errorf("enumerate interfaces: %w", err)
	}

	var viaLAN, viaWWAN bool
	for _, ifc := range ifaces {
		if ifc.Flags&net.FlagUp == 0 || ifc.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := ifc.Addrs()
		if err != nil || !hasUsableAddr(addrs) {
			continue
		}
		if isWWANName(ifc.Name) {
			viaWWAN = true
		} else {
			viaLAN = true
		}
	}

	switch {
	case viaLAN:
		// WiFi/有线优先于蜂窝
		return types.FlagReachable, nil
	case viaWWAN:
		return types.FlagReachable | types.FlagIsWWAN, nil
	default:
		return 0, nil
	}
}

// hasUsableAddr 检查地址列表中是否有可用的单播地址
//
// 回环、链路本地和未指定地址不算数。
func hasUsableAddr(addrs []net.Addr) bool {
	for _, a := range addrs {
		var ip net.IP
		switch v := a.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified() {
			continue
		}
		return true
	}
	return false
}

// wwanNamePrefixes 常见蜂窝接口名前缀
//
// rmnet/ccmni: Android 基带，wwan: linux WWAN 框架，
// pdp_ip: iOS/macOS 蜂窝，ppp: 拨号
var wwanNamePrefixes = []string{"rmnet", "ccmni", "wwan", "pdp_ip", "ppp"}

// isWWANName 按接口名判断是否为蜂窝接口
func isWWANName(name string) bool {
	lower := strings.ToLower(name)
	for _, prefix := range wwanNamePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
