//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package provider

// newNativeWatcher 创建平台原生监听器（无实现平台）
//
// 返回 errNativeUnsupported，Device 回退到纯轮询。
func newNativeWatcher(_ *Config) (routeWatcher, error) {
	return nil, errNativeUnsupported
}
