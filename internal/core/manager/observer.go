package manager

import "github.com/dep2p/go-reachability/pkg/types"

// observer 一次性观察者记录
//
// 不可变值：连通性要求 + 一次性完成回调。
// 首次被满足并完成回调投递后即从注册表移除，
// 没有其他销毁路径（不支持手动取消）。
type observer struct {
	// connectivity 连通性要求
	connectivity types.Connectivity

	// onConnect 完成回调，恰好触发一次
	onConnect func()
}
