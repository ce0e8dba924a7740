package manager

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-reachability/pkg/interfaces"
	"github.com/dep2p/go-reachability/pkg/lib/dispatch"
)

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("manager",
		fx.Provide(ProvideManager),
		fx.Invoke(registerLifecycle),
	)
}

// managerParams 管理器依赖参数
type managerParams struct {
	fx.In

	Provider interfaces.NetworkReachability
	Queue    dispatch.Queue `optional:"true"` // 未注入时使用内置串行队列
}

// ProvideManager 提供可达性管理器
func ProvideManager(params managerParams) interfaces.ReachabilityManager {
	queue := params.Queue
	if queue == nil {
		queue = dispatch.NewSerialQueue()
	}
	return NewManager(params.Provider, queue)
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In

	LC      fx.Lifecycle
	Manager interfaces.ReachabilityManager
}

// registerLifecycle 注册生命周期
//
// 通知器按需启动，OnStart 无事可做；
// 应用关停时无条件销毁管理器（含通知器停止）。
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return input.Manager.Close()
		},
	})
}
