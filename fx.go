package reachability

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-reachability/internal/core/manager"
	"github.com/dep2p/go-reachability/internal/core/provider"
)

// Module 返回完整的可达性 Fx 模块
//
// 提供 interfaces.NetworkReachability 与 interfaces.ReachabilityManager，
// 并把管理器的销毁挂接到 Fx 生命周期。宿主应用可注入
// *interfaces.ProviderConfig 覆盖提供者配置。
func Module() fx.Option {
	return fx.Options(
		provider.Module(),
		manager.Module(),
	)
}

// buildFxApp 构建独立运行的 Fx 应用（cmd 入口使用）
func buildFxApp(extra ...fx.Option) *fx.App {
	opts := []fx.Option{
		Module(),
		// Fx 自身的事件日志静默，库日志走 pkg/lib/log
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	}
	opts = append(opts, extra...)
	return fx.New(opts...)
}
