package provider

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-reachability/pkg/interfaces"
)

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("provider",
		fx.Provide(ProvideDevice),
	)
}

// deviceParams 提供者依赖参数
type deviceParams struct {
	fx.In

	Config *interfaces.ProviderConfig `optional:"true"`
	Clock  clock.Clock                `optional:"true"` // 测试注入 mock 时钟
}

// ProvideDevice 提供默认路由提供者
func ProvideDevice(params deviceParams) (interfaces.NetworkReachability, error) {
	var config *Config
	if params.Config != nil {
		config = FromInterfaceConfig(*params.Config)
	} else {
		config = DefaultConfig()
	}

	device, err := NewDevice(config)
	if err != nil {
		return nil, err
	}
	if params.Clock != nil {
		device.SetClock(params.Clock)
	}
	return device, nil
}
