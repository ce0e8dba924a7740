package reachability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/dep2p/go-reachability/pkg/interfaces"
)

// TestModule_Validate 测试 Fx 依赖图完整
func TestModule_Validate(t *testing.T) {
	err := fx.ValidateApp(
		Module(),
		fx.Invoke(func(interfaces.ReachabilityManager) {}),
	)
	require.NoError(t, err)
}

// TestModule_Lifecycle 测试 Fx 应用启停与管理器注入
func TestModule_Lifecycle(t *testing.T) {
	var m interfaces.ReachabilityManager
	cfg := interfaces.DefaultProviderConfig()
	cfg.EnableNativeWatcher = false

	app := buildFxApp(
		fx.Supply(cfg),
		fx.Populate(&m),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, app.Start(ctx))
	require.NotNil(t, m)
	assert.NotPanics(t, func() { m.IsReachable() })
	require.NoError(t, app.Stop(ctx))
}
