package reachability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-reachability/internal/core/provider"
	"github.com/dep2p/go-reachability/pkg/types"
)

// TestNew_WithInjectedProvider 测试注入模拟提供者的完整回调链路
func TestNew_WithInjectedProvider(t *testing.T) {
	mock := provider.NewMock()
	m, err := New(WithProvider(mock))
	require.NoError(t, err)
	defer m.Close()

	fired := make(chan struct{})
	m.WhenReachable(ConnectivityAny, func() { close(fired) })
	assert.True(t, mock.Running(), "注册观察者应启动通知器")

	mock.Deliver(FlagReachable)

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("观察者回调未触发")
	}
}

// TestNew_DefaultProvider 测试默认配置下创建成功
func TestNew_DefaultProvider(t *testing.T) {
	m, err := New(WithNativeWatcher(false), WithPollInterval(time.Minute))
	require.NoError(t, err)
	require.NoError(t, m.Close())
}

// TestNew_OptionErrors 测试非法选项在构造期报错
func TestNew_OptionErrors(t *testing.T) {
	_, err := New(WithPollInterval(0))
	assert.Error(t, err)

	_, err = New(WithProvider(nil))
	assert.Error(t, err)

	_, err = New(WithDeliveryQueue(nil))
	assert.Error(t, err)

	_, err = New(WithClock(nil))
	assert.Error(t, err)
}

// TestNewForHost 测试面向主机的构造入口
func TestNewForHost(t *testing.T) {
	_, err := NewForHost("")
	assert.Error(t, err, "空主机名应报错")

	m, err := NewForHost("example.com", WithProvider(provider.NewMock()))
	require.NoError(t, err)
	require.NoError(t, m.Close())
}

// TestReachablePredicates 测试按传输类型的可达性判断
func TestReachablePredicates(t *testing.T) {
	mock := provider.NewMock()
	m, err := New(WithProvider(mock))
	require.NoError(t, err)
	defer m.Close()

	mock.SetFlags(FlagReachable)
	assert.True(t, m.IsReachable())
	assert.True(t, m.IsReachableViaWiFi())
	assert.False(t, m.IsReachableViaWWAN())

	mock.SetFlags(FlagReachable | FlagIsWWAN)
	assert.True(t, m.IsReachableViaWWAN())
	assert.False(t, m.IsReachableViaWiFi())

	mock.SetFlags(FlagReachable | FlagConnectionRequired)
	assert.False(t, m.IsReachable())
	assert.Equal(t, StatusNotReachable, m.Status())
}

// TestDefault_Singleton 测试进程级默认管理器的单例性
func TestDefault_Singleton(t *testing.T) {
	first := Default()
	second := Default()
	assert.Same(t, first, second)
}

// TestAliases 测试公共别名与底层类型一致
func TestAliases(t *testing.T) {
	var status NetworkStatus = StatusReachableViaWiFi
	assert.True(t, status.IsReachable())
	assert.Equal(t, types.StatusReachableViaWiFi, status)

	var flags Flags = FlagReachable | FlagIsWWAN
	assert.Equal(t, StatusReachableViaWWAN, flags.Status())

	assert.True(t, StatusReachableViaWWAN.ConnectedVia(ConnectivityAny))
	assert.False(t, StatusReachableViaWWAN.ConnectedVia(ConnectivityWiFi))
}
