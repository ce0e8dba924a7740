package provider

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-reachability/pkg/types"
)

// ============================================================================
//                              测试辅助
// ============================================================================

// flagsRecorder 把底层回调收进通道的委托
type flagsRecorder struct {
	ch chan types.Flags
}

func newFlagsRecorder() *flagsRecorder {
	return &flagsRecorder{ch: make(chan types.Flags, 64)}
}

func (r *flagsRecorder) DidChangeReachability(flags types.Flags) {
	r.ch <- flags
}

// wait 等待下一次投递
func (r *flagsRecorder) wait(t *testing.T) types.Flags {
	t.Helper()
	select {
	case flags := <-r.ch:
		return flags
	case <-time.After(2 * time.Second):
		t.Fatal("等待投递超时")
		return 0
	}
}

// expectNone 断言一段时间内没有投递
func (r *flagsRecorder) expectNone(t *testing.T) {
	t.Helper()
	select {
	case flags := <-r.ch:
		t.Fatalf("收到了不应有的投递: %v", flags)
	case <-time.After(50 * time.Millisecond):
	}
}

// newTestDevice 创建测试设备：禁用原生监听、注入 mock 时钟和可控探测
func newTestDevice(t *testing.T) (*Device, *clock.Mock, *atomic.Uint32) {
	t.Helper()

	device, err := NewDevice(DefaultConfig().WithNativeWatcher(false))
	require.NoError(t, err)

	clk := clock.NewMock()
	device.SetClock(clk)

	var current atomic.Uint32
	current.Store(uint32(types.FlagReachable))
	device.SetProbe(func() (types.Flags, error) {
		return types.Flags(current.Load()), nil
	})

	t.Cleanup(func() { _ = device.Close() })
	return device, clk, &current
}

// ============================================================================
//                              同步探测
// ============================================================================

// TestDevice_Flags 测试同步探测返回探测函数的结果
func TestDevice_Flags(t *testing.T) {
	device, _, current := newTestDevice(t)

	flags, err := device.Flags()
	require.NoError(t, err)
	assert.Equal(t, types.FlagReachable, flags)

	current.Store(uint32(types.FlagReachable | types.FlagIsWWAN))
	flags, err = device.Flags()
	require.NoError(t, err)
	assert.Equal(t, types.FlagReachable|types.FlagIsWWAN, flags)
}

// TestDevice_FlagsError 测试探测失败时错误原样返回
func TestDevice_FlagsError(t *testing.T) {
	device, err := NewDevice(nil)
	require.NoError(t, err)
	defer device.Close()

	probeErr := errors.New("route table unavailable")
	device.SetProbe(func() (types.Flags, error) { return 0, probeErr })

	_, err = device.Flags()
	assert.ErrorIs(t, err, probeErr)
}

// TestDevice_FlagsAfterClose 测试销毁后同步探测返回 ErrProviderClosed
func TestDevice_FlagsAfterClose(t *testing.T) {
	device, _, _ := newTestDevice(t)
	require.NoError(t, device.Close())

	_, err := device.Flags()
	assert.ErrorIs(t, err, types.ErrProviderClosed)
}

// ============================================================================
//                              通知器生命周期
// ============================================================================

// TestDevice_StartNotifierPanicsWithoutDelegate 测试未绑定委托即启动属于编程错误
func TestDevice_StartNotifierPanicsWithoutDelegate(t *testing.T) {
	device, _, _ := newTestDevice(t)

	assert.Panics(t, func() { _ = device.StartNotifier() })
}

// TestDevice_InitialDelivery 测试启动后立即投递一次当前标志位
func TestDevice_InitialDelivery(t *testing.T) {
	device, _, _ := newTestDevice(t)

	recorder := newFlagsRecorder()
	device.SetDelegate(recorder)
	require.NoError(t, device.StartNotifier())

	assert.Equal(t, types.FlagReachable, recorder.wait(t))
}

// TestDevice_ChangeOnlyDelivery 测试只有标志位变化才投递
func TestDevice_ChangeOnlyDelivery(t *testing.T) {
	device, clk, current := newTestDevice(t)

	recorder := newFlagsRecorder()
	device.SetDelegate(recorder)
	require.NoError(t, device.StartNotifier())
	recorder.wait(t) // 初始投递

	// 等轮询协程建好定时器
	time.Sleep(20 * time.Millisecond)

	// 标志位不变 → 轮询不投递
	clk.Add(device.config.PollInterval)
	recorder.expectNone(t)

	// 标志位变化 → 下一轮投递
	current.Store(0)
	clk.Add(device.config.PollInterval)
	assert.Equal(t, types.Flags(0), recorder.wait(t))
}

// TestDevice_StartIdempotent 测试重复启动为空操作
func TestDevice_StartIdempotent(t *testing.T) {
	device, _, _ := newTestDevice(t)

	recorder := newFlagsRecorder()
	device.SetDelegate(recorder)
	require.NoError(t, device.StartNotifier())
	recorder.wait(t)

	// 第二次启动不产生第二份初始投递
	require.NoError(t, device.StartNotifier())
	recorder.expectNone(t)
}

// TestDevice_RestartRedeliversInitial 测试停止后重启会重新投递初始标志位
func TestDevice_RestartRedeliversInitial(t *testing.T) {
	device, _, _ := newTestDevice(t)

	recorder := newFlagsRecorder()
	device.SetDelegate(recorder)
	require.NoError(t, device.StartNotifier())
	assert.Equal(t, types.FlagReachable, recorder.wait(t))

	device.StopNotifier()

	// 标志位没变，但重启后仍要投递一次
	require.NoError(t, device.StartNotifier())
	assert.Equal(t, types.FlagReachable, recorder.wait(t))
}

// TestDevice_StopNotifierSafeWhenStopped 测试未运行时停止安全
func TestDevice_StopNotifierSafeWhenStopped(t *testing.T) {
	device, _, _ := newTestDevice(t)

	device.StopNotifier()
	device.StopNotifier()
}

// TestDevice_StartAfterClose 测试销毁后启动返回注册错误
func TestDevice_StartAfterClose(t *testing.T) {
	device, _, _ := newTestDevice(t)
	device.SetDelegate(newFlagsRecorder())
	require.NoError(t, device.Close())

	err := device.StartNotifier()
	assert.ErrorIs(t, err, types.ErrNotifierRegistration)
	assert.ErrorIs(t, err, types.ErrProviderClosed)
}

// TestDevice_CloseIdempotent 测试重复销毁安全
func TestDevice_CloseIdempotent(t *testing.T) {
	device, _, _ := newTestDevice(t)

	recorder := newFlagsRecorder()
	device.SetDelegate(recorder)
	require.NoError(t, device.StartNotifier())
	recorder.wait(t)

	require.NoError(t, device.Close())
	require.NoError(t, device.Close())
}

// TestDevice_ProbeFailureSkipsDelivery 测试探测失败时本轮不投递
func TestDevice_ProbeFailureSkipsDelivery(t *testing.T) {
	device, err := NewDevice(DefaultConfig().WithNativeWatcher(false))
	require.NoError(t, err)
	defer device.Close()
	device.SetClock(clock.NewMock())

	device.SetProbe(func() (types.Flags, error) {
		return 0, errors.New("probe failed")
	})

	recorder := newFlagsRecorder()
	device.SetDelegate(recorder)
	require.NoError(t, device.StartNotifier())

	recorder.expectNone(t)
}

// ============================================================================
//                              配置
// ============================================================================

// TestConfig_Validate 测试验证只修正无效值且永远成功
func TestConfig_Validate(t *testing.T) {
	config := &Config{PollInterval: -1, EventBufferSize: 0}
	require.NoError(t, config.Validate())

	assert.Equal(t, 2*time.Second, config.PollInterval)
	assert.Equal(t, 16, config.EventBufferSize)
}

// TestConfig_RoundTrip 测试接口配置转换保持字段
func TestConfig_RoundTrip(t *testing.T) {
	config := DefaultConfig().WithPollInterval(5 * time.Second).WithNativeWatcher(false)
	back := FromInterfaceConfig(config.ToInterfaceConfig())
	assert.Equal(t, config, back)
}
