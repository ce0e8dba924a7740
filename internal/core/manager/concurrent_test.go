package manager

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-reachability/internal/core/provider"
	"github.com/dep2p/go-reachability/pkg/interfaces"
	"github.com/dep2p/go-reachability/pkg/lib/dispatch"
	"github.com/dep2p/go-reachability/pkg/types"
)

// TestManager_ConcurrentWhenReachable 测试 N 个线程并发注册观察者：
// 满足全部要求的事件到来后恰好 N 次回调，每个恰好一次
func TestManager_ConcurrentWhenReachable(t *testing.T) {
	const n = 64

	m, mock := newTestManager(t)

	var fired atomic.Int32
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			m.WhenReachable(types.ConnectivityAny, func() { fired.Add(1) })
		}()
	}
	wg.Wait()

	// 多次满足全部要求的事件 → 仍然恰好 N 次
	mock.Deliver(flagsWiFi)
	mock.Deliver(flagsWWAN)
	mock.Deliver(flagsWiFi)

	assert.Equal(t, int32(n), fired.Load())
}

// TestManager_ConcurrentDeliverAndRegister 测试注册与底层回调并发时不丢不重
func TestManager_ConcurrentDeliverAndRegister(t *testing.T) {
	const n = 32

	m, mock := newTestManager(t)

	var fired atomic.Int32
	var wg sync.WaitGroup
	wg.Add(n + 1)

	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			m.WhenReachable(types.ConnectivityAny, func() { fired.Add(1) })
		}()
	}
	go func() {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			mock.Deliver(flagsWiFi)
		}
	}()
	wg.Wait()

	// 收尾：确保晚注册的观察者也被满足
	mock.Deliver(flagsWiFi)
	mock.Deliver(flagsWiFi)

	assert.Equal(t, int32(n), fired.Load(), "每个观察者恰好触发一次")
}

// TestManager_ConcurrentStartStop 测试开关与回调并发无竞态（配合 -race）
func TestManager_ConcurrentStartStop(t *testing.T) {
	m, mock := newTestManager(t)
	m.SetDelegate(&recordingDelegate{})

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			m.StartObservingNetworkStatus()
			m.StopObservingNetworkStatus()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			m.WhenReachable(types.ConnectivityWWAN, func() {})
			mock.Deliver(flagsWWAN)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			mock.Deliver(flagsWiFi)
			mock.Deliver(flagsNone)
		}
	}()
	wg.Wait()
}

// TestManager_SerialQueueOrdering 测试委托通知按状态提交顺序
// 经真实串行队列投递
func TestManager_SerialQueueOrdering(t *testing.T) {
	mock := provider.NewMock()
	queue := dispatch.NewSerialQueue()
	m := NewManager(mock, queue)

	delegate := &recordingDelegate{}
	m.SetDelegate(delegate)
	m.StartObservingNetworkStatus()
	m.WhenReachable(types.ConnectivityWWAN, func() {}) // 保持处理路径开启

	sequence := []types.Flags{flagsWiFi, flagsNone, flagsWiFi, flagsNone}
	for _, f := range sequence {
		mock.Deliver(f)
	}

	// 关闭队列等待全部投递完成
	require.NoError(t, m.Close())

	calls := delegate.Calls()
	require.Len(t, calls, len(sequence))
	want := []types.NetworkStatus{
		types.StatusReachableViaWiFi,
		types.StatusNotReachable,
		types.StatusReachableViaWiFi,
		types.StatusNotReachable,
	}
	for i, c := range calls {
		assert.Equal(t, want[i], c.to, "第 %d 次通知乱序", i)
	}
	// from 链条连续：每次的 from 等于上一次的 to
	for i := 1; i < len(calls); i++ {
		assert.Equal(t, calls[i-1].to, calls[i].from)
	}
}

// TestManager_AsyncCallbackNotOnDeliverStack 测试使用串行队列时
// 回调不在底层回调的调用栈上同步执行
func TestManager_AsyncCallbackNotOnDeliverStack(t *testing.T) {
	mock := provider.NewMock()
	queue := dispatch.NewSerialQueue()
	var m interfaces.ReachabilityManager = NewManager(mock, queue)
	defer m.Close()

	// 用一个阻塞任务占住队列工作协程
	block := make(chan struct{})
	queue.Async(func() { <-block })

	fired := make(chan struct{})
	m.WhenReachable(types.ConnectivityAny, func() { close(fired) })

	mock.Deliver(flagsWiFi)
	select {
	case <-fired:
		t.Fatal("回调在底层回调栈上同步执行了")
	case <-time.After(50 * time.Millisecond):
		// 队列被占住期间回调不可能执行 → 确系异步投递
	}

	close(block)
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("回调未投递")
	}
}
