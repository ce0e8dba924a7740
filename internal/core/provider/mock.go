package provider

import (
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-reachability/pkg/interfaces"
	"github.com/dep2p/go-reachability/pkg/types"
)

// ============================================================================
//                              Mock Provider (用于测试)
// ============================================================================

// Mock 可控的模拟提供者（用于测试）
//
// 不自动投递任何回调：测试通过 Deliver 手动驱动标志位变化，
// 通过 StartCalls/StopCalls 断言管理器的启停决策。
type Mock struct {
	mu       sync.Mutex
	delegate interfaces.ProviderDelegate
	flags    types.Flags
	flagsErr error
	startErr error

	running    atomic.Bool
	startCalls atomic.Int32
	stopCalls  atomic.Int32
}

var _ interfaces.NetworkReachability = (*Mock)(nil)

// NewMock 创建模拟提供者
func NewMock() *Mock {
	return &Mock{flags: types.FlagReachable}
}

// SetFlags 设置同步探测返回的标志位
func (m *Mock) SetFlags(flags types.Flags) {
	m.mu.Lock()
	m.flags = flags
	m.mu.Unlock()
}

// SetFlagsErr 设置同步探测返回的错误
func (m *Mock) SetFlagsErr(err error) {
	m.mu.Lock()
	m.flagsErr = err
	m.mu.Unlock()
}

// SetStartErr 设置 StartNotifier 返回的错误
func (m *Mock) SetStartErr(err error) {
	m.mu.Lock()
	m.startErr = err
	m.mu.Unlock()
}

// Flags 返回预设的标志位
func (m *Mock) Flags() (types.Flags, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.flagsErr != nil {
		return 0, m.flagsErr
	}
	return m.flags, nil
}

// SetDelegate 绑定回调接收方
func (m *Mock) SetDelegate(d interfaces.ProviderDelegate) {
	m.mu.Lock()
	m.delegate = d
	m.mu.Unlock()
}

// StartNotifier 记录启动请求
func (m *Mock) StartNotifier() error {
	m.mu.Lock()
	delegate := m.delegate
	startErr := m.startErr
	m.mu.Unlock()

	if delegate == nil {
		panic("reachability: StartNotifier called before SetDelegate")
	}

	m.startCalls.Add(1)
	if startErr != nil {
		return startErr
	}
	m.running.Store(true)
	return nil
}

// StopNotifier 记录停止请求
func (m *Mock) StopNotifier() {
	m.stopCalls.Add(1)
	m.running.Store(false)
}

// Close 销毁
func (m *Mock) Close() error {
	m.StopNotifier()
	return nil
}

// Deliver 模拟一次底层标志位变化回调
//
// 在调用方的 goroutine 上同步调用委托，
// 模拟"回调来自任意队列"的交付模型。
func (m *Mock) Deliver(flags types.Flags) {
	m.mu.Lock()
	delegate := m.delegate
	m.mu.Unlock()

	if delegate != nil {
		delegate.DidChangeReachability(flags)
	}
}

// Running 检查通知器是否在运行
func (m *Mock) Running() bool {
	return m.running.Load()
}

// StartCalls 返回 StartNotifier 调用次数
func (m *Mock) StartCalls() int32 {
	return m.startCalls.Load()
}

// StopCalls 返回 StopNotifier 调用次数
func (m *Mock) StopCalls() int32 {
	return m.stopCalls.Load()
}
