// Package manager 实现可达性观察管理器
//
// 管理器是整个库的状态机核心，协调三件事：
//   - 多线程共享的观察状态（全局开关 + 观察者列表 + 前值状态）
//   - 底层通知器的按需启动 / 闲置即停
//   - 把单个底层事件扇出给持久委托与多个一次性观察者
package manager

import (
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-reachability/pkg/interfaces"
	"github.com/dep2p/go-reachability/pkg/lib/dispatch"
	"github.com/dep2p/go-reachability/pkg/lib/guarded"
	"github.com/dep2p/go-reachability/pkg/lib/log"
	"github.com/dep2p/go-reachability/pkg/types"
)

var logger = log.Logger("core/manager")

// ============================================================================
//                              观察状态
// ============================================================================

// observationState 观察状态
//
// 这是唯一的一份共享可变状态。三个字段必须整体原子读写：
// "通知器该不该停"同时取决于 enabled 和 observers，
// 按字段分散加锁会产生联合判断竞态，所以收敛到一个
// guarded.Value 里。
type observationState struct {
	// enabled 全局观察开关
	enabled bool

	// observers 一次性观察者注册表（保持注册顺序）
	// 不做去重：同一回调注册两次就触发两次
	observers []observer

	// previousStatus 上一次投递给持久委托的状态
	//
	// 注意：只在委托通知路径上更新，不是"上一次计算出的状态"。
	// 这样跨多次回调仍保持正确的 from → to 语义。
	previousStatus types.NetworkStatus
}

// ============================================================================
//                              Manager
// ============================================================================

// Manager 可达性观察管理器
//
// 实现 interfaces.ReachabilityManager。所有公开方法可从任意
// goroutine 并发调用；底层提供者的回调也可能来自任意 goroutine。
type Manager struct {
	// state 共享观察状态（唯一的状态锁）
	state *guarded.Value[observationState]

	// provider 底层可达性提供者
	provider interfaces.NetworkReachability

	// queue 统一回调投递队列
	// 用户回调绝不在状态锁内同步执行，全部经由此队列
	// 按状态变更提交顺序串行投递
	queue dispatch.Queue

	// delegate 持久委托（非持有性注册，nil 即未注册）
	// 单独加锁：委托的有无不参与通知器启停决策
	delegateMu sync.RWMutex
	delegate   interfaces.ReachabilityDelegate

	closed atomic.Bool
}

var _ interfaces.ReachabilityManager = (*Manager)(nil)
var _ interfaces.ProviderDelegate = (*Manager)(nil)

// NewManager 创建管理器
//
// 构造时即把自身绑定为提供者的回调接收方，
// 满足"通知器启动前必须已绑定委托"的前置条件。
func NewManager(provider interfaces.NetworkReachability, queue dispatch.Queue) *Manager {
	if provider == nil {
		panic("reachability: NewManager called with nil provider")
	}
	if queue == nil {
		queue = dispatch.NewSerialQueue()
	}

	m := &Manager{
		state:    guarded.New(observationState{}),
		provider: provider,
		queue:    queue,
	}
	provider.SetDelegate(m)
	return m
}

// ============================================================================
//                              全局观察开关
// ============================================================================

// StartObservingNetworkStatus 开启全局观察
//
// 开关置位与通知器启动在同一个写事务里完成。
// 通知器启动失败只记录日志并吞掉：开关仍保持开启，
// 调用方没有任何失败信号（已知弱点，行为保持不变）。
func (m *Manager) StartObservingNetworkStatus() {
	m.state.Write(func(s *observationState) {
		s.enabled = true
		m.startNotifier()
	})
}

// StopObservingNetworkStatus 关闭全局观察
//
// 仍有一次性观察者等待时不停通知器，它们还需要后续投递。
func (m *Manager) StopObservingNetworkStatus() {
	m.state.Write(func(s *observationState) {
		s.enabled = false
		if len(s.observers) == 0 {
			m.provider.StopNotifier()
		}
	})
}

// ============================================================================
//                              一次性观察者
// ============================================================================

// WhenReachable 注册一次性观察者
//
// 注册与通知器启动是两个独立动作，锁之间不保持：
// 先在一个写事务里追加观察者，随后在锁外无条件尝试
// 启动通知器（已在运行时为幂等空操作）。
func (m *Manager) WhenReachable(via types.Connectivity, onConnect func()) {
	if onConnect == nil {
		return
	}

	m.state.Write(func(s *observationState) {
		s.observers = append(s.observers, observer{
			connectivity: via,
			onConnect:    onConnect,
		})
	})

	m.startNotifier()
}

// startNotifier 尝试启动通知器，失败只记日志
func (m *Manager) startNotifier() {
	if err := m.provider.StartNotifier(); err != nil {
		logger.Warn("可达性通知器启动失败，观察请求保持不变", "err", err)
	}
}

// ============================================================================
//                              提供者回调
// ============================================================================

// DidChangeReachability 底层标志位变化回调
//
// 由提供者在任意 goroutine 上调用，用户代码不直接调用。
//
// 已知的耦合：观察者列表为空时整个处理直接返回，
// 连持久委托也不会收到通知——委托只在至少有一个观察者
// 注册期间才能观察到状态变更。疑似上游缺陷，但为保持
// 行为一致原样保留。
func (m *Manager) DidChangeReachability(flags types.Flags) {
	snapshot := m.state.Read()
	if len(snapshot.observers) == 0 {
		return
	}

	status := flags.Status()

	m.state.Write(func(s *observationState) {
		// 1. 全局观察开启且有委托时，投递 (from, to) 通知；
		//    previousStatus 仅在此路径上推进
		if s.enabled {
			m.delegateMu.RLock()
			d := m.delegate
			m.delegateMu.RUnlock()

			if d != nil {
				from, to := s.previousStatus, status
				m.queue.Async(func() {
					d.ReachabilityDidChange(m, from, to)
				})
				s.previousStatus = status
			}
		}

		// 2. 按新状态划分观察者：满足的移除，其余留在注册表
		var satisfied []observer
		remaining := s.observers[:0]
		for _, o := range s.observers {
			if status.ConnectedVia(o.connectivity) {
				satisfied = append(satisfied, o)
			} else {
				remaining = append(remaining, o)
			}
		}
		s.observers = remaining

		// 3. 没有观察者剩余且全局观察已关闭 → 通知器闲置即停
		if len(remaining) == 0 && !s.enabled {
			m.provider.StopNotifier()
		}

		// 4. 满足的观察者逐个异步投递（绝不在锁内执行用户回调）
		for _, o := range satisfied {
			m.queue.Async(o.onConnect)
		}

		logger.Debug("可达性状态已提交",
			"flags", flags.String(),
			"status", status.String(),
			"satisfied", len(satisfied),
			"remaining", len(remaining))
	})
}

// ============================================================================
//                              委托与查询
// ============================================================================

// SetDelegate 设置持久委托
//
// 非持有性注册：传 nil 解除。已解除后提交的状态变更
// 会被静默跳过。
func (m *Manager) SetDelegate(d interfaces.ReachabilityDelegate) {
	m.delegateMu.Lock()
	m.delegate = d
	m.delegateMu.Unlock()
}

// Status 同步探测当前语义状态
func (m *Manager) Status() types.NetworkStatus {
	flags, err := m.provider.Flags()
	if err != nil {
		logger.Debug("可达性标志探测失败", "err", err)
		return types.StatusUnknown
	}
	return flags.Status()
}

// IsReachable 检查当前是否可达（任意传输）
func (m *Manager) IsReachable() bool {
	return m.Status().IsReachable()
}

// IsReachableViaWiFi 检查当前是否经 WiFi/有线可达
func (m *Manager) IsReachableViaWiFi() bool {
	return m.Status() == types.StatusReachableViaWiFi
}

// IsReachableViaWWAN 检查当前是否经蜂窝网络可达
func (m *Manager) IsReachableViaWWAN() bool {
	return m.Status() == types.StatusReachableViaWWAN
}

// ============================================================================
//                              销毁
// ============================================================================

// Close 销毁管理器
//
// 无条件停止并销毁提供者，随后排空投递队列。
// 已入队的回调仍会执行完毕。幂等。
func (m *Manager) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}

	err := m.provider.Close()
	m.queue.Close()

	logger.Info("可达性管理器已销毁")
	return err
}
