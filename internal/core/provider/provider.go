// Package provider 实现默认路由可达性提供者
//
// Device 把"本机默认路由当前是否可用、经由何种传输"转换为
// 原始标志位，并在变化时回调绑定的接收方。事件源有两层：
//   - 平台原生变化监听（linux netlink / BSD 路由套接字），
//     收到事件后立即触发一次探测
//   - 定期轮询兜底（原生监听不可用的平台上是唯一事件源）
package provider

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/benbjohnson/clock"
	"golang.org/x/sync/singleflight"

	"github.com/dep2p/go-reachability/pkg/interfaces"
	"github.com/dep2p/go-reachability/pkg/lib/log"
	"github.com/dep2p/go-reachability/pkg/types"
)

var logger = log.Logger("core/provider")

// ============================================================================
//                              Device
// ============================================================================

// Device 默认路由可达性提供者
//
// 生命周期：创建一次，通知器按需启动、可反复启停，
// Close 后不可再用。通知器句柄由本类型独占，
// 上层只能经由 StartNotifier/StopNotifier 操作。
type Device struct {
	config *Config

	// clk 时钟（测试注入 mock）
	clk clock.Clock

	// probe 标志位探测函数（测试注入）
	probe func() (types.Flags, error)

	// probeGroup 并发探测去重：同一时刻的多个 Flags 调用
	// 共享一次真实探测
	probeGroup singleflight.Group

	// delegate 标志位变化回调接收方
	delegateMu sync.RWMutex
	delegate   interfaces.ProviderDelegate

	// 通知器生命周期（lcMu 串行化启停转换）
	lcMu    sync.Mutex
	cancel  context.CancelFunc
	watcher routeWatcher
	running atomic.Bool
	closed  atomic.Bool
	wg      sync.WaitGroup

	// kick 原生事件触发的立即探测信号
	kick chan struct{}

	// 上次已投递的标志位（用于变化检测）
	lastMu    sync.Mutex
	lastFlags types.Flags
	hasLast   bool
}

var _ interfaces.NetworkReachability = (*Device)(nil)

// NewDevice 创建默认路由提供者
//
// 在受支持的平台上创建总是成功；失败属于环境问题，
// 错误包装 types.ErrProviderCreation。
func NewDevice(config *Config) (*Device, error) {
	if config == nil {
		config = DefaultConfig()
	}
	config.Validate()

	return &Device{
		config: config,
		clk:    clock.New(),
		probe:  probeDefaultRoute,
		kick:   make(chan struct{}, 1),
	}, nil
}

// SetClock 设置时钟
//
// 用于测试注入 mock 时钟，必须在 StartNotifier 之前调用。
func (d *Device) SetClock(clk clock.Clock) {
	d.clk = clk
}

// SetProbe 设置标志位探测函数
//
// 用于测试注入可控探测结果，必须在 StartNotifier 之前调用。
func (d *Device) SetProbe(probe func() (types.Flags, error)) {
	d.probe = probe
}

// ============================================================================
//                              同步探测
// ============================================================================

// Flags 同步探测当前原始标志位
//
// 并发调用经 singleflight 去重为一次真实探测。
func (d *Device) Flags() (types.Flags, error) {
	if d.closed.Load() {
		return 0, types.ErrProviderClosed
	}

	v, err, _ := d.probeGroup.Do("probe", func() (interface{}, error) {
		return d.probe()
	})
	if err != nil {
		return 0, err
	}
	return v.(types.Flags), nil
}

// ============================================================================
//                              通知器生命周期
// ============================================================================

// SetDelegate 绑定回调接收方
func (d *Device) SetDelegate(delegate interfaces.ProviderDelegate) {
	d.delegateMu.Lock()
	d.delegate = delegate
	d.delegateMu.Unlock()
}

// StartNotifier 启动通知器
//
// 幂等：已在运行时为空操作。成功启动后轮询协程会
// 立即探测并投递一次当前标志位。
// 未绑定委托即启动属于编程错误，直接 panic。
func (d *Device) StartNotifier() error {
	d.delegateMu.RLock()
	delegate := d.delegate
	d.delegateMu.RUnlock()
	if delegate == nil {
		panic("reachability: StartNotifier called before SetDelegate")
	}

	d.lcMu.Lock()
	defer d.lcMu.Unlock()

	if d.closed.Load() {
		return fmt.Errorf("%w: %w", types.ErrNotifierRegistration, types.ErrProviderClosed)
	}
	if d.running.Load() {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())

	// 原生监听尽力而为，失败回退到纯轮询
	if d.config.EnableNativeWatcher {
		if w, err := newNativeWatcher(d.config); err != nil {
			logger.Debug("原生网络监听不可用，回退到轮询", "err", err)
		} else if err := w.Start(ctx); err != nil {
			logger.Warn("原生网络监听启动失败，回退到轮询", "err", err)
		} else {
			d.watcher = w
			d.wg.Add(1)
			go d.forwardEvents(ctx, w)
		}
	}

	d.cancel = cancel
	d.running.Store(true)

	d.wg.Add(1)
	go d.pollLoop(ctx)

	logger.Debug("可达性通知器已启动", "poll_interval", d.config.PollInterval)
	return nil
}

// StopNotifier 停止通知器
//
// 已停止时调用安全。不等待在途回调结束——本方法可能在
// 管理器的状态锁内被调用，等待会与回调路径互锁。
func (d *Device) StopNotifier() {
	d.lcMu.Lock()
	defer d.lcMu.Unlock()
	d.stopLocked()
}

func (d *Device) stopLocked() {
	if !d.running.CompareAndSwap(true, false) {
		return
	}

	d.cancel()
	d.cancel = nil

	if d.watcher != nil {
		if err := d.watcher.Stop(); err != nil {
			logger.Warn("停止原生网络监听失败", "err", err)
		}
		d.watcher = nil
	}

	// 重新启动后要再投递一次初始标志位
	d.lastMu.Lock()
	d.hasLast = false
	d.lastMu.Unlock()

	logger.Debug("可达性通知器已停止")
}

// Close 销毁提供者
//
// 无条件停止通知器并等待内部协程退出。幂等。
func (d *Device) Close() error {
	if !d.closed.CompareAndSwap(false, true) {
		return nil
	}

	d.StopNotifier()
	d.wg.Wait()
	return nil
}

// ============================================================================
//                              事件循环
// ============================================================================

// pollLoop 轮询主循环
//
// 启动后立即投递一次当前标志位，之后按间隔探测；
// 原生事件经 kick 触发立即探测。
func (d *Device) pollLoop(ctx context.Context) {
	defer d.wg.Done()

	d.checkOnce()

	ticker := d.clk.Ticker(d.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.checkOnce()
		case <-d.kick:
			d.checkOnce()
		}
	}
}

// forwardEvents 把原生监听事件转换为立即探测信号
func (d *Device) forwardEvents(ctx context.Context, w routeWatcher) {
	defer d.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-w.Events():
			if !ok {
				return
			}
			select {
			case d.kick <- struct{}{}:
			default:
				// 已有待处理的探测
			}
		}
	}
}

// checkOnce 执行一次探测并在变化时投递
func (d *Device) checkOnce() {
	flags, err := d.Flags()
	if err != nil {
		logger.Warn("可达性探测失败", "err", err)
		return
	}
	d.deliver(flags)
}

// deliver 变化检测 + 回调投递
//
// 首次（或重启后首次）探测无条件投递，之后只投递变化。
func (d *Device) deliver(flags types.Flags) {
	d.lastMu.Lock()
	changed := !d.hasLast || d.lastFlags != flags
	d.lastFlags = flags
	d.hasLast = true
	d.lastMu.Unlock()

	if !changed || !d.running.Load() {
		return
	}

	d.delegateMu.RLock()
	delegate := d.delegate
	d.delegateMu.RUnlock()

	if delegate != nil {
		delegate.DidChangeReachability(flags)
	}
}
