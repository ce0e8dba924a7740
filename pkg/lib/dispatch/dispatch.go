// Package dispatch 提供串行回调投递队列
//
// 对应"统一投递上下文"的概念：所有用户可见的回调
// （持久委托通知、一次性观察者触发）都经由同一个队列
// 按入队顺序串行执行，给调用方一个单线程的响应环境。
package dispatch

import "sync"

// Queue 回调投递队列
type Queue interface {
	// Async 异步投递一个回调
	//
	// 只做入队，永不阻塞调用方，也绝不在调用方的栈上执行 fn。
	// 队列关闭后的投递被静默丢弃。
	Async(fn func())

	// Close 关闭队列
	//
	// 排空已入队的回调后停止工作协程。幂等，可安全并发调用。
	Close()
}

// ============================================================================
//                              SerialQueue
// ============================================================================

// SerialQueue 单工作协程的 FIFO 队列
//
// 入队顺序即执行顺序；队列无界，回调堆积只消耗内存不丢通知。
type SerialQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []func()
	closed  bool

	done chan struct{}
}

var _ Queue = (*SerialQueue)(nil)

// NewSerialQueue 创建并启动串行队列
func NewSerialQueue() *SerialQueue {
	q := &SerialQueue{
		done: make(chan struct{}),
	}
	q.cond = sync.NewCond(&q.mu)
	go q.run()
	return q
}

// Async 入队一个回调
func (q *SerialQueue) Async(fn func()) {
	if fn == nil {
		return
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	q.cond.Signal()
}

// Close 关闭队列并等待已入队回调执行完毕
func (q *SerialQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.closed = true
	q.mu.Unlock()

	q.cond.Signal()
	<-q.done
}

// run 工作协程主循环
func (q *SerialQueue) run() {
	defer close(q.done)

	for {
		q.mu.Lock()
		for len(q.pending) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.pending) == 0 && q.closed {
			q.mu.Unlock()
			return
		}
		fn := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		fn()
	}
}

// ============================================================================
//                              ImmediateQueue
// ============================================================================

// ImmediateQueue 在调用方栈上同步执行的队列
//
// 仅用于测试确定性；生产路径必须使用 SerialQueue，
// 否则用户回调会在持锁上下文中执行。
type ImmediateQueue struct{}

var _ Queue = ImmediateQueue{}

// NewImmediateQueue 创建同步队列
func NewImmediateQueue() ImmediateQueue {
	return ImmediateQueue{}
}

// Async 立即执行 fn
func (ImmediateQueue) Async(fn func()) {
	if fn != nil {
		fn()
	}
}

// Close 空操作
func (ImmediateQueue) Close() {}
