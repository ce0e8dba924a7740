// Package guarded 提供互斥保护的单值容器
//
// 把一组必须整体读写的可变状态收敛到一个值里，
// 所有读写经由同一把互斥锁线性化，避免按字段分散加锁
// 导致的联合判断竞态。
package guarded

import "sync"

// Value 互斥保护的单值容器
//
// 零值不可用，必须通过 New 创建。
type Value[T any] struct {
	mu sync.Mutex
	v  T
}

// New 创建容器
func New[T any](initial T) *Value[T] {
	return &Value[T]{v: initial}
}

// Read 返回当前值的快照
//
// 返回值是拷贝；T 内含引用类型（切片、map）时，
// 调用方不得修改其指向的底层数据。
func (g *Value[T]) Read() T {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.v
}

// Write 以独占访问执行 mutate 并原子提交其修改
//
// mutate 必须是短促的纯内存操作：不做 I/O、不调用用户回调。
// 在 mutate 内再次调用同一容器的 Read/Write 会死锁，
// 这是使用方的编程错误而非运行时故障。
func (g *Value[T]) Write(mutate func(*T)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	mutate(&g.v)
}
