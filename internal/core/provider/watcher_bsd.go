//go:build darwin || freebsd || netbsd || openbsd

package provider

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"syscall"

	"golang.org/x/net/route"
)

// routeSocketWatcher BSD 系平台的原生网络变化监听器
//
// 打开 AF_ROUTE 原始套接字，内核会把路由表、地址与
// 链路状态变化以 routing message 推送过来。
type routeSocketWatcher struct {
	config *Config

	fd      int
	events  chan struct{}
	stopped atomic.Bool
	wg      sync.WaitGroup
}

// newNativeWatcher 创建平台原生监听器（BSD 路由套接字实现）
func newNativeWatcher(config *Config) (routeWatcher, error) {
	return &routeSocketWatcher{
		config: config,
		fd:     -1,
		events: make(chan struct{}, config.EventBufferSize),
	}, nil
}

// Start 打开路由套接字并启动读取循环
func (w *routeSocketWatcher) Start(_ context.Context) error {
	fd, err := syscall.Socket(syscall.AF_ROUTE, syscall.SOCK_RAW, syscall.AF_UNSPEC)
	if err != nil {
		return fmt.Errorf("create routing socket: %w", err)
	}

	w.fd = fd
	w.wg.Add(1)
	go w.readLoop()
	return nil
}

// readLoop 读取并解析 routing message
func (w *routeSocketWatcher) readLoop() {
	defer w.wg.Done()

	buf := make([]byte, 4096)
	for {
		n, err := syscall.Read(w.fd, buf)
		if err != nil {
			if w.stopped.Load() || err != syscall.EINTR {
				if !w.stopped.Load() {
					logger.Warn("路由套接字读取失败，原生监听退出", "err", err)
				}
				return
			}
			continue
		}
		if n == 0 {
			return
		}

		// 能解析出任何 routing message 就视为一次网络变化；
		// 解析失败的消息直接忽略
		msgs, err := route.ParseRIB(route.RIBTypeRoute, buf[:n])
		if err != nil || len(msgs) == 0 {
			continue
		}

		select {
		case w.events <- struct{}{}:
		default:
		}
	}
}

// Stop 停止监听
func (w *routeSocketWatcher) Stop() error {
	if !w.stopped.CompareAndSwap(false, true) {
		return nil
	}
	if w.fd >= 0 {
		syscall.Close(w.fd)
	}
	w.wg.Wait()
	close(w.events)
	return nil
}

// Events 返回事件通道
func (w *routeSocketWatcher) Events() <-chan struct{} {
	return w.events
}
