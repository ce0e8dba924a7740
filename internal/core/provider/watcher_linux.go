//go:build linux

package provider

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// netlinkWatcher linux 原生网络变化监听器
//
// 订阅 NETLINK_ROUTE 的链路/地址/路由组播组，
// 内核推送的每条消息都视为一次网络变化。
type netlinkWatcher struct {
	config *Config

	fd      int
	events  chan struct{}
	stopped atomic.Bool
	wg      sync.WaitGroup
}

// newNativeWatcher 创建平台原生监听器（linux 实现）
func newNativeWatcher(config *Config) (routeWatcher, error) {
	return &netlinkWatcher{
		config: config,
		fd:     -1,
		events: make(chan struct{}, config.EventBufferSize),
	}, nil
}

// Start 创建并绑定 netlink 套接字，启动读取循环
func (w *netlinkWatcher) Start(_ context.Context) error {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.NETLINK_ROUTE)
	if err != nil {
		return fmt.Errorf("create netlink socket: %w", err)
	}

	addr := &unix.SockaddrNetlink{
		Family: unix.AF_NETLINK,
		Groups: unix.RTMGRP_LINK |
			unix.RTMGRP_IPV4_IFADDR | unix.RTMGRP_IPV4_ROUTE |
			unix.RTMGRP_IPV6_IFADDR | unix.RTMGRP_IPV6_ROUTE,
	}
	if err := unix.Bind(fd, addr); err != nil {
		unix.Close(fd)
		return fmt.Errorf("bind netlink socket: %w", err)
	}

	w.fd = fd
	w.wg.Add(1)
	go w.readLoop()
	return nil
}

// readLoop 读取内核推送的 netlink 消息
//
// Stop 关闭套接字后 Recvfrom 返回错误，循环随之退出。
func (w *netlinkWatcher) readLoop() {
	defer w.wg.Done()

	buf := make([]byte, 4096)
	for {
		n, _, err := unix.Recvfrom(w.fd, buf, 0)
		if err != nil {
			if w.stopped.Load() || err != unix.EINTR {
				if !w.stopped.Load() {
					logger.Warn("netlink 读取失败，原生监听退出", "err", err)
				}
				return
			}
			continue
		}
		if n == 0 {
			return
		}

		select {
		case w.events <- struct{}{}:
		default:
			// 事件只是探测触发器，堆积时丢弃无损
		}
	}
}

// Stop 停止监听
func (w *netlinkWatcher) Stop() error {
	if !w.stopped.CompareAndSwap(false, true) {
		return nil
	}
	if w.fd >= 0 {
		unix.Close(w.fd)
	}
	w.wg.Wait()
	close(w.events)
	return nil
}

// Events 返回事件通道
func (w *netlinkWatcher) Events() <-chan struct{} {
	return w.events
}
