// Package main 提供 reachwatch 命令行入口
//
// 持续观察本机网络可达性并把状态变化打印到标准输出，
// 也可用 -wait 等待指定连通性出现后退出。
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	reachability "github.com/dep2p/go-reachability"
	"github.com/dep2p/go-reachability/pkg/lib/log"
)

var logger = log.Logger("reachability/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
var (
	pollInterval = flag.Duration("poll", 2*time.Second, "轮询探测间隔")
	nativeWatch  = flag.Bool("native", true, "启用平台原生变化监听")
	waitFor      = flag.String("wait", "", "等待指定连通性后退出 (any/wifi/wwan)")
	verbose      = flag.Bool("verbose", false, "输出调试日志")
	showVersion  = flag.Bool("version", false, "显示版本信息")
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		fmt.Printf("reachwatch %s\n", version)
		return nil
	}

	if *verbose {
		log.SetLevel(log.LevelDebug)
	}

	m, err := reachability.New(
		reachability.WithPollInterval(*pollInterval),
		reachability.WithNativeWatcher(*nativeWatch),
	)
	if err != nil {
		return fmt.Errorf("创建管理器: %w", err)
	}
	defer m.Close()

	// -wait 模式：等待指定连通性出现后退出
	if *waitFor != "" {
		via, err := parseConnectivity(*waitFor)
		if err != nil {
			return err
		}
		return waitReachable(m, via)
	}

	return watch(m)
}

// watch 持续观察并打印状态变化
func watch(m reachability.Manager) error {
	fmt.Printf("当前状态: %s\n", m.Status())

	m.SetDelegate(printDelegate{})
	m.StartObservingNetworkStatus()

	// 委托需要至少一个观察者在场才会收到通知，
	// 注册一个永不满足的占位观察者保持分发路径开启
	m.WhenReachable(reachability.ConnectivityWWAN, func() {
		logger.Debug("占位观察者触发")
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	fmt.Printf("\n收到信号 %s，退出\n", sig)
	m.StopObservingNetworkStatus()
	return nil
}

// waitReachable 阻塞等待连通性要求被满足
func waitReachable(m reachability.Manager, via reachability.Connectivity) error {
	done := make(chan struct{})
	m.WhenReachable(via, func() { close(done) })

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-done:
		fmt.Printf("网络可达: %s\n", m.Status())
		return nil
	case sig := <-sigCh:
		return fmt.Errorf("收到信号 %s，放弃等待", sig)
	}
}

// printDelegate 把状态变化打印到标准输出的委托
type printDelegate struct{}

func (printDelegate) ReachabilityDidChange(_ reachability.Manager, from, to reachability.NetworkStatus) {
	fmt.Printf("%s  %s -> %s\n", time.Now().Format(time.RFC3339), from, to)
}

// parseConnectivity 解析连通性参数
func parseConnectivity(s string) (reachability.Connectivity, error) {
	switch s {
	case "any":
		return reachability.ConnectivityAny, nil
	case "wifi":
		return reachability.ConnectivityWiFi, nil
	case "wwan":
		return reachability.ConnectivityWWAN, nil
	default:
		return 0, fmt.Errorf("未知连通性 %q (可选: any/wifi/wwan)", s)
	}
}
