// Package reachability 提供网络可达性观察库
//
// Reachability 监视本机默认路由的可达状态，把底层标志位
// 归类为网络状态（不可达 / WiFi / WWAN），并向两类接收方分发变化：
//
//   - 一次性观察者: WhenReachable 注册，连通性要求被满足时
//     恰好触发一次后即移除
//   - 持久委托: SetDelegate 绑定，每次状态提交都会收到
//     (from, to) 变化通知
//
// # 核心概念
//
//   - Manager: 观察管理器，用户交互的主入口
//   - Provider: 底层可达性提供者（默认路由探测 + 变化通知器）
//   - Delegate: 持久状态变化接收方
//
// # 快速开始
//
//	import "github.com/dep2p/go-reachability"
//
//	// 1. 创建管理器
//	m, err := reachability.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Close()
//
//	// 2. 等待任意网络可用
//	m.WhenReachable(reachability.ConnectivityAny, func() {
//	    fmt.Println("network is up")
//	})
//
//	// 3. 持续观察状态变化
//	m.SetDelegate(myDelegate)
//	m.StartObservingNetworkStatus()
//
// 也可以直接使用进程级默认管理器：
//
//	reachability.WhenReachable(reachability.ConnectivityWiFi, onWiFi)
//
// # 交付模型
//
// 所有用户回调（观察者与委托）都经由一个串行投递队列异步执行，
// 永远不会在库内部锁内或底层回调的调用栈上同步触发。
// 委托通知按状态提交顺序投递。
//
// # 文件组织
//
//	doc.go          - 包文档（本文件）
//	reachability.go - Manager 构造与进程级默认实例
//	options.go      - 构造选项
//	types.go        - 公共类型别名
//	errors.go       - 公共错误定义
//	fx.go           - Fx 模块组装
package reachability
