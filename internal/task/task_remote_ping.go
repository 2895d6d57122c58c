package task

import (
	"context"
	"expvar"
	"time"

	"github.com/haierkeys/notes-web-client/internal/remote"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var (
	// 远端探测指标，经私有端口的 /metrics 与 /debug/vars 暴露
	pingLatencyGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "remote_ping_latency_seconds",
		Help: "Latency of the last remote API reachability probe.",
	})
	pingFailureCount = expvar.NewInt("remote_ping_failures")
)

func init() {
	prometheus.MustRegister(pingLatencyGauge)
}

// RemotePingTask 周期性探测远端笔记服务的可用性
// 探测失败只记日志与计数，不影响正常请求
type RemotePingTask struct {
	client   *remote.Client
	logger   *zap.Logger
	interval time.Duration
}

func NewRemotePingTask(client *remote.Client, logger *zap.Logger, interval time.Duration) *RemotePingTask {
	return &RemotePingTask{
		client:   client,
		logger:   logger,
		interval: interval,
	}
}

func (t *RemotePingTask) Name() string {
	return "remote_ping"
}

func (t *RemotePingTask) LoopInterval() time.Duration {
	return t.interval
}

func (t *RemotePingTask) IsStartupRun() bool {
	return true
}

func (t *RemotePingTask) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	start := time.Now()
	if err := t.client.Ping(ctx); err != nil {
		pingFailureCount.Add(1)
		t.logger.Warn("remote service unreachable", zap.Error(err))
		return nil
	}

	elapsed := time.Since(start)
	pingLatencyGauge.Set(elapsed.Seconds())
	t.logger.Debug("remote service reachable", zap.Duration("latency", elapsed))
	return nil
}
