// Package safe_close 协调多个子服务的优雅关闭
package safe_close

import (
	"sync"
)

// SafeClose coordinates graceful shutdown across attached goroutines
// SafeClose 协调已注册协程的优雅关闭
//
// 每个子服务通过 Attach 注册，收到 closeSignal 后完成清理并调用 done。
// 任意子服务可通过 SendCloseSignal 触发整体关闭。
type SafeClose struct {
	mu          sync.Mutex
	wg          sync.WaitGroup
	closeSignal chan struct{}
	closed      bool
	err         error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach registers a sub-service goroutine
// Attach 注册一个子服务协程
// f 收到 closeSignal 后应完成清理并调用 done
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	done := func() {
		once.Do(s.wg.Done)
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal triggers shutdown, recording the first error
// SendCloseSignal 触发关闭，只记录第一个错误
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.closeSignal)
}

// WaitClosed blocks until all attached goroutines are done
// WaitClosed 阻塞直到所有已注册协程退出
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
