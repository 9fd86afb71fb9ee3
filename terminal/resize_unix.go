//go:build unix

package terminal

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// resizeWatcher flags SIGWINCH arrivals for the event loop to sample
// It deliberately does not apply the new size itself: the editor is the
// sole mutator of screen dimensions
type resizeWatcher struct {
	pending atomic.Bool
	sigCh   chan os.Signal
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func newResizeWatcher() *resizeWatcher {
	return &resizeWatcher{
		sigCh:  make(chan os.Signal, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// start begins listening for SIGWINCH
func (r *resizeWatcher) start() {
	signal.Notify(r.sigCh, syscall.SIGWINCH)
	go r.watchLoop()
}

// stop stops the watcher and waits for the goroutine to exit
func (r *resizeWatcher) stop() {
	signal.Stop(r.sigCh)
	close(r.stopCh)
	<-r.doneCh
}

// watchLoop monitors for resize signals
func (r *resizeWatcher) watchLoop() {
	defer close(r.doneCh)

	for {
		select {
		case <-r.stopCh:
			return
		case <-r.sigCh:
			r.pending.Store(true)
		}
	}
}
