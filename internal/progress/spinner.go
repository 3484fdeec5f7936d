package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Indicator shows that a panel is waiting on the server.
type Indicator interface {
	SetBusy(busy bool)
}

// NewIndicator returns a Spinner on a terminal and a LineIndicator in CI.
func NewIndicator(label string) Indicator {
	if inCI() {
		return &LineIndicator{w: os.Stderr, label: label}
	}
	return &Spinner{label: label}
}

// Spinner animates an indeterminate progress bar on stderr while busy.
type Spinner struct {
	label string

	mu   sync.Mutex
	bar  *progressbar.ProgressBar
	stop chan struct{}
	done chan struct{}
}

// SetBusy starts or stops the animation. Repeated calls with the same
// value are no-ops.
func (s *Spinner) SetBusy(busy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if busy {
		if s.bar != nil {
			return
		}
		s.bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription(s.label),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)
		s.stop = make(chan struct{})
		s.done = make(chan struct{})
		go s.spin(s.bar, s.stop, s.done)
		return
	}

	if s.bar == nil {
		return
	}
	close(s.stop)
	<-s.done
	_ = s.bar.Finish()
	s.bar = nil
}

func (s *Spinner) spin(bar *progressbar.ProgressBar, stop, done chan struct{}) {
	defer close(done)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-stop:
			return
		case <-tick.C:
			_ = bar.Add(1)
		}
	}
}

// LineIndicator writes one line per state change.
type LineIndicator struct {
	w     io.Writer
	label string
	busy  bool
}

func (l *LineIndicator) SetBusy(busy bool) {
	if busy == l.busy {
		return
	}
	l.busy = busy
	if busy {
		fmt.Fprintf(l.w, "%s...\n", l.label)
	} else {
		fmt.Fprintf(l.w, "%s done\n", l.label)
	}
}
