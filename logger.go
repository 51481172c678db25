package collide

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// maxLoggedMessages caps how many distinct messages a world remembers.
const maxLoggedMessages = 1024

// NewLogger returns the logger worlds use by default: stderr, prefixed "collide: ".
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.New(w, "collide: ", log.LstdFlags)
}

// onceLogger prints every distinct message once. Per-pair failures repeat
// every step, and one line per step would bury everything else.
type onceLogger struct {
	mu         sync.Mutex
	out        *log.Logger
	seen       map[string]struct{}
	suppressed bool
}

func newOnceLogger(l *log.Logger) *onceLogger {
	o := &onceLogger{seen: make(map[string]struct{})}
	o.setOutput(l)
	return o
}

func (o *onceLogger) setOutput(l *log.Logger) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	o.out = l
}

// Printf formats and prints the message unless it was printed before.
// It reports whether anything was written.
func (o *onceLogger) Printf(format string, args ...any) bool {
	msg := fmt.Sprintf(format, args...)
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.seen[msg]; ok {
		return false
	}
	if len(o.seen) >= maxLoggedMessages {
		if !o.suppressed {
			o.suppressed = true
			o.out.Printf("more than %d distinct errors, suppressing the rest", maxLoggedMessages)
		}
		return false
	}
	o.seen[msg] = struct{}{}
	o.out.Print(msg)
	return true
}

