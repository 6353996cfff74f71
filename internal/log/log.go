// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// SEQCTL_LOG env variable.
func InitLogger() {
	InitLoggerTo(os.Stderr)
}

// InitLoggerTo is InitLogger with an explicit destination. Unknown levels fall
// back to ERROR.
func InitLoggerTo(w io.Writer) {
	level := strings.ToUpper(os.Getenv("SEQCTL_LOG"))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(&CustomHandler{Writer: w})
	if l, err := log.ParseLevel(strings.ToLower(level)); err == nil {
		log.SetLevel(l)
	} else {
		log.SetLevel(log.ErrorLevel)
	}
}

// CustomHandler formats log messages and writes them to Writer, which stays
// off stdout so results can be piped.
type CustomHandler struct {
	Writer io.Writer
	mu     sync.Mutex
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	w := h.Writer
	if w == nil {
		w = os.Stderr
	}

	timestamp := e.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	level := strings.ToUpper(e.Level.String())

	var fields strings.Builder
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&fields, " %s=%v", name, e.Fields.Get(name))
	}

	_, err := fmt.Fprintf(w, "%s %.1s %s%s\n",
		timestamp.Format("2006-01-02 15:04:05"), level, e.Message, fields.String())
	return err
}
