/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns an unrecovered panic into a report file and, when the
// caller supplies one, a rescue copy of the signature being drawn.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"signaturepad/internal/export"
	applog "signaturepad/internal/log"
	"signaturepad/internal/pad"
	"signaturepad/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Options for Recover.
type Options struct {
	// Dir receives the report; default os.TempDir().
	Dir string
	// Rescue, when set, returns the signature to save next to the report.
	// It must not block on locks the panicking goroutine may hold.
	Rescue func() (pad.Result, bool)
	// Exit replaces os.Exit when set.
	Exit func(code int)
}

// Recover captures a panic, logs it with the stack trace, writes a report
// file and the rescued signature, then exits with status 2.
//
// Usage: defer crash.Recover(crash.Options{...})
func Recover(o Options) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	stamp := time.Now().Format("20060102-150405")
	reportPath, err := writeReport(o.Dir, stamp, r, stack)
	if err != nil {
		l.Error("crash report failed", slog.Any("err", err))
	}
	if o.Rescue != nil {
		if path, err := rescue(o, stamp); err != nil {
			l.Error("signature rescue failed", slog.Any("err", err))
		} else if path != "" {
			l.Info("signature rescued", slog.String("path", path))
		}
	}

	if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
		l.Error("failed to write crash message to stderr", slog.Any("err", err))
	}
	if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
		l.Error("failed to write version info to stderr", slog.Any("err", err))
	}
	exit := exitFn
	if o.Exit != nil {
		exit = o.Exit
	}
	exit(2)
}

func reportDir(dir string) string {
	if dir == "" {
		return os.TempDir()
	}
	return dir
}

// rescue saves the signature as JSON; an empty signature is skipped.
func rescue(o Options, stamp string) (string, error) {
	res, ok := o.Rescue()
	if !ok || res.Empty() {
		return "", nil
	}
	path := filepath.Join(reportDir(o.Dir), fmt.Sprintf("signature-rescue-%s.json", stamp))
	if err := export.WriteJSON(path, res); err != nil {
		return "", err
	}
	return path, nil
}

func writeReport(dir, stamp string, panicVal any, stack []byte) (string, error) {
	dir = reportDir(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure report dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("crash-%s.log", stamp))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "SignaturePad Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, err
	}
	return path, nil
}
