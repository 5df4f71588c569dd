/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"signaturepad/internal/export"
	"signaturepad/internal/pad"
)

func silenceStderr(t *testing.T) {
	t.Helper()
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	t.Cleanup(func() {
		_ = w.Close()
		os.Stderr = oldStderr
		_, _ = io.Copy(io.Discard, r)
	})
}

func interceptExit(t *testing.T) *int {
	t.Helper()
	code := -1
	oldExit := exitFn
	exitFn = func(c int) { code = c }
	t.Cleanup(func() { exitFn = oldExit })
	return &code
}

func findFile(t *testing.T, dir, prefix, suffix string) string {
	t.Helper()
	files, _ := os.ReadDir(dir)
	for _, f := range files {
		if strings.HasPrefix(f.Name(), prefix) && strings.HasSuffix(f.Name(), suffix) {
			return filepath.Join(dir, f.Name())
		}
	}
	return ""
}

// TestRecover_WritesReportAndRescue ensures Recover handles a panic, writes a
// report plus the rescued signature, and requests exit code 2.
func TestRecover_WritesReportAndRescue(t *testing.T) {
	silenceStderr(t)
	code := interceptExit(t)
	dir := t.TempDir()
	want := pad.Result{Image: "data:image/png;base64,", SignaturePathSVG: "M1 1L9 9"}

	func() {
		defer Recover(Options{Dir: dir, Rescue: func() (pad.Result, bool) { return want, true }})
		panic("boom")
	}()

	report := findFile(t, dir, "crash-", ".log")
	if report == "" {
		t.Fatalf("expected crash report file in %s", dir)
	}
	b, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.Contains(b, []byte("Panic: boom")) {
		t.Fatalf("report does not contain panic: %s", string(b))
	}

	saved := findFile(t, dir, "signature-rescue-", ".json")
	if saved == "" {
		t.Fatalf("expected rescued signature in %s", dir)
	}
	got, err := export.ReadJSON(saved)
	if err != nil || got != want {
		t.Fatalf("rescued result = %+v (%v)", got, err)
	}
	if *code != 2 {
		t.Fatalf("expected exit code 2, got %d", *code)
	}
}

func TestRecover_EmptySignatureNotRescued(t *testing.T) {
	silenceStderr(t)
	interceptExit(t)
	dir := t.TempDir()
	func() {
		defer Recover(Options{Dir: dir, Rescue: func() (pad.Result, bool) { return pad.Result{}, true }})
		panic("boom")
	}()
	if findFile(t, dir, "signature-rescue-", "") != "" {
		t.Fatalf("empty signature should not be written")
	}
}

func TestRecover_NoPanic(t *testing.T) {
	code := interceptExit(t)
	func() {
		defer Recover(Options{Dir: t.TempDir()})
	}()
	if *code != -1 {
		t.Fatalf("exit called without panic")
	}
}
