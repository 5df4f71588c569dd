/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withConfigFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if body != "" {
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}
	t.Setenv(EnvConfigPath, p)
	return p
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	withConfigFile(t, "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Defaults() {
		t.Fatalf("expected defaults, got %#v", cfg)
	}
}

func TestLoad_FileValues(t *testing.T) {
	withConfigFile(t, `
config_version: 1
pad:
  stroke_color: "#1e40af"
  stroke_width: 2.5
  tap_threshold: 4
  strict: true
canvas:
  width: 600
  height: 240
logging:
  level: DEBUG
  max_backups: 7
`)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Pad.StrokeColor != "#1e40af" || cfg.Pad.StrokeWidth != 2.5 || cfg.Pad.TapThreshold != 4 || !cfg.Pad.Strict {
		t.Fatalf("pad section not merged: %#v", cfg.Pad)
	}
	if cfg.Canvas.Width != 600 || cfg.Canvas.Height != 240 || cfg.Canvas.Background != "white" {
		t.Fatalf("canvas section not merged: %#v", cfg.Canvas)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" || cfg.Logging.MaxBackups != 7 {
		t.Fatalf("logging section not merged: %#v", cfg.Logging)
	}
}

func TestLoad_InvalidFileIsSkipped(t *testing.T) {
	withConfigFile(t, "pad:\n  stroke_width: -2\n  pen: blue\n")
	cfg, err := Load()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if cfg.Pad.StrokeWidth != 3 {
		t.Fatalf("invalid file should not be merged: %#v", cfg.Pad)
	}
	if !strings.Contains(err.Error(), "pen") {
		t.Fatalf("validation error should name the unknown field: %v", err)
	}
}

func TestValidate_SyntaxError(t *testing.T) {
	if err := Validate([]byte("pad: [unclosed")); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if err := Validate(nil); err != nil {
		t.Fatalf("empty document should be valid: %v", err)
	}
}

func TestEnvOverridesPad(t *testing.T) {
	withConfigFile(t, "pad:\n  stroke_color: green\n")
	t.Setenv(EnvStrokeColor, "red")
	t.Setenv(EnvStrokeWidth, "5")
	t.Setenv(EnvTapThreshold, "not-a-number")
	t.Setenv(EnvStrict, "yes")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Pad.StrokeColor != "red" || cfg.Pad.StrokeWidth != 5 || !cfg.Pad.Strict {
		t.Fatalf("env overrides not applied: %#v", cfg.Pad)
	}
	if cfg.Pad.TapThreshold != 1 {
		t.Fatalf("unparseable threshold should be ignored: %v", cfg.Pad.TapThreshold)
	}
	if env, ok := EnvOverrideFor("pad.stroke_color"); !ok || env != EnvStrokeColor {
		t.Fatalf("EnvOverrideFor = %q %v", env, ok)
	}
	if _, ok := EnvOverrideFor("canvas.width"); ok {
		t.Fatalf("canvas.width has no env override")
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "debug"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/sgp.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/sgp.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	withConfigFile(t, "")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "/tmp/sgp.log")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "/tmp/sgp.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
	lo := cfg.LogOptions()
	if lo.Level != "error" || !lo.AddSource || lo.File != "/tmp/sgp.log" {
		t.Fatalf("LogOptions mismatch: %#v", lo)
	}
}

func TestSaveAndPadOptions(t *testing.T) {
	p := withConfigFile(t, "")
	cfg := Defaults()
	cfg.Pad.StrokeColor = "navy"
	cfg.Pad.TapThreshold = 2
	if err := Save(p, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got != cfg {
		t.Fatalf("saved config not reloaded: %#v", got)
	}
	po := got.PadOptions()
	if po.StrokeColor != "navy" || po.StrokeWidth != 3 || po.TapThreshold != 2 || po.Strict {
		t.Fatalf("PadOptions mismatch: %#v", po)
	}
}
