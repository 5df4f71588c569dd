/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package config loads the user configuration: defaults, then the YAML file
// in the per-user config directory, then environment overrides. The file is
// checked against an embedded JSON schema before it is merged.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	applog "signaturepad/internal/log"
	"signaturepad/internal/pad"
)

// ErrInvalidConfig wraps schema violations and YAML syntax errors.
var ErrInvalidConfig = errors.New("invalid config")

//go:embed schema.json
var schemaJSON []byte

type PadConfig struct {
	StrokeColor  string  `yaml:"stroke_color"`
	StrokeWidth  float32 `yaml:"stroke_width"`
	TapThreshold float32 `yaml:"tap_threshold"`
	Strict       bool    `yaml:"strict"`
}

// CanvasConfig sizes the demo window pad and the CLI render surface.
type CanvasConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	Source     bool   `yaml:"source"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
}

// AppConfig is the user-editable configuration persisted as YAML.
// Environment variables are read-only overrides applied at load time.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Pad           PadConfig     `yaml:"pad"`
	Canvas        CanvasConfig  `yaml:"canvas"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Pad:           PadConfig{StrokeColor: "black", StrokeWidth: 3, TapThreshold: pad.DefaultTapThreshold},
		Canvas:        CanvasConfig{Width: 480, Height: 200, Background: "white"},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath   = "SGP_CONFIG"
	EnvStrokeColor  = "SGP_STROKE_COLOR"
	EnvStrokeWidth  = "SGP_STROKE_WIDTH"
	EnvTapThreshold = "SGP_TAP_THRESHOLD"
	EnvStrict       = "SGP_STRICT"
	EnvLogLevel     = "SGP_LOG_LEVEL"
	EnvLogFormat    = "SGP_LOG_FORMAT"
	EnvLogSource    = "SGP_LOG_SOURCE"
	EnvLogFile      = "SGP_LOG_FILE"
)

// ConfigPath returns the per-user config file path. SGP_CONFIG overrides it.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "SignaturePad")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "SignaturePad")
	default:
		if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
			base = filepath.Join(x, "signaturepad")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "signaturepad")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present) on top of the defaults and
// applies environment overrides. The returned config is always usable: a
// file that fails validation is skipped and the error is returned alongside.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path. A missing file is not an error.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	var ferr error
	if data, err := os.ReadFile(path); err == nil {
		fileCfg, err := Parse(data)
		if err != nil {
			ferr = fmt.Errorf("%s: %w", path, err)
		} else {
			mergeInto(&cfg, &fileCfg)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		ferr = fmt.Errorf("read config: %w", err)
	}
	applyEnvOverrides(&cfg)
	return cfg, ferr
}

// Parse validates YAML config data against the schema and decodes it.
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := Validate(data); err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Validate checks YAML config data against the embedded JSON schema.
// An empty document is valid.
func Validate(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if doc == nil {
		return nil
	}
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
	}
	return nil
}

// Save writes the config as YAML, creating the directory when needed.
func Save(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// PadOptions converts the pad section to pad.Options.
func (c AppConfig) PadOptions() pad.Options {
	return pad.Options{
		StrokeColor:  c.Pad.StrokeColor,
		StrokeWidth:  c.Pad.StrokeWidth,
		TapThreshold: c.Pad.TapThreshold,
		Strict:       c.Pad.Strict,
	}
}

// LogOptions converts the logging section to log.Options.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{
		Level:      c.Logging.Level,
		Format:     c.Logging.Format,
		AddSource:  c.Logging.Source,
		File:       c.Logging.File,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
	}
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if v := strings.TrimSpace(src.Pad.StrokeColor); v != "" {
		dst.Pad.StrokeColor = v
	}
	if src.Pad.StrokeWidth > 0 {
		dst.Pad.StrokeWidth = src.Pad.StrokeWidth
	}
	if src.Pad.TapThreshold > 0 {
		dst.Pad.TapThreshold = src.Pad.TapThreshold
	}
	dst.Pad.Strict = src.Pad.Strict
	if src.Canvas.Width > 0 {
		dst.Canvas.Width = src.Canvas.Width
	}
	if src.Canvas.Height > 0 {
		dst.Canvas.Height = src.Canvas.Height
	}
	if v := strings.TrimSpace(src.Canvas.Background); v != "" {
		dst.Canvas.Background = v
	}
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
	if src.Logging.MaxSizeMB > 0 {
		dst.Logging.MaxSizeMB = src.Logging.MaxSizeMB
	}
	if src.Logging.MaxBackups > 0 {
		dst.Logging.MaxBackups = src.Logging.MaxBackups
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvStrokeColor)); v != "" {
		cfg.Pad.StrokeColor = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStrokeWidth)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
			cfg.Pad.StrokeWidth = float32(f)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvTapThreshold)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
			cfg.Pad.TapThreshold = float32(f)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvStrict)); v != "" {
		cfg.Pad.Strict = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env := map[string]string{
		"pad.stroke_color":  EnvStrokeColor,
		"pad.stroke_width":  EnvStrokeWidth,
		"pad.tap_threshold": EnvTapThreshold,
		"pad.strict":        EnvStrict,
		"logging.level":     EnvLogLevel,
		"logging.format":    EnvLogFormat,
		"logging.source":    EnvLogSource,
		"logging.file":      EnvLogFile,
	}[key]
	if env != "" && os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}
