/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"signaturepad/internal/pad"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
)

// BatchOptions controls exporting one result to several formats at once.
//
// Files are written as <OutDir>/<Preset>/<Name>.<ext>. Name defaults to
// "signature".
//
//nolint:revive // keep fields explicit for clarity
type BatchOptions struct {
	Preset  PresetName
	Formats []string // allowed: png, svg, pdf, json; empty means preset defaults
	OutDir  string
	Name    string
	Options Options
}

// BatchExport writes r in every format of the preset and returns the
// written paths in order.
func BatchExport(r pad.Result, opt BatchOptions) ([]string, error) {
	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	name := opt.Name
	if name == "" {
		name = "signature"
	}
	base := opt.OutDir
	if opt.Preset != "" {
		base = filepath.Join(base, string(opt.Preset))
	}
	o := opt.Options
	if opt.Preset == PresetPrint && o.DPI == 0 {
		o.DPI = 300
	}

	var written []string
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		switch f {
		case "png", "svg", "pdf", "json":
		default:
			return written, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
		}
		out := filepath.Join(base, name+"."+f)
		if err := Write(out, r, o); err != nil {
			return written, fmt.Errorf("%s: %w", f, err)
		}
		written = append(written, out)
	}
	return written, nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetWeb:
		return []string{"png", "svg", "json"}
	case PresetPrint:
		return []string{"pdf", "png"}
	default:
		return []string{"png"}
	}
}
