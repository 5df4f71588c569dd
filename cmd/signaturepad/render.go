/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"signaturepad/internal/config"
	"signaturepad/internal/export"
	"signaturepad/internal/pad"
	"signaturepad/internal/raster"
	"signaturepad/internal/vector"
)

// renderArgs holds a parsed render or bundle command line.
type renderArgs struct {
	path   string
	out    string
	width  int
	height int
	opts   pad.Options
	bg     vector.Color
	fitW   int
	fitH   int
	preset export.PresetName
	crop   bool
	sized  bool // -w or -h given
}

// readPathArg returns s, or the trimmed contents of the file named after a
// leading "@".
func readPathArg(s string) (string, error) {
	name, ok := strings.CutPrefix(s, "@")
	if !ok {
		return s, nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read path file: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func parseRenderArgs(cfg config.AppConfig, path, out string, flags []string) (renderArgs, error) {
	p, err := readPathArg(path)
	if err != nil {
		return renderArgs{}, err
	}
	ra := renderArgs{
		path:   p,
		out:    out,
		width:  cfg.Canvas.Width,
		height: cfg.Canvas.Height,
		opts:   cfg.PadOptions(),
		preset: export.PresetWeb,
	}
	// command-line input is rejected rather than silently dropped
	ra.opts.Strict = true
	ra.opts.ExistingSignatureSVG = p
	bg := cfg.Canvas.Background

	next := func(i int) (string, error) {
		if i+1 >= len(flags) {
			return "", fmt.Errorf("%s requires a value", flags[i])
		}
		return flags[i+1], nil
	}
	for i := 0; i < len(flags); i += 2 {
		if flags[i] == "-crop" {
			ra.crop = true
			i--
			continue
		}
		v, err := next(i)
		if err != nil {
			return renderArgs{}, err
		}
		switch flags[i] {
		case "-w":
			if ra.width, err = positiveInt(v); err != nil {
				return renderArgs{}, fmt.Errorf("-w: %w", err)
			}
			ra.sized = true
		case "-h":
			if ra.height, err = positiveInt(v); err != nil {
				return renderArgs{}, fmt.Errorf("-h: %w", err)
			}
			ra.sized = true
		case "-color":
			ra.opts.StrokeColor = v
		case "-stroke":
			f, err := strconv.ParseFloat(v, 32)
			if err != nil || f <= 0 {
				return renderArgs{}, fmt.Errorf("-stroke: want a positive number, got %q", v)
			}
			ra.opts.StrokeWidth = float32(f)
		case "-bg":
			bg = v
		case "-fit":
			if ra.fitW, ra.fitH, err = export.ParseSize(v); err != nil {
				return renderArgs{}, fmt.Errorf("-fit: %w", err)
			}
		case "-preset":
			switch export.PresetName(v) {
			case export.PresetWeb, export.PresetPrint:
				ra.preset = export.PresetName(v)
			default:
				return renderArgs{}, fmt.Errorf("-preset: unknown preset %q", v)
			}
		default:
			return renderArgs{}, fmt.Errorf("unknown flag %q", flags[i])
		}
	}
	if ra.bg, err = vector.ParseColor(bg); err != nil {
		return renderArgs{}, fmt.Errorf("-bg: %w", err)
	}
	return ra, nil
}

func positiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("want a positive integer, got %q", s)
	}
	return n, nil
}

// result draws the path on an offscreen surface and exports it.
func (ra renderArgs) result() (pad.Result, vector.Stroke, error) {
	p, err := pad.New(ra.opts)
	if err != nil {
		return pad.Result{}, vector.Stroke{}, err
	}
	s := raster.NewSurface(ra.width, ra.height, 1, p)
	s.SetBackground(ra.bg.NRGBA())
	p.Attach(s)
	r, err := p.GetResultE()
	return r, p.Paint(), err
}

func (ra renderArgs) exportOptions(paint vector.Stroke) export.Options {
	o := export.Options{
		Width:      ra.width,
		Height:     ra.height,
		Stroke:     paint,
		Background: ra.bg,
		FitW:       ra.fitW,
		FitH:       ra.fitH,
		Crop:       ra.crop,
	}
	if ra.crop && !ra.sized {
		// size the vector canvas to the cropped path
		o.Width, o.Height = 0, 0
	}
	return o
}

func (ra renderArgs) render() error {
	r, paint, err := ra.result()
	if err != nil {
		return err
	}
	return export.Write(ra.out, r, ra.exportOptions(paint))
}

func (ra renderArgs) bundle() ([]string, error) {
	r, paint, err := ra.result()
	if err != nil {
		return nil, err
	}
	return export.BatchExport(r, export.BatchOptions{
		Preset:  ra.preset,
		OutDir:  ra.out,
		Options: ra.exportOptions(paint),
	})
}
