/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes a captured signature to files: the PNG snapshot,
// a standalone SVG document, a single-page PDF and the JSON result.
package export

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"signaturepad/internal/pad"
	"signaturepad/internal/vector"
)

// ErrUnknownFormat is returned by Write for an unsupported file extension.
var ErrUnknownFormat = errors.New("export: unknown format")

// Options controls the vector exporters and the PNG resize.
//
//nolint:revive // keep fields explicit for clarity
type Options struct {
	// Width and Height give the canvas in pixels. When zero, the path bounds
	// plus one stroke width of margin are used.
	Width, Height int
	// Stroke is the pen; a zero Width selects vector.NewStrokePaint defaults.
	Stroke vector.Stroke
	// Background is painted under the path when its alpha is non-zero.
	Background vector.Color
	// DPI maps pixels to PDF points; default 96.
	DPI float64
	// FitW and FitH bound the PNG output size, keeping the aspect ratio.
	FitW, FitH int
	// Crop shifts the path so its bounds, grown by one stroke width, start
	// at the origin. Vector formats only; the PNG keeps the surface layout.
	Crop bool
}

func (o Options) stroke() vector.Stroke {
	if o.Stroke.Width > 0 {
		return o.Stroke
	}
	s, _ := vector.NewStrokePaint(0, "")
	return s
}

func (o Options) dpi() float64 {
	if o.DPI <= 0 {
		return 96
	}
	return o.DPI
}

// canvas returns the output size in pixels for p.
func (o Options) canvas(p *vector.Path) (w, h int) {
	if o.Width > 0 && o.Height > 0 {
		return o.Width, o.Height
	}
	b := p.Bounds()
	m := o.stroke().Width
	w = int(math.Ceil(float64(b.X + b.W + m)))
	h = int(math.Ceil(float64(b.Y + b.H + m)))
	if o.Width > 0 {
		w = o.Width
	}
	if o.Height > 0 {
		h = o.Height
	}
	return max(w, 1), max(h, 1)
}

// layout returns the path as it is placed on the canvas and the canvas size.
func (o Options) layout(p *vector.Path) (*vector.Path, int, int) {
	if o.Crop && !p.Empty() {
		m := o.stroke().Width
		origin := p.Bounds().Inset(-m, -m).Min()
		p = p.Transform(vector.Translate(-origin.X, -origin.Y))
	}
	w, h := o.canvas(p)
	return p, w, h
}

// Write picks the exporter from the extension of path: .png, .svg, .pdf or .json.
func Write(path string, r pad.Result, opt Options) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return WritePNG(path, r, opt)
	case ".svg":
		return WriteSVG(path, r, opt)
	case ".pdf":
		return WritePDF(path, r, opt)
	case ".json":
		return WriteJSON(path, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// ParseSize parses "WxH" into positive integers.
func ParseSize(s string) (w, h int, err error) {
	a, b, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WxH", s)
	}
	if w, err = strconv.Atoi(a); err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("size %q: bad width", s)
	}
	if h, err = strconv.Atoi(b); err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("size %q: bad height", s)
	}
	return w, h, nil
}

func parsePath(r pad.Result) (*vector.Path, error) {
	p, err := vector.ParseSVGPath(r.SignaturePathSVG)
	if err != nil {
		return nil, fmt.Errorf("signature path: %w", err)
	}
	return p, nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	return nil
}
