/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package pad is the signature capture core: a touch tracker that builds a
// vector path from down/move/up events, the stroke paint, and export of the
// drawing as a PNG data URI plus SVG path data. It knows nothing about the
// windowing toolkit; internal/ui adapts Fyne input onto it.
package pad

import (
	"fmt"
	"image"
	"log/slog"
	"strings"

	applog "signaturepad/internal/log"
	"signaturepad/internal/raster"
	"signaturepad/internal/vector"
)

// Surface is the drawable the pad renders into.
type Surface interface {
	Snapshot() (image.Image, error)
	Redraw()
}

// Options configures a Pad. The zero value is usable.
type Options struct {
	// ExistingSignatureSVG seeds the path with SVG path data.
	ExistingSignatureSVG string
	// StrokeColor is any CSS/SVG color; default "black".
	StrokeColor string
	// StrokeWidth in surface units; default 3.
	StrokeWidth float32
	// OnDrawingEnd runs after a gesture that moved at least TapThreshold.
	OnDrawingEnd func(Result)
	// TapThreshold defaults to DefaultTapThreshold.
	TapThreshold float32
	// Strict makes New fail on a bad seed path or stroke color instead of
	// logging and falling back.
	Strict bool
	Logger *slog.Logger
}

// Pad owns the signature path for its lifetime. It is not safe for
// concurrent use; callers serialize access.
type Pad struct {
	path    *vector.Path
	paint   vector.Stroke
	tracker *Tracker
	surface Surface
	onEnd   func(Result)
	log     *slog.Logger
}

var (
	_ Handle       = (*Pad)(nil)
	_ raster.Scene = (*Pad)(nil)
)

// New builds a Pad from opts.
func New(opts Options) (*Pad, error) {
	l := opts.Logger
	if l == nil {
		l = applog.WithComponent("pad")
	}
	p := &Pad{path: &vector.Path{}, onEnd: opts.OnDrawingEnd, log: l}

	paint, err := vector.NewStrokePaint(opts.StrokeWidth, opts.StrokeColor)
	if err != nil {
		if opts.Strict {
			return nil, fmt.Errorf("stroke color: %w", err)
		}
		l.Warn("invalid stroke color, using default", slog.String("color", opts.StrokeColor), slog.Any("err", err))
	}
	p.paint = paint

	if seed := strings.TrimSpace(opts.ExistingSignatureSVG); seed != "" {
		sp, err := vector.ParseSVGPath(seed)
		switch {
		case err == nil:
			p.path = sp
		case opts.Strict:
			return nil, fmt.Errorf("existing signature: %w", err)
		default:
			l.Warn("ignoring unparseable existing signature", slog.Any("err", err))
		}
	}
	p.tracker = NewTracker(p.path, opts.TapThreshold)
	return p, nil
}

// Attach sets the surface used for redraws and snapshots. Nil detaches.
func (p *Pad) Attach(s Surface) {
	p.surface = s
	p.redraw()
}

// Start begins a gesture at (x, y).
func (p *Pad) Start(x, y float32) {
	p.tracker.Start(x, y)
	p.log.Debug("stroke start", slog.String("stroke_id", p.tracker.GestureID()),
		slog.Float64("x", float64(x)), slog.Float64("y", float64(y)))
}

// Move extends the current stroke and requests a redraw.
func (p *Pad) Move(x, y float32) {
	if p.tracker.Move(x, y) {
		p.redraw()
	}
}

// End finishes the gesture. A gesture that travelled at least the tap
// threshold fires OnDrawingEnd with a fresh Result; taps do not.
func (p *Pad) End(x, y float32) {
	wasActive := p.tracker.Active()
	stroke := p.tracker.End(x, y)
	if !wasActive {
		return
	}
	p.log.Debug("stroke end", slog.String("stroke_id", p.tracker.GestureID()), slog.Bool("stroke", stroke))
	p.redraw()
	if stroke && p.onEnd != nil {
		p.onEnd(p.GetResult())
	}
}

// Cancel abandons the gesture without firing OnDrawingEnd. Segments
// already drawn are kept.
func (p *Pad) Cancel() {
	if p.tracker.Active() {
		p.log.Debug("stroke cancel", slog.String("stroke_id", p.tracker.GestureID()))
	}
	p.tracker.Cancel()
}

// Clear removes every stroke and requests a redraw. The paint is kept.
// A gesture in progress is abandoned so the path is only ever emptied
// outside a gesture.
func (p *Pad) Clear() {
	p.tracker.Cancel()
	p.path.Reset()
	p.redraw()
}

// GetResult exports the drawing. Without a usable surface the image is the
// bare data URI prefix and the failure is logged.
func (p *Pad) GetResult() Result {
	r, err := p.GetResultE()
	if err != nil {
		p.log.Warn("raster export unavailable", slog.Any("err", err))
		return Result{Image: raster.PNGDataURIPrefix, SignaturePathSVG: p.path.SVG()}
	}
	return r
}

// GetResultE is GetResult with failures reported.
func (p *Pad) GetResultE() (Result, error) {
	if p.surface == nil {
		return Result{}, ErrNoSurface
	}
	img, err := p.surface.Snapshot()
	if err != nil {
		return Result{}, fmt.Errorf("snapshot: %w", err)
	}
	uri, err := raster.EncodePNGDataURI(img)
	if err != nil {
		return Result{}, err
	}
	return Result{Image: uri, SignaturePathSVG: p.path.SVG()}, nil
}

// Draw strokes the path onto dst at the given device scale.
func (p *Pad) Draw(dst *image.RGBA, scale float32) {
	raster.StrokePath(dst, p.path, p.paint, scale)
}

// SignatureSVG returns the current path data.
func (p *Pad) SignatureSVG() string { return p.path.SVG() }

// Path returns a copy of the accumulated path.
func (p *Pad) Path() *vector.Path { return p.path.Clone() }

func (p *Pad) Paint() vector.Stroke { return p.paint }
func (p *Pad) Empty() bool          { return p.path.Empty() }
func (p *Pad) Drawing() bool        { return p.tracker.Active() }

func (p *Pad) redraw() {
	if p.surface != nil {
		p.surface.Redraw()
	}
}
