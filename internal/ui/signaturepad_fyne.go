//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image"
	"image/color"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"signaturepad/internal/pad"
	"signaturepad/internal/raster"
	"signaturepad/internal/vector"
)

// Style is applied to the widget's outer container.
type Style struct {
	MinSize    fyne.Size
	Background color.Color // default white
	Border     color.Color // nil draws no border
}

var defaultMinSize = fyne.NewSize(300, 150)

// SignaturePad is a Fyne widget that captures a signature with mouse or
// touch input. Positions are recorded in widget units; the raster follows
// the screen's pixel density.
type SignaturePad struct {
	widget.BaseWidget
	style Style

	mu      sync.Mutex
	pad     *pad.Pad
	surface *raster.Surface
	last    fyne.Position
	pending []pad.Result
	// seen is set once the current drag sequence had a down event, a drag
	// that started a stroke, or a cancel or clear of the active stroke.
	// Drags only start a stroke while it is unset.
	seen bool
	onEnd   func(pad.Result)

	dirty  atomic.Bool
	raster *canvas.Raster
}

var (
	_ fyne.Draggable     = (*SignaturePad)(nil)
	_ desktop.Mouseable  = (*SignaturePad)(nil)
	_ desktop.Cursorable = (*SignaturePad)(nil)
	_ mobile.Touchable   = (*SignaturePad)(nil)
	_ pad.Handle         = (*SignaturePad)(nil)
)

// NewSignaturePad creates the widget. opts.OnDrawingEnd runs on the event
// goroutine after the widget lock is released, so it may call back into
// the widget.
func NewSignaturePad(opts pad.Options, style Style) (*SignaturePad, error) {
	if style.MinSize.Width <= 0 || style.MinSize.Height <= 0 {
		style.MinSize = defaultMinSize
	}
	if style.Background == nil {
		style.Background = color.White
	}
	w := &SignaturePad{style: style, onEnd: opts.OnDrawingEnd}
	opts.OnDrawingEnd = func(r pad.Result) { w.pending = append(w.pending, r) }
	p, err := pad.New(opts)
	if err != nil {
		return nil, err
	}
	w.pad = p
	w.surface = raster.NewSurface(int(style.MinSize.Width), int(style.MinSize.Height), 1, p)
	w.surface.SetBackground(style.Background)
	w.surface.OnRedraw = func() { w.dirty.Store(true) }
	p.Attach(w.surface)
	w.ExtendBaseWidget(w)
	return w, nil
}

// do runs fn under the widget lock, then refreshes the raster and delivers
// queued drawing-end callbacks.
func (w *SignaturePad) do(fn func(p *pad.Pad)) {
	w.mu.Lock()
	fn(w.pad)
	done := w.pending
	w.pending = nil
	w.mu.Unlock()

	if w.dirty.Swap(false) && w.raster != nil {
		w.raster.Refresh()
	}
	if w.onEnd != nil {
		for _, r := range done {
			w.onEnd(r)
		}
	}
}

// Clear removes the signature. Drags of an interrupted stroke are ignored
// until the next gesture.
func (w *SignaturePad) Clear() {
	w.do(func(p *pad.Pad) {
		if p.Drawing() {
			w.seen = true
		}
		p.Clear()
	})
}

// GetResult returns the PNG data URI and SVG path of the signature.
func (w *SignaturePad) GetResult() pad.Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pad.GetResult()
}

// GetResultE is GetResult with export failures reported.
func (w *SignaturePad) GetResultE() (pad.Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pad.GetResultE()
}

// SignatureSVG returns the current path data.
func (w *SignaturePad) SignatureSVG() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pad.SignatureSVG()
}

// rescue reads the result without waiting for the lock; it is used while
// recovering from a panic.
func (w *SignaturePad) rescue() (pad.Result, bool) {
	if !w.mu.TryLock() {
		return pad.Result{}, false
	}
	defer w.mu.Unlock()
	return w.pad.GetResult(), true
}

func (w *SignaturePad) begin(pos fyne.Position) {
	w.do(func(p *pad.Pad) {
		w.last = pos
		w.seen = true
		p.Start(pos.X, pos.Y)
	})
}

func (w *SignaturePad) finish(pos fyne.Position) {
	w.do(func(p *pad.Pad) {
		w.seen = false
		p.End(pos.X, pos.Y)
	})
}

// MouseDown starts a stroke with the primary button.
func (w *SignaturePad) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.begin(e.Position)
}

// MouseUp ends the stroke where the button was released.
func (w *SignaturePad) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.finish(e.Position)
}

// Dragged extends the stroke. Drivers that deliver no down event get the
// stroke started at the drag origin; a drag that follows a cancel or clear
// of the active stroke is ignored.
func (w *SignaturePad) Dragged(e *fyne.DragEvent) {
	w.do(func(p *pad.Pad) {
		if !p.Drawing() && !w.seen {
			o := e.Position.Subtract(e.Dragged)
			p.Start(o.X, o.Y)
			w.seen = true
		}
		p.Move(e.Position.X, e.Position.Y)
		w.last = e.Position
	})
}

// DragEnd ends the stroke at the last dragged position.
func (w *SignaturePad) DragEnd() {
	w.mu.Lock()
	pos := w.last
	w.mu.Unlock()
	w.finish(pos)
}

func (w *SignaturePad) TouchDown(e *mobile.TouchEvent) { w.begin(e.Position) }
func (w *SignaturePad) TouchUp(e *mobile.TouchEvent)   { w.finish(e.Position) }

// TouchCancel abandons the stroke without reporting it.
func (w *SignaturePad) TouchCancel(*mobile.TouchEvent) {
	w.do(func(p *pad.Pad) {
		if p.Drawing() {
			w.seen = true
		}
		p.Cancel()
	})
}

func (w *SignaturePad) Cursor() desktop.Cursor { return desktop.CrosshairCursor }

// render is the canvas.Raster generator.
func (w *SignaturePad) render(pw, ph int) image.Image {
	scale := float32(1)
	if sz := w.Size(); sz.Width > 0 {
		scale = float32(pw) / sz.Width
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.surface.Resize(pw, ph, scale)
	return w.surface.Render()
}

func (w *SignaturePad) CreateRenderer() fyne.WidgetRenderer {
	w.ExtendBaseWidget(w)
	w.raster = canvas.NewRaster(w.render)
	border := canvas.NewRectangle(color.Transparent)
	if w.style.Border != nil {
		border.StrokeColor = w.style.Border
		border.StrokeWidth = 1
	}
	return &signaturePadRenderer{w: w, raster: w.raster, border: border, objects: []fyne.CanvasObject{w.raster, border}}
}

type signaturePadRenderer struct {
	w       *SignaturePad
	raster  *canvas.Raster
	border  *canvas.Rectangle
	objects []fyne.CanvasObject
}

func (r *signaturePadRenderer) Destroy()                     {}
func (r *signaturePadRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *signaturePadRenderer) MinSize() fyne.Size           { return r.w.style.MinSize }

func (r *signaturePadRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
	r.border.Resize(size)
}

func (r *signaturePadRenderer) Refresh() {
	r.raster.Refresh()
	r.border.Refresh()
}

// Paint returns the stroke paint in use.
func (w *SignaturePad) Paint() vector.Stroke {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pad.Paint()
}
