/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package raster turns vector paths into pixels. Stroking is done by
// github.com/srwiley/rasterx on top of its golang.org/x/image/vector scanner,
// which always anti-aliases.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"signaturepad/internal/vector"
)

// NewCanvas allocates a w x h image filled with bg. A nil bg leaves the
// pixels transparent.
func NewCanvas(w, h int, bg color.Color) *image.RGBA {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if bg != nil {
		draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	}
	return img
}

// StrokePath draws p onto dst with the given pen. Coordinates of p are in
// device-independent units and are multiplied by scale to reach pixels; the
// stroke width is scaled the same way.
func StrokePath(dst *image.RGBA, p *vector.Path, s vector.Stroke, scale float32) {
	if dst == nil || p == nil || p.Empty() || !s.Enabled || s.Width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	scanner := rasterx.NewScannerGV(w, h, dst, b)
	d := rasterx.NewDasher(w, h, scanner)
	d.SetStroke(toFixed(s.Width*scale), toFixed(s.MiterLim), capFunc(s.Cap), capFunc(s.Cap), gapFunc(s.Join), joinMode(s.Join), nil, 0)

	open := false
	for _, c := range p.Cmds {
		a := c.Data
		switch c.Op {
		case vector.MoveTo:
			if open {
				d.Stop(false)
			}
			d.Start(pt(a[0], a[1], scale))
			open = true
		case vector.LineTo:
			d.Line(pt(a[0], a[1], scale))
		case vector.QuadTo:
			d.QuadBezier(pt(a[0], a[1], scale), pt(a[2], a[3], scale))
		case vector.CubicTo:
			d.CubeBezier(pt(a[0], a[1], scale), pt(a[2], a[3], scale), pt(a[4], a[5], scale))
		case vector.Close:
			d.Stop(true)
			open = false
		}
	}
	if open {
		d.Stop(false)
	}
	d.SetColor(s.Color.NRGBA())
	d.Draw()
}

func toFixed(v float32) fixed.Int26_6 { return fixed.Int26_6(v * 64) }

func pt(x, y, scale float32) fixed.Point26_6 {
	return rasterx.ToFixedP(float64(x*scale), float64(y*scale))
}

func capFunc(c vector.LineCap) rasterx.CapFunc {
	switch c {
	case vector.CapRound:
		return rasterx.RoundCap
	case vector.CapSquare:
		return rasterx.SquareCap
	default:
		return rasterx.ButtCap
	}
}

func gapFunc(j vector.LineJoin) rasterx.GapFunc {
	if j == vector.JoinRound {
		return rasterx.RoundGap
	}
	return rasterx.FlatGap
}

func joinMode(j vector.LineJoin) rasterx.JoinMode {
	switch j {
	case vector.JoinRound:
		return rasterx.Round
	case vector.JoinBevel:
		return rasterx.Bevel
	default:
		return rasterx.Miter
	}
}
