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

	"github.com/jung-kurt/gofpdf"

	"signaturepad/internal/pad"
	"signaturepad/internal/vector"
)

// WritePDF writes a single-page PDF with the signature as vector strokes.
// The page matches the canvas size, converted from pixels at opt.DPI.
func WritePDF(path string, r pad.Result, opt Options) error {
	p, err := parsePath(r)
	if err != nil {
		return err
	}
	p, w, h := opt.layout(p)
	k := 72 / opt.dpi() // points per pixel
	pageW, pageH := float64(w)*k, float64(h)*k

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetTitle("Signature", false)
	pdf.SetCreator("signaturepad", false)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: pageW, Ht: pageH})

	if opt.Background.A > 0 {
		setFillColor(pdf, opt.Background)
		pdf.Rect(0, 0, pageW, pageH, "F")
	}

	s := opt.stroke()
	if !p.Empty() {
		setDrawColor(pdf, s.Color)
		if s.Color.A < 255 {
			pdf.SetAlpha(float64(s.Color.A)/255, "Normal")
		}
		pdf.SetLineWidth(float64(s.Width) * k)
		pdf.SetLineCapStyle(capName(s.Cap))
		pdf.SetLineJoinStyle(joinName(s.Join))
		tracePDF(pdf, p, k)
		pdf.DrawPath("D")
	}

	if err := ensureDir(path); err != nil {
		return err
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// tracePDF replays p as PDF path operators scaled by k.
func tracePDF(pdf *gofpdf.Fpdf, p *vector.Path, k float64) {
	f := func(v float32) float64 { return float64(v) * k }
	for _, c := range p.Cmds {
		d := c.Data
		switch c.Op {
		case vector.MoveTo:
			pdf.MoveTo(f(d[0]), f(d[1]))
		case vector.LineTo:
			pdf.LineTo(f(d[0]), f(d[1]))
		case vector.QuadTo:
			pdf.CurveTo(f(d[0]), f(d[1]), f(d[2]), f(d[3]))
		case vector.CubicTo:
			pdf.CurveBezierCubicTo(f(d[0]), f(d[1]), f(d[2]), f(d[3]), f(d[4]), f(d[5]))
		case vector.Close:
			pdf.ClosePath()
		}
	}
}

func setDrawColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
