/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"os"

	"signaturepad/internal/pad"
	"signaturepad/internal/vector"
)

// RenderSVG builds a standalone SVG document holding the signature path.
// Unless opt.Crop moves the path, its data is copied verbatim so the
// document reproduces the result without loss.
func RenderSVG(r pad.Result, opt Options) ([]byte, error) {
	p, err := parsePath(r)
	if err != nil {
		return nil, err
	}
	p, w, h := opt.layout(p)
	d := r.SignaturePathSVG
	if opt.Crop {
		d = p.SVG()
	}
	s := opt.stroke()

	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n", w, h, w, h)
	if opt.Background.A > 0 {
		wf("  <rect x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" fill=\"%s\"%s/>\n", w, h, svgColor(opt.Background), opacityAttr("fill-opacity", opt.Background))
	}
	if !p.Empty() {
		wf("  <path d=\"%s\" fill=\"none\" stroke=\"%s\"%s stroke-width=\"%g\" stroke-linecap=\"%s\" stroke-linejoin=\"%s\" stroke-miterlimit=\"%g\"/>\n",
			escAttr(d), svgColor(s.Color), opacityAttr("stroke-opacity", s.Color),
			s.Width, capName(s.Cap), joinName(s.Join), max(s.MiterLim, 1))
	}
	wf("</svg>\n")
	if werr != nil {
		return nil, fmt.Errorf("build svg: %w", werr)
	}
	return buf.Bytes(), nil
}

// WriteSVG writes RenderSVG's document to path.
func WriteSVG(path string, r pad.Result, opt Options) error {
	b, err := RenderSVG(r, opt)
	if err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func svgColor(c vector.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opacityAttr(name string, c vector.Color) string {
	if c.A == 255 {
		return ""
	}
	return fmt.Sprintf(" %s=\"%g\"", name, float64(c.A)/255)
}

func capName(c vector.LineCap) string {
	switch c {
	case vector.CapRound:
		return "round"
	case vector.CapSquare:
		return "square"
	default:
		return "butt"
	}
}

func joinName(j vector.LineJoin) string {
	switch j {
	case vector.JoinRound:
		return "round"
	case vector.JoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}

func escAttr(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '"':
			out = append(out, "&quot;"...)
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '\n':
			out = append(out, ' ')
		case '\r':
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
