/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
	"golang.org/x/image/colornames"
)

// ParseColor understands SVG/CSS color names, "transparent", #rgb, #rgba,
// #rrggbb, #rrggbbaa and the functional rgb()/rgba() forms.
func ParseColor(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return Color{}, fmt.Errorf("empty color")
	}
	if v == "transparent" {
		return Transparent, nil
	}
	if c, ok := colornames.Map[v]; ok {
		return Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	if strings.HasPrefix(v, "#") {
		return parseHex(v[1:])
	}
	c, err := oksvg.ParseSVGColor(v)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	if c == nil {
		// oksvg maps "none" to a nil color
		return Transparent, nil
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}, nil
}

func parseHex(h string) (Color, error) {
	switch len(h) {
	case 3, 4:
		// expand shorthand: "f0c" -> "ff00cc"
		var b strings.Builder
		for i := 0; i < len(h); i++ {
			b.WriteByte(h[i])
			b.WriteByte(h[i])
		}
		h = b.String()
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("parse color %q: bad hex length", "#"+h)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", "#"+h, err)
	}
	if len(h) == 6 {
		return Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 255}, nil
	}
	return Color{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}
