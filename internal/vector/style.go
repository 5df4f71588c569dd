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
)

// Styles and paint definitions.

type Color struct{ R, G, B, A uint8 }

var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// NRGBA converts to the standard library color type.
func (c Color) NRGBA() color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// Hex returns #rrggbb, or #rrggbbaa when not fully opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// Stroke is an outline paint. Fill is never applied to signature paths.
type Stroke struct {
	Color     Color
	Width     float32
	Cap       LineCap
	Join      LineJoin
	MiterLim  float32
	AntiAlias bool
	Enabled   bool
}

const (
	DefaultStrokeWidth float32 = 3
	DefaultStrokeColor         = "black"
)

// NewStrokePaint builds the pen used for signatures: stroke only, round caps
// and joins, miter limit 1, anti-aliased. A non-positive width selects
// DefaultStrokeWidth and an empty color DefaultStrokeColor. When the color
// cannot be parsed the paint is still returned (black) together with the error.
func NewStrokePaint(width float32, col string) (Stroke, error) {
	if width <= 0 {
		width = DefaultStrokeWidth
	}
	if col == "" {
		col = DefaultStrokeColor
	}
	s := Stroke{
		Color:     Black,
		Width:     width,
		Cap:       CapRound,
		Join:      JoinRound,
		MiterLim:  1,
		AntiAlias: true,
		Enabled:   true,
	}
	c, err := ParseColor(col)
	if err != nil {
		return s, err
	}
	s.Color = c
	return s, nil
}
