/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tdewolff/canvas"
)

// ErrInvalidPath is wrapped by every ParseSVGPath failure.
var ErrInvalidPath = errors.New("invalid svg path")

// FormatSVGPath writes p as SVG path data using absolute commands, e.g.
// "M0 0L10 0L10 10". Coordinates use the shortest decimal form that parses
// back to the same float32, so ParseSVGPath(FormatSVGPath(p)) reproduces p.
func FormatSVGPath(p *Path) string {
	if p == nil || len(p.Cmds) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(p.Cmds) * 12)
	for _, c := range p.Cmds {
		b.WriteString(c.Op.String())
		n := c.Op.argc()
		for i := 0; i < n; i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(formatCoord(c.Data[i]))
		}
	}
	return b.String()
}

func formatCoord(v float32) string {
	if v == 0 {
		// avoid "-0"
		return "0"
	}
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

// ParseSVGPath parses SVG path data into a Path with github.com/tdewolff/canvas.
// Relative commands come back absolute, H/V/S/T are expanded to L/C/Q and
// elliptical arcs are replaced by cubic curves, so the result only holds the
// five PathOp kinds. canvas also drops zero-length segments and merges
// collinear line segments; the drawn outline is unchanged.
// An empty or blank string yields an empty path.
func ParseSVGPath(s string) (*Path, error) {
	if strings.TrimSpace(s) == "" {
		return &Path{}, nil
	}
	cp, err := canvas.ParseSVGPath(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	return fromCanvas(cp.ReplaceArcs()), nil
}

// fromCanvas replays the segments of a canvas path into a Path.
func fromCanvas(cp *canvas.Path) *Path {
	f := func(v float64) float32 { return float32(v) }
	p := &Path{}
	for sc := cp.Scanner(); sc.Scan(); {
		end := sc.End()
		switch sc.Cmd() {
		case canvas.MoveToCmd:
			p.MoveTo(f(end.X), f(end.Y))
		case canvas.LineToCmd, canvas.ArcToCmd:
			// arcs are gone after ReplaceArcs
			p.LineTo(f(end.X), f(end.Y))
		case canvas.QuadToCmd:
			c := sc.CP1()
			p.QuadTo(f(c.X), f(c.Y), f(end.X), f(end.Y))
		case canvas.CubeToCmd:
			c1, c2 := sc.CP1(), sc.CP2()
			p.CubicTo(f(c1.X), f(c1.Y), f(c2.X), f(c2.Y), f(end.X), f(end.Y))
		case canvas.CloseCmd:
			p.Close()
		}
	}
	return p
}
