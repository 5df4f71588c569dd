/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Path commands and the mutable path accumulator.

type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	QuadTo  // quadratic bezier (cx, cy, x, y)
	CubicTo // cubic bezier (cx1, cy1, cx2, cy2, x, y)
	Close
)

func (op PathOp) String() string {
	switch op {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case QuadTo:
		return "Q"
	case CubicTo:
		return "C"
	case Close:
		return "Z"
	default:
		return "?"
	}
}

// argc is the number of coordinates stored in PathCmd.Data for op.
func (op PathOp) argc() int {
	switch op {
	case MoveTo, LineTo:
		return 2
	case QuadTo:
		return 4
	case CubicTo:
		return 6
	default:
		return 0
	}
}

type PathCmd struct {
	Op   PathOp
	Data [6]float32 // enough for cubic; unused slots are zero
}

// Path is an ordered list of drawing commands in device-independent units.
// The zero value is an empty path ready to use.
type Path struct {
	Cmds []PathCmd

	start   Pt
	cur     Pt
	hasCur  bool
	subpath int
}

func (p *Path) MoveTo(x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: MoveTo, Data: [6]float32{x, y}})
	p.start = Pt{x, y}
	p.cur = p.start
	p.hasCur = true
	p.subpath++
}

// LineTo appends a segment from the current point. On a path without a
// current point the segment degenerates into a MoveTo so the serialized
// form always begins with a move command.
func (p *Path) LineTo(x, y float32) {
	if !p.hasCur {
		p.MoveTo(x, y)
		return
	}
	p.Cmds = append(p.Cmds, PathCmd{Op: LineTo, Data: [6]float32{x, y}})
	p.cur = Pt{x, y}
}

func (p *Path) QuadTo(cx, cy, x, y float32) {
	if !p.hasCur {
		p.MoveTo(cx, cy)
	}
	p.Cmds = append(p.Cmds, PathCmd{Op: QuadTo, Data: [6]float32{cx, cy, x, y}})
	p.cur = Pt{x, y}
}

func (p *Path) CubicTo(cx1, cy1, cx2, cy2, x, y float32) {
	if !p.hasCur {
		p.MoveTo(cx1, cy1)
	}
	p.Cmds = append(p.Cmds, PathCmd{Op: CubicTo, Data: [6]float32{cx1, cy1, cx2, cy2, x, y}})
	p.cur = Pt{x, y}
}

func (p *Path) Close() {
	if !p.hasCur {
		return
	}
	p.Cmds = append(p.Cmds, PathCmd{Op: Close})
	p.cur = p.start
}

// Reset discards every command. The backing array is kept for reuse.
func (p *Path) Reset() {
	p.Cmds = p.Cmds[:0]
	p.start, p.cur = Pt{}, Pt{}
	p.hasCur = false
	p.subpath = 0
}

// Len returns the number of commands.
func (p *Path) Len() int { return len(p.Cmds) }

// Empty reports whether the path has no commands.
func (p *Path) Empty() bool { return len(p.Cmds) == 0 }

// SubPaths returns the number of disconnected sub-paths (move commands).
func (p *Path) SubPaths() int { return p.subpath }

// Append replays every command of o onto p.
func (p *Path) Append(o *Path) {
	if o == nil {
		return
	}
	for _, c := range o.Cmds {
		d := c.Data
		switch c.Op {
		case MoveTo:
			p.MoveTo(d[0], d[1])
		case LineTo:
			p.LineTo(d[0], d[1])
		case QuadTo:
			p.QuadTo(d[0], d[1], d[2], d[3])
		case CubicTo:
			p.CubicTo(d[0], d[1], d[2], d[3], d[4], d[5])
		case Close:
			p.Close()
		}
	}
}

// Clone returns a deep copy.
func (p *Path) Clone() *Path {
	c := &Path{}
	c.Append(p)
	return c
}

// Transform returns a copy of p with m applied to every coordinate.
func (p *Path) Transform(m Affine2D) *Path {
	out := &Path{Cmds: make([]PathCmd, 0, len(p.Cmds))}
	for _, c := range p.Cmds {
		n := c.Op.argc()
		for i := 0; i+1 < n; i += 2 {
			q := m.Apply(Pt{c.Data[i], c.Data[i+1]})
			c.Data[i], c.Data[i+1] = q.X, q.Y
		}
		out.Cmds = append(out.Cmds, c)
	}
	out.start, out.hasCur, out.subpath = m.Apply(p.start), p.hasCur, p.subpath
	out.cur = m.Apply(p.cur)
	return out
}

// Bounds returns an axis-aligned bounding box of the path using a simple
// approximation by considering control points. Stroke width is not included.
func (p *Path) Bounds() Rect {
	minX, minY := float32(+1e9), float32(+1e9)
	maxX, maxY := float32(-1e9), float32(-1e9)
	for _, c := range p.Cmds {
		n := c.Op.argc()
		for i := 0; i+1 < n; i += 2 {
			x, y := c.Data[i], c.Data[i+1]
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if minX > maxX || minY > maxY {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// SVG returns the path in SVG path-data syntax; see FormatSVGPath.
func (p *Path) SVG() string { return FormatSVGPath(p) }
