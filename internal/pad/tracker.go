/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pad

import (
	"signaturepad/internal/vector"

	"github.com/google/uuid"
)

// DefaultTapThreshold is the minimum travel, in either axis, between the
// down and up positions for a gesture to count as a stroke.
const DefaultTapThreshold float32 = 1

// Phase of a touch gesture.
type Phase uint8

const (
	Idle Phase = iota
	Active
)

func (p Phase) String() string {
	if p == Active {
		return "active"
	}
	return "idle"
}

// Tracker turns down/move/up events into path commands and decides whether
// a finished gesture was a real stroke or a tap.
type Tracker struct {
	path      *vector.Path
	threshold float32

	phase  Phase
	anchor vector.Pt
	id     string
}

// NewTracker binds a tracker to path. A non-positive threshold selects
// DefaultTapThreshold.
func NewTracker(path *vector.Path, threshold float32) *Tracker {
	if threshold <= 0 {
		threshold = DefaultTapThreshold
	}
	return &Tracker{path: path, threshold: threshold}
}

// Start anchors a gesture at (x, y) and opens a new sub-path there.
// Calling Start while a gesture is active re-anchors and opens another
// sub-path; commands already recorded are left alone.
func (t *Tracker) Start(x, y float32) {
	t.anchor = vector.Pt{X: x, Y: y}
	t.phase = Active
	t.id = uuid.NewString()
	t.path.MoveTo(x, y)
}

// Move extends the active sub-path to (x, y). It reports whether a command
// was appended; moves outside a gesture are ignored.
func (t *Tracker) Move(x, y float32) bool {
	if t.phase != Active {
		return false
	}
	t.path.LineTo(x, y)
	return true
}

// End finishes the gesture and reports whether it travelled at least the
// threshold away from its anchor. End outside a gesture returns false.
func (t *Tracker) End(x, y float32) bool {
	if t.phase != Active {
		return false
	}
	t.phase = Idle
	return abs32(x-t.anchor.X) >= t.threshold || abs32(y-t.anchor.Y) >= t.threshold
}

// Cancel drops the active flag without reporting a stroke. Recorded
// commands stay on the path.
func (t *Tracker) Cancel() { t.phase = Idle }

func (t *Tracker) Phase() Phase       { return t.phase }
func (t *Tracker) Active() bool       { return t.phase == Active }
func (t *Tracker) Anchor() vector.Pt  { return t.anchor }
func (t *Tracker) Threshold() float32 { return t.threshold }

// GestureID identifies the current or most recent gesture in logs.
func (t *Tracker) GestureID() string { return t.id }

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
