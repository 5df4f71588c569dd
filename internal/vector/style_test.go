/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestNewStrokePaint_Defaults(t *testing.T) {
	s, err := NewStrokePaint(0, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Width != 3 || s.Color != Black {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if s.Cap != CapRound || s.Join != JoinRound || s.MiterLim != 1 || !s.AntiAlias || !s.Enabled {
		t.Fatalf("pen style not applied: %+v", s)
	}
}

func TestNewStrokePaint_Custom(t *testing.T) {
	s, err := NewStrokePaint(5.5, "#336699")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Width != 5.5 || s.Color != (Color{0x33, 0x66, 0x99, 255}) {
		t.Fatalf("unexpected paint: %+v", s)
	}
}

func TestNewStrokePaint_BadColorFallsBackToBlack(t *testing.T) {
	s, err := NewStrokePaint(2, "no-such-color")
	if err == nil {
		t.Fatalf("expected color error")
	}
	if s.Color != Black || s.Width != 2 {
		t.Fatalf("expected usable black paint, got %+v", s)
	}
}
