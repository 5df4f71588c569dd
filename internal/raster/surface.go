/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package raster

import (
	"errors"
	"image"
	"image/color"
	"sync"
)

// ErrZeroSize is returned by Snapshot while the surface has no pixels,
// e.g. before the hosting widget has been laid out.
var ErrZeroSize = errors.New("surface has zero size")

// Scene draws itself onto a pixel buffer. scale converts scene units to pixels.
type Scene interface {
	Draw(dst *image.RGBA, scale float32)
}

// Surface is an offscreen drawable: a pixel size, a scale from scene units
// to pixels, a background and the scene painted on top of it.
type Surface struct {
	mu         sync.Mutex
	width      int
	height     int
	scale      float32
	background color.Color
	scene      Scene
	redraws    int

	// OnRedraw, when set, is called after every Redraw request.
	OnRedraw func()
}

// NewSurface creates a surface of w x h pixels. A non-positive scale means 1.
func NewSurface(w, h int, scale float32, scene Scene) *Surface {
	if scale <= 0 {
		scale = 1
	}
	return &Surface{width: w, height: h, scale: scale, scene: scene, background: color.White}
}

// SetScene replaces the painted scene.
func (s *Surface) SetScene(sc Scene) {
	s.mu.Lock()
	s.scene = sc
	s.mu.Unlock()
}

// SetBackground sets the fill drawn under the scene; nil means transparent.
func (s *Surface) SetBackground(c color.Color) {
	s.mu.Lock()
	s.background = c
	s.mu.Unlock()
}

// Resize changes the pixel size and scale, as happens when the hosting
// widget is laid out or moved to a screen with another pixel density.
func (s *Surface) Resize(w, h int, scale float32) {
	if scale <= 0 {
		scale = 1
	}
	s.mu.Lock()
	s.width, s.height, s.scale = w, h, scale
	s.mu.Unlock()
}

// Size returns the pixel size and scale.
func (s *Surface) Size() (w, h int, scale float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height, s.scale
}

// Render paints background and scene into a new image of the current size.
func (s *Surface) Render() *image.RGBA {
	s.mu.Lock()
	w, h, scale, bg, sc := s.width, s.height, s.scale, s.background, s.scene
	s.mu.Unlock()
	img := NewCanvas(w, h, bg)
	if sc != nil && w > 0 && h > 0 {
		sc.Draw(img, scale)
	}
	return img
}

// Snapshot returns a still image of the surface contents at call time.
func (s *Surface) Snapshot() (image.Image, error) {
	w, h, _ := s.Size()
	if w <= 0 || h <= 0 {
		return nil, ErrZeroSize
	}
	return s.Render(), nil
}

// Redraw records a repaint request and notifies OnRedraw.
func (s *Surface) Redraw() {
	s.mu.Lock()
	s.redraws++
	fn := s.OnRedraw
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Redraws returns how many repaints were requested so far.
func (s *Surface) Redraws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redraws
}
