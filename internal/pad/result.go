/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pad

import "errors"

// ErrNoSurface is returned by GetResultE when no drawing surface is attached.
var ErrNoSurface = errors.New("pad: no drawing surface attached")

// Result is the exported signature: a PNG data URI of the surface and the
// vector path in SVG path-data syntax.
type Result struct {
	Image            string `json:"image"`
	SignaturePathSVG string `json:"signaturePathSvg"`
}

// Empty reports whether the result carries no strokes.
func (r Result) Empty() bool { return r.SignaturePathSVG == "" }

// Handle is the imperative interface handed to embedders.
type Handle interface {
	Clear()
	GetResult() Result
}
