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
	"image"
	"os"

	"github.com/disintegration/imaging"

	"signaturepad/internal/pad"
	"signaturepad/internal/raster"
)

// WritePNG stores the PNG carried by the result's data URI. With FitW/FitH
// set the image is scaled down to fit first.
func WritePNG(path string, r pad.Result, opt Options) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if opt.FitW <= 0 && opt.FitH <= 0 {
		b, err := raster.DecodePNGDataURI(r.Image)
		if err != nil {
			return fmt.Errorf("decode image: %w", err)
		}
		if err := os.WriteFile(path, b, 0o644); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
		return nil
	}
	img, err := raster.DecodePNGDataURIImage(r.Image)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	if err := imaging.Save(Fit(img, opt.FitW, opt.FitH), path); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// Fit scales img down to fit within w x h, keeping its aspect ratio. A
// non-positive bound leaves that axis unconstrained. Images already inside
// the bounds are returned unchanged.
func Fit(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if w <= 0 {
		w = b.Dx()
	}
	if h <= 0 {
		h = b.Dy()
	}
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}
	return imaging.Fit(img, w, h, imaging.Lanczos)
}
