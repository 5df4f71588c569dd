/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package raster

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// PNGDataURIPrefix starts every image string produced by EncodePNGDataURI.
const PNGDataURIPrefix = "data:image/png;base64,"

var ErrNotPNGDataURI = errors.New("not a base64 png data uri")

// EncodePNGDataURI encodes img as PNG and wraps it in a data URI.
func EncodePNGDataURI(img image.Image) (string, error) {
	if img == nil {
		return "", errors.New("image is nil")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return PNGDataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodePNGDataURI returns the raw PNG bytes held by a data URI.
func DecodePNGDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, PNGDataURIPrefix) {
		return nil, ErrNotPNGDataURI
	}
	payload := uri[len(PNGDataURIPrefix):]
	if payload == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrNotPNGDataURI)
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return b, nil
}

// DecodePNGDataURIImage decodes the data URI into an image.
func DecodePNGDataURIImage(uri string) (image.Image, error) {
	b, err := DecodePNGDataURI(uri)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	return img, nil
}
