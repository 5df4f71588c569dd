/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	applog "signaturepad/internal/log"
	"signaturepad/internal/pad"
	"signaturepad/internal/raster"
	"signaturepad/internal/vector"
)

const samplePath = "M4 4L36 4L36 26"

func sampleResult(t *testing.T) pad.Result {
	t.Helper()
	p, err := pad.New(pad.Options{ExistingSignatureSVG: samplePath, Logger: applog.Discard()})
	if err != nil {
		t.Fatalf("new pad: %v", err)
	}
	p.Attach(raster.NewSurface(40, 30, 1, p))
	r, err := p.GetResultE()
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	return r
}

func TestWritePNG_StoresDataURIPayload(t *testing.T) {
	r := sampleResult(t)
	out := filepath.Join(t.TempDir(), "nested", "sig.png")
	if err := Write(out, r, Options{}); err != nil {
		t.Fatalf("write png: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want, _ := raster.DecodePNGDataURI(r.Image)
	if !bytes.Equal(got, want) {
		t.Fatalf("png bytes differ from data uri payload")
	}
}

func TestWritePNG_Fit(t *testing.T) {
	r := sampleResult(t)
	out := filepath.Join(t.TempDir(), "sig.png")
	if err := WritePNG(out, r, Options{FitW: 20, FitH: 20}); err != nil {
		t.Fatalf("write png: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.Width != 20 || cfg.Height != 15 {
		t.Fatalf("fit size = %dx%d, want 20x15", cfg.Width, cfg.Height)
	}
}

func TestFit_LeavesSmallImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 8))
	if got := Fit(img, 100, 0); got != image.Image(img) {
		t.Fatalf("small image should be returned as is")
	}
	if b := Fit(img, 5, 0).Bounds(); b.Dx() != 5 || b.Dy() != 4 {
		t.Fatalf("fit by width = %v", b)
	}
}

var dAttr = regexp.MustCompile(` d="([^"]*)"`)

func TestRenderSVG_Document(t *testing.T) {
	r := sampleResult(t)
	b, err := RenderSVG(r, Options{Width: 40, Height: 30, Background: vector.White})
	if err != nil {
		t.Fatalf("render svg: %v", err)
	}
	doc := string(b)
	if !strings.Contains(doc, `width="40" height="30" viewBox="0 0 40 30"`) {
		t.Fatalf("unexpected canvas: %s", doc)
	}
	if !strings.Contains(doc, `fill="#ffffff"`) {
		t.Fatalf("background missing: %s", doc)
	}
	if !strings.Contains(doc, `stroke-linecap="round"`) || !strings.Contains(doc, `stroke-width="3"`) {
		t.Fatalf("default paint not applied: %s", doc)
	}
	m := dAttr.FindStringSubmatch(doc)
	if m == nil {
		t.Fatalf("no path element: %s", doc)
	}
	p, err := vector.ParseSVGPath(m[1])
	if err != nil || p.SVG() != samplePath {
		t.Fatalf("path data not preserved: %q (%v)", m[1], err)
	}
}

func TestRenderSVG_SizeFromBounds(t *testing.T) {
	b, err := RenderSVG(pad.Result{SignaturePathSVG: samplePath}, Options{})
	if err != nil {
		t.Fatalf("render svg: %v", err)
	}
	if !strings.Contains(string(b), `width="39" height="29"`) {
		t.Fatalf("canvas should wrap bounds plus stroke: %s", b)
	}
	if strings.Contains(string(b), "<rect") {
		t.Fatalf("transparent background should not be drawn")
	}
}

func TestRenderSVG_CropMovesPathToOrigin(t *testing.T) {
	b, err := RenderSVG(pad.Result{SignaturePathSVG: "M20 30L60 50"}, Options{Crop: true})
	if err != nil {
		t.Fatalf("render svg: %v", err)
	}
	doc := string(b)
	// bounds grown by the default stroke width of 3
	if !strings.Contains(doc, `width="46" height="26"`) {
		t.Fatalf("cropped canvas: %s", doc)
	}
	if !strings.Contains(doc, `d="M3 3L43 23"`) {
		t.Fatalf("cropped path: %s", doc)
	}
}

func TestRenderSVG_EmptyPath(t *testing.T) {
	b, err := RenderSVG(pad.Result{}, Options{Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("render svg: %v", err)
	}
	if strings.Contains(string(b), "<path") {
		t.Fatalf("empty signature should have no path element: %s", b)
	}
}

func TestRenderSVG_BadPath(t *testing.T) {
	if _, err := RenderSVG(pad.Result{SignaturePathSVG: "M0"}, Options{}); !errors.Is(err, vector.ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
}

func TestWritePDF_CreatesFile(t *testing.T) {
	r := sampleResult(t)
	out := filepath.Join(t.TempDir(), "sig.pdf")
	red, _ := vector.NewStrokePaint(2, "#ff000080")
	if err := WritePDF(out, r, Options{Width: 40, Height: 30, Stroke: red, Background: vector.White}); err != nil {
		t.Fatalf("export: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("not a pdf file")
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	r := sampleResult(t)
	out := filepath.Join(t.TempDir(), "sig.json")
	if err := Write(out, r, Options{}); err != nil {
		t.Fatalf("write json: %v", err)
	}
	got, err := ReadJSON(out)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	if got != r {
		t.Fatalf("result changed through json")
	}
}

func TestWrite_UnknownExtension(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "sig.gif"), pad.Result{}, Options{})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestParseSize(t *testing.T) {
	w, h, err := ParseSize(" 320X200 ")
	if err != nil || w != 320 || h != 200 {
		t.Fatalf("ParseSize = %d %d %v", w, h, err)
	}
	for _, bad := range []string{"", "320", "x200", "0x10", "10x-1", "axb"} {
		if _, _, err := ParseSize(bad); err == nil {
			t.Fatalf("ParseSize(%q) should fail", bad)
		}
	}
}

func TestBatchExport_WebPreset(t *testing.T) {
	root := t.TempDir()
	paths, err := BatchExport(sampleResult(t), BatchOptions{Preset: PresetWeb, OutDir: root})
	if err != nil {
		t.Fatalf("batch export web: %v", err)
	}
	want := []string{
		filepath.Join(root, "web", "signature.png"),
		filepath.Join(root, "web", "signature.svg"),
		filepath.Join(root, "web", "signature.json"),
	}
	if len(paths) != len(want) {
		t.Fatalf("written = %v", paths)
	}
	for i, p := range want {
		if paths[i] != p {
			t.Fatalf("path %d = %s, want %s", i, paths[i], p)
		}
		st, err := os.Stat(p)
		if err != nil {
			t.Fatalf("missing %s: %v", p, err)
		}
		if st.Size() <= 0 {
			t.Fatalf("empty file: %s", p)
		}
	}
}

func TestBatchExport_PrintPresetAndBadFormat(t *testing.T) {
	root := t.TempDir()
	paths, err := BatchExport(sampleResult(t), BatchOptions{Preset: PresetPrint, OutDir: root, Name: "contract"})
	if err != nil {
		t.Fatalf("batch export print: %v", err)
	}
	if len(paths) != 2 || filepath.Base(paths[0]) != "contract.pdf" {
		t.Fatalf("unexpected outputs: %v", paths)
	}
	if _, err := BatchExport(pad.Result{}, BatchOptions{OutDir: root, Formats: []string{"tiff"}}); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
