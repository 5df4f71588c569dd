//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"signaturepad/internal/config"
	"signaturepad/internal/crash"
	"signaturepad/internal/export"
	applog "signaturepad/internal/log"
	"signaturepad/internal/pad"
	"signaturepad/internal/raster"
	"signaturepad/internal/vector"
	"signaturepad/internal/version"
)

// Run opens the signature pad demo window. cfg is the loaded configuration;
// logging is expected to be initialised by the caller. seed is optional SVG
// path data drawn on start.
func Run(cfg config.AppConfig, seed string) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("version", version.String()))

	var sp *SignaturePad
	defer crash.Recover(crash.Options{Rescue: func() (pad.Result, bool) {
		if sp == nil {
			return pad.Result{}, false
		}
		return sp.rescue()
	}})

	fyneApp := app.NewWithID("signaturepad")
	w := fyneApp.NewWindow("Signature Pad")
	prefs := fyneApp.Preferences()
	winW := max(prefs.IntWithFallback("window.width", cfg.Canvas.Width+80), 360)
	winH := max(prefs.IntWithFallback("window.height", cfg.Canvas.Height+220), 320)
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")
	pathView := widget.NewMultiLineEntry()
	pathView.Wrapping = fyne.TextWrapBreak
	pathView.SetPlaceHolder("Signature path appears here")
	pathView.SetMinRowsVisible(3)

	bg, err := vector.ParseColor(cfg.Canvas.Background)
	if err != nil {
		l.Warn("invalid canvas background, using white", slog.String("color", cfg.Canvas.Background), slog.Any("err", err))
		bg = vector.White
	}

	opts := cfg.PadOptions()
	opts.ExistingSignatureSVG = seed
	opts.OnDrawingEnd = func(r pad.Result) {
		pathView.SetText(r.SignaturePathSVG)
		status.SetText(fmt.Sprintf("Stroke captured (%d bytes of PNG data)", len(r.Image)-len(raster.PNGDataURIPrefix)))
	}
	sp, err = NewSignaturePad(opts, Style{
		MinSize:    fyne.NewSize(float32(cfg.Canvas.Width), float32(cfg.Canvas.Height)),
		Background: bg.NRGBA(),
		Border:     color.NRGBA{R: 120, G: 120, B: 120, A: 255},
	})
	if err != nil {
		return fmt.Errorf("create signature pad: %w", err)
	}
	pathView.SetText(sp.SignatureSVG())

	clearPad := func() {
		sp.Clear()
		pathView.SetText("")
		status.SetText("Cleared")
		l.Info("signature cleared")
	}

	save := func() {
		fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if uc == nil {
				return
			}
			outPath := uc.URI().Path()
			_ = uc.Close()
			r, err := sp.GetResultE()
			if err == nil {
				err = export.Write(outPath, r, export.Options{
					Width:      cfg.Canvas.Width,
					Height:     cfg.Canvas.Height,
					Stroke:     sp.Paint(),
					Background: bg,
				})
			}
			if err != nil {
				l.Error("save signature failed", slog.String("path", outPath), slog.Any("err", err))
				status.SetText("Save failed: " + err.Error())
				dialog.ShowError(err, w)
				return
			}
			l.Info("signature saved", slog.String("path", outPath))
			status.SetText("Saved to " + outPath)
		}, w)
		fd.SetFileName("signature.png")
		fd.SetFilter(fstorage.NewExtensionFileFilter([]string{".png", ".svg", ".pdf", ".json"}))
		fd.Show()
	}

	copyPath := func() {
		w.Clipboard().SetContent(sp.SignatureSVG())
		status.SetText("Path copied to clipboard")
	}

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Save Signature…", save),
		fyne.NewMenuItem("Copy Path", copyPath),
		fyne.NewMenuItem("Clear", clearPad),
	)
	aboutMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation("About", "Signature Pad "+version.String(), w)
		}),
	)
	w.SetMainMenu(fyne.NewMainMenu(fileMenu, aboutMenu))

	buttons := container.NewHBox(
		widget.NewButton("Clear", clearPad),
		widget.NewButton("Save…", save),
		widget.NewButton("Copy Path", copyPath),
	)
	bottom := container.NewVBox(buttons, pathView, status)
	w.SetContent(container.NewBorder(nil, bottom, nil, nil, container.NewPadded(sp)))

	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		w.Close()
	})

	w.ShowAndRun()
	return nil
}
