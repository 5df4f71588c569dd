/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"signaturepad/internal/config"
	"signaturepad/internal/crash"
	applog "signaturepad/internal/log"
	"signaturepad/internal/ui"
	"signaturepad/internal/version"
)

func usage() {
	fmt.Println("Signature Pad")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  signaturepad version|-v|--version                 Show version")
	fmt.Println("  signaturepad render <path> <out.png|svg|pdf|json> [flags]")
	fmt.Println("                                                    Rasterize SVG path data and export it")
	fmt.Println("  signaturepad bundle <path> <out-dir> [-preset web|print] [flags]")
	fmt.Println("                                                    Export to every format of a preset")
	fmt.Println("  signaturepad config [init]                        Show the effective config, or write defaults")
	fmt.Println("  signaturepad ui [<path>]                          Launch the pad window (build with -tags fyne)")
	fmt.Println()
	fmt.Println("<path> is SVG path data such as \"M0 0L10 0\", or @file to read it from a file.")
	fmt.Println("Flags: -w W -h H -color C -stroke N -bg C -fit WxH -crop")
}

// loadConfig is swapped in tests.
var loadConfig = config.Load

func main() {
	os.Exit(run(os.Args, crash.Options{}))
}

// run executes the command line and returns the process exit code. The
// crash handler is armed before config and logging are set up.
func run(args []string, co crash.Options) int {
	defer crash.Recover(co)

	cfg, cerr := loadConfig()
	applog.Init(cfg.LogOptions())
	defer func() { _ = applog.Close() }()
	l := applog.WithComponent("cli")
	if cerr != nil {
		l.Warn("config file ignored", slog.Any("err", cerr))
	}

	l.Debug("start", slog.Int("args", len(args)))
	if len(args) < 2 {
		usage()
		return 0
	}
	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println("Signature Pad")
		fmt.Println(version.String())
		return 0
	case "render", "bundle":
		if len(args) < 4 {
			fmt.Printf("%s requires <path> and <out>\n", args[1])
			usage()
			return 2
		}
		ra, err := parseRenderArgs(cfg, args[2], args[3], args[4:])
		if err != nil {
			fmt.Println("Error:", err)
			return 2
		}
		var outs []string
		if args[1] == "render" {
			err = ra.render()
			outs = []string{ra.out}
		} else {
			outs, err = ra.bundle()
		}
		if err != nil {
			l.Error(args[1]+" failed", slog.Any("err", err))
			fmt.Println("Error:", err)
			return 1
		}
		for _, o := range outs {
			fmt.Println("Wrote", o)
		}
		return 0
	case "config":
		return configCmd(cfg, cerr, args[2:])
	case "ui":
		var seed string
		if len(args) >= 3 {
			s, err := readPathArg(args[2])
			if err != nil {
				fmt.Println("Error:", err)
				return 2
			}
			seed = s
		}
		if err := ui.Run(cfg, seed); err != nil {
			fmt.Println("Error:", err)
			return 1
		}
		return 0
	}
	usage()
	return 0
}

func configCmd(cfg config.AppConfig, cerr error, args []string) int {
	path, err := config.ConfigPath()
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	if len(args) >= 1 && args[0] == "init" {
		if _, err := os.Stat(path); err == nil {
			fmt.Println("Config already exists at", path)
			return 1
		} else if !errors.Is(err, os.ErrNotExist) {
			fmt.Println("Error:", err)
			return 1
		}
		if err := config.Save(path, config.Defaults()); err != nil {
			fmt.Println("Error:", err)
			return 1
		}
		fmt.Println("Wrote default config to", path)
		return 0
	}
	fmt.Println("# config file:", path)
	if cerr != nil {
		fmt.Println("# ignored:", cerr)
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	fmt.Print(string(b))
	return 0
}
