// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/beevik/gosparc/asm"
	"github.com/beevik/gosparc/host"
	"github.com/beevik/gosparc/sparc"
	"github.com/beevik/term"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

// fileList collects the values of a repeatable flag.
type fileList []string

func (l *fileList) String() string {
	return strings.Join(*l, ",")
}

func (l *fileList) Set(s string) error {
	*l = append(*l, s)
	return nil
}

var (
	archName string
	bump     bool
	pic      bool
	assemble fileList
	verbose  bool
	quiet    bool
)

func init() {
	flag.StringVar(&archName, "A", "", "architecture (v6, v7, v8, sparclet, sparclite, v9, v9a)")
	flag.BoolVar(&bump, "bump", false, "warn when an instruction bumps the architecture")
	flag.BoolVar(&pic, "KPIC", false, "generate position-independent relocations")
	flag.BoolVar(&pic, "k", false, "same as -KPIC")
	flag.Var(&assemble, "a", "assemble file (may be repeated)")
	flag.BoolVar(&verbose, "v", false, "verbose output")
	flag.BoolVar(&quiet, "q", false, "report errors only")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: gosparc [options] [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := app.Context()

	logger := createLogger(verbose, quiet)

	config, err := buildConfig()
	if err != nil {
		logger.Fatal(err.Error())
	}
	if _, err := sparc.NewTable(); err != nil {
		logger.Fatal("Broken assembler. No assembly attempted.", log.Err(err))
	}

	h := host.New(logger)
	h.Configure(config)

	// Do command-line assembly if requested.
	if len(assemble) > 0 {
		failed := false
		for _, filename := range assemble {
			if ctx.Err() != nil {
				logger.Info("Operation cancelled")
				break
			}
			if err := h.AssembleFile(filename, os.Stdout); err != nil {
				logger.Error("Assembling failed", log.String("file", filename), log.Err(err))
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Leave on Ctrl-C.
	go func() {
		<-ctx.Done()
		fmt.Println()
		os.Exit(1)
	}()

	// Run commands contained in command-line files.
	for _, filename := range flag.Args() {
		file, err := os.Open(filename)
		if err != nil {
			exitOnError(err)
		}
		h.RunCommands(file, os.Stdout, false)
		file.Close()
	}

	// Run commands interactively.
	h.RunCommands(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
}

// createLogger creates a logger whose level follows the -v and -q flags.
func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func buildConfig() (*asm.Config, error) {
	config := &asm.Config{
		Bump: bump,
		PIC:  pic,
	}
	if archName != "" {
		arch, err := sparc.ParseArch(archName)
		if err != nil {
			return nil, errors.Join(err, errors.New("run with -h for the list of architectures"))
		}
		config.Arch = &arch
	}
	if verbose {
		config.Options |= asm.Verbose
	}
	return config, nil
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
