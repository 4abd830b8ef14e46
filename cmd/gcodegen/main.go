// gcodegen assembles a demonstration warm-up script and writes it to
// stdout. The script profile comes from GCODESCRIPT_CONFIG (YAML) or
// built-in defaults.
//
// Copyright (C) 2026  Gcodescript Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package main

import (
	"fmt"
	"os"

	"gcodescript/pkg/config"
	"gcodescript/pkg/gcode"
	"gcodescript/pkg/log"
	"gcodescript/pkg/sequencer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gcodegen: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	logger := log.New("gcodegen", os.Stderr, cfg.LogLevel())

	opts := cfg.Options()
	opts.Sink = os.Stdout
	opts.Logger = logger
	script := sequencer.New(opts)

	units, err := gcode.SetUnits("mm")
	if err != nil {
		return err
	}
	pos, err := gcode.SetPositioning("absolute")
	if err != nil {
		return err
	}

	// Preparation runs later, once the heaters are on their way.
	if err := script.Queue(units, pos, gcode.HomeAll()); err != nil {
		return err
	}

	// Heaters first, out of band.
	if _, err := script.ExecuteImmediate(
		gcode.SetBedTemp(60),
		gcode.SetHotendTemp(210, -1),
	); err != nil {
		return err
	}

	park, err := gcode.Move(0, 0, 10, 50, gcode.Unset)
	if err != nil {
		return err
	}

	// Drain the queued preparation, then park and settle.
	if _, err := script.Execute(
		gcode.WaitBedTemp(60, false),
		gcode.WaitHotendTemp(210, -1, false),
		park,
		gcode.GetTemp(-1),
	); err != nil {
		return err
	}

	logger.Infof("emitted %d line(s), next line number %d",
		len(script.History()), script.LineNo())
	return nil
}
