// Friendly-name operation helpers for gcodescript
//
// Each helper maps a human-friendly operation ("home all axes", "set
// units to millimeters") to one Code record carrying the translated
// mnemonic and parameter list. Optional float arguments use the Unset
// sentinel; optional indexes use any negative value.
//
// Copyright (C) 2026  Gcodescript Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package gcode

import (
	"fmt"
	"math"

	"gcodescript/pkg/errors"
)

// Unset marks an optional float argument as absent.
var Unset = math.NaN()

func isSet(v float64) bool {
	return !math.IsNaN(v)
}

// ExtrusionModes maps extrusion mode names to M commands.
var ExtrusionModes = map[string]string{
	"absolute": "M82",
	"relative": "M83",
}

// Units maps unit names to G commands.
var Units = map[string]string{
	"mm":          "G21",
	"millimeter":  "G21",
	"millimeters": "G21",
	"in":          "G20",
	"inch":        "G20",
	"inches":      "G20",
}

// PositioningModes maps positioning mode names to G commands.
var PositioningModes = map[string]string{
	"absolute": "G90",
	"relative": "G91",
}

// SetToolIndex selects the default print head/tool index (T<n>).
func SetToolIndex(toolidx int) (*Code, error) {
	if toolidx < 0 {
		return nil, errors.GCodeArgError("set_tool_index", "tool index must be non-negative")
	}
	return NewCode(fmt.Sprintf("T%d", toolidx)), nil
}

// SetLineno builds M110, telling the controller which line number to
// expect next.
func SetLineno(number int) (*Code, error) {
	if number < 1 {
		return nil, errors.GCodeArgError("set_lineno", "line number must be >= 1")
	}
	return NewCode("M110").Int('N', number).WithComment("set line no"), nil
}

// SetHotendTemp builds M104, setting a hotend temperature. A negative
// toolidx targets the active tool.
func SetHotendTemp(celsius float64, toolidx int) *Code {
	c := NewCode("M104").Float('S', celsius)
	if toolidx >= 0 {
		c.Int('T', toolidx)
	}
	return c.WithComment("set hotend temp")
}

// GetTemp builds M105, requesting a temperatures report.
func GetTemp(toolidx int) *Code {
	c := NewCode("M105")
	if toolidx >= 0 {
		c.Int('T', toolidx)
	}
	return c.WithComment("report temps")
}

// WaitHotendTemp builds M109. With heatTo false the controller waits
// for the exact temperature (S); with heatTo true it only waits while
// heating up to it (R semantics inverted per Marlin convention).
func WaitHotendTemp(celsius float64, toolidx int, heatTo bool) *Code {
	c := NewCode("M109")
	if heatTo {
		c.Float('R', celsius)
	} else {
		c.Float('S', celsius)
	}
	if toolidx >= 0 {
		c.Int('T', toolidx)
	}
	return c.WithComment("wait on hotend temp")
}

// SetBedTemp builds M140, setting the bed temperature.
func SetBedTemp(celsius float64) *Code {
	return NewCode("M140").Float('S', celsius).WithComment("set bed temp")
}

// WaitBedTemp builds M190, waiting for the bed to reach a temperature.
func WaitBedTemp(celsius float64, heatTo bool) *Code {
	c := NewCode("M190")
	if heatTo {
		c.Float('R', celsius)
	} else {
		c.Float('S', celsius)
	}
	return c.WithComment("wait for bed temp")
}

// SetExtrudeMode builds M82/M83 for "absolute"/"relative" extrusion.
func SetExtrudeMode(mode string) (*Code, error) {
	code, ok := ExtrusionModes[mode]
	if !ok {
		return nil, errors.GCodeArgError("set_extrude_mode", fmt.Sprintf("unknown extrusion mode %q", mode))
	}
	return NewCode(code).WithComment(fmt.Sprintf("set %s e-mode", mode)), nil
}

// SetUnits builds G20/G21 for inch/millimeter units.
func SetUnits(unit string) (*Code, error) {
	code, ok := Units[unit]
	if !ok {
		return nil, errors.GCodeArgError("set_units", fmt.Sprintf("unknown unit %q", unit))
	}
	return NewCode(code).WithComment(fmt.Sprintf("set units to %s", unit)), nil
}

// SetPositioning builds G90/G91 for "absolute"/"relative" positioning.
func SetPositioning(mode string) (*Code, error) {
	code, ok := PositioningModes[mode]
	if !ok {
		return nil, errors.GCodeArgError("set_positioning", fmt.Sprintf("unknown positioning mode %q", mode))
	}
	return NewCode(code).WithComment(fmt.Sprintf("set %s positioning", mode)), nil
}

// SetFanSpeed builds M106. Negative fanidx/secondary are omitted.
func SetFanSpeed(speed int, fanidx, secondary int) *Code {
	c := NewCode("M106")
	if fanidx >= 0 {
		c.Int('P', fanidx)
	}
	c.Int('S', speed)
	if secondary >= 0 {
		c.Int('T', secondary)
	}
	return c
}

// SetFanOff builds M107, turning a fan off.
func SetFanOff(fanidx int) *Code {
	c := NewCode("M107")
	if fanidx >= 0 {
		c.Int('P', fanidx)
	}
	return c
}

// HomeAxis builds G28 for the selected axes; with none selected the
// controller homes everything. The optional flag (O) asks the
// controller to skip axes already homed.
func HomeAxis(x, y, z, optional bool) *Code {
	c := NewCode("G28")
	if x {
		c.Flag('X')
	}
	if y {
		c.Flag('Y')
	}
	if z {
		c.Flag('Z')
	}
	if optional {
		c.Flag('O')
	}
	return c
}

// HomeAll homes every axis.
func HomeAll() *Code {
	return HomeAxis(false, false, false, false)
}

// SetPosition builds G92, redefining the current position of one or
// more axes without moving. Unset arguments are omitted.
func SetPosition(x, y, z, e float64) (*Code, error) {
	if !isSet(x) && !isSet(y) && !isSet(z) && !isSet(e) {
		return nil, errors.GCodeArgError("set_position", "requires at least one axis")
	}
	c := NewCode("G92")
	if isSet(e) {
		c.Float('E', e)
	}
	if isSet(x) {
		c.Float('X', x)
	}
	if isSet(y) {
		c.Float('Y', y)
	}
	if isSet(z) {
		c.Float('Z', z)
	}
	return c, nil
}

// ZeroExtrudedLength resets the extruded filament length to zero.
func ZeroExtrudedLength() *Code {
	c, _ := SetPosition(Unset, Unset, Unset, 0)
	return c
}

// Move builds G0/G1. feedRate is in mm/s and converted to the
// protocol's mm/min; a set filament length implies extrusion (G1).
func Move(x, y, z, feedRate, filament float64) (*Code, error) {
	if !isSet(x) && !isSet(y) && !isSet(z) && !isSet(feedRate) && !isSet(filament) {
		return nil, errors.GCodeArgError("move", "requires at least one argument")
	}
	mnemonic := "G0"
	if isSet(filament) {
		mnemonic = "G1"
	}
	c := NewCode(mnemonic)
	if isSet(x) {
		c.Float('X', x)
	}
	if isSet(y) {
		c.Float('Y', y)
	}
	if isSet(z) {
		c.Float('Z', z)
	}
	if isSet(feedRate) {
		c.Float('F', feedRate*60)
	}
	if isSet(filament) {
		c.Float('E', filament)
	}
	return c, nil
}

// Extrude is Move with extrusion forced on (G1 even without filament).
func Extrude(x, y, z, feedRate, filament float64) (*Code, error) {
	c, err := Move(x, y, z, feedRate, filament)
	if err != nil {
		return nil, err
	}
	c.code = "G1"
	return c, nil
}

// GetPosition builds M114, querying the current position.
func GetPosition() *Code {
	return NewCode("M114").WithComment("get position")
}

// GetPositionDetail builds M114 with the detail parameter.
func GetPositionDetail(verbose bool) *Code {
	d := "<"
	if verbose {
		d = ">"
	}
	return NewCode("M114").Str('D', d).WithComment("get position")
}
