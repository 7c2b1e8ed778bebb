// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"strconv"
	"strings"

	hwsim "github.com/kvory/nandsim"
)

// TimePin is the reserved output-spec pin name that renders the circuit
// clock's tick count instead of a pin's word.
const TimePin = "time"

// An OutputSpec is one field of a test-harness output line: the pin name
// (or TimePin), an optional string style, the field's total length, and the
// left/right padding counts applied around the rendered value within that
// field.
type OutputSpec struct {
	Pin        string
	StringMode bool
	Len        int
	LeftPad    int
	RightPad   int
}

// FormatLine renders one '|'-delimited, newline-terminated output line for
// specs against c's current pin/clock state.
func FormatLine(c *hwsim.Circuit, specs []OutputSpec) (string, error) {
	var b strings.Builder
	b.WriteByte('|')
	for _, spec := range specs {
		val, err := fieldValue(c, spec)
		if err != nil {
			return "", err
		}
		b.WriteString(padField(val, spec))
		b.WriteByte('|')
	}
	b.WriteByte('\n')
	return b.String(), nil
}

func fieldValue(c *hwsim.Circuit, spec OutputSpec) (string, error) {
	if spec.Pin == TimePin {
		return strconv.FormatUint(c.Clock().Ticks(), 10), nil
	}
	pin, err := c.Pin(spec.Pin)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(uint64(pin.Word()), 10), nil
}

func padField(val string, spec OutputSpec) string {
	left := strings.Repeat(" ", spec.LeftPad)
	right := strings.Repeat(" ", spec.RightPad)
	field := left + val + right
	width := spec.Len
	if width <= 0 {
		width = len(field)
	}
	if len(field) >= width {
		return field[:width]
	}
	if spec.StringMode {
		return field + strings.Repeat(" ", width-len(field))
	}
	return strings.Repeat(" ", width-len(field)) + field
}
