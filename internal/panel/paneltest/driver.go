// Package paneltest provides a recording panel.Driver for headless tests.
package paneltest

import "fmt"

// Call is one recorded driver invocation.
type Call struct {
	Op     string
	Device int
	Row    int
	Column int
	Value  byte
	On     bool
	Level  int
}

func (c Call) String() string {
	switch c.Op {
	case "SetRow":
		return fmt.Sprintf("SetRow(%d, %d, %#02x)", c.Device, c.Row, c.Value)
	case "SetLed":
		return fmt.Sprintf("SetLed(%d, %d, %d, %v)", c.Device, c.Row, c.Column, c.On)
	case "Shutdown":
		return fmt.Sprintf("Shutdown(%d, %v)", c.Device, c.On)
	case "ClearDisplay":
		return fmt.Sprintf("ClearDisplay(%d)", c.Device)
	case "SetIntensity":
		return fmt.Sprintf("SetIntensity(%d, %d)", c.Device, c.Level)
	default:
		return c.Op
	}
}

// Driver records every call and mirrors row state for two 8x8 devices.
type Driver struct {
	Calls  []Call
	Rows   [2][8]byte
	Asleep [2]bool
}

func (d *Driver) SetRow(device, row int, value byte) {
	d.Calls = append(d.Calls, Call{Op: "SetRow", Device: device, Row: row, Value: value})
	d.Rows[device][row] = value
}

func (d *Driver) SetLed(device, row, column int, on bool) {
	d.Calls = append(d.Calls, Call{Op: "SetLed", Device: device, Row: row, Column: column, On: on})
	mask := byte(0x80) >> column
	if on {
		d.Rows[device][row] |= mask
	} else {
		d.Rows[device][row] &^= mask
	}
}

func (d *Driver) Shutdown(device int, on bool) {
	d.Calls = append(d.Calls, Call{Op: "Shutdown", Device: device, On: on})
	d.Asleep[device] = on
}

func (d *Driver) ClearDisplay(device int) {
	d.Calls = append(d.Calls, Call{Op: "ClearDisplay", Device: device})
	d.Rows[device] = [8]byte{}
}

func (d *Driver) SetIntensity(device, level int) {
	d.Calls = append(d.Calls, Call{Op: "SetIntensity", Device: device, Level: level})
}

// Count returns how many calls of op were made to device.
func (d *Driver) Count(op string, device int) int {
	n := 0
	for _, c := range d.Calls {
		if c.Op == op && c.Device == device {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls but keeps mirrored state.
func (d *Driver) Reset() {
	d.Calls = nil
}
