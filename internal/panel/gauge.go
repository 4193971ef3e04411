package panel

// The gauge occupies column 5 of rows 4-6 on the CBI panel. Column 5 is
// bit 2 of the row byte.
const (
	gaugeFirstRow      = 4
	gaugeColumn        = 5
	gaugeBit      byte = 0x80 >> gaugeColumn
)

// tierLit reports whether the gauge cell on row is lit at level. Comparisons
// are strict, so boundary values fall into the lower tier.
func tierLit(row, level int) bool {
	switch row {
	case 4:
		return level > 80
	case 5:
		return level > 30
	case 6:
		return level > 5
	default:
		return false
	}
}

// GaugeCells maps a battery level onto the three gauge cells, lowest cell
// (row 6) first.
func GaugeCells(level int) [3]bool {
	return [3]bool{
		tierLit(6, level),
		tierLit(5, level),
		tierLit(4, level),
	}
}

// LitCells returns how many gauge cells are lit at level.
func LitCells(level int) int {
	n := 0
	for _, lit := range GaugeCells(level) {
		if lit {
			n++
		}
	}
	return n
}

// RenderBatteryGauge writes the gauge cells for level to the CBI panel.
func (c *Controller) RenderBatteryGauge(level int) {
	for row := gaugeFirstRow; row < Rows; row++ {
		c.driver.SetLed(CBI, row, gaugeColumn, tierLit(row, level))
	}
}
