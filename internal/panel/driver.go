package panel

// Device indexes on the display chain.
const (
	CBI = 0
	DPL = 1
)

// Rows is the number of usable rows per panel.
const Rows = 7

// Driver is the display hardware the controller renders through.
// Implementations own their own error reporting; the controller assumes
// every write succeeds.
type Driver interface {
	SetRow(device, row int, value byte)
	SetLed(device, row, column int, on bool)
	Shutdown(device int, on bool)
	ClearDisplay(device int)
	SetIntensity(device, level int)
}
