package battery

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultPath is the capacity file of the first battery power supply.
const DefaultPath = "/sys/class/power_supply/BAT0/capacity"

// ReadPercent reads the battery capacity percentage from a sysfs capacity
// file. The value is returned as reported; clamping is left to the caller.
// A single attempt is made; callers polling on an interval retry on the next
// poll.
var ReadPercent = func(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read battery capacity: %w", err)
	}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return 0, fmt.Errorf("battery capacity file %s is empty", path)
	}

	pct, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("failed to parse battery capacity %q: %w", trimmed, err)
	}
	return pct, nil
}
