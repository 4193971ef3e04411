package startup

import (
	"fmt"
	"os"
)

// ServiceUnit renders the systemd unit that runs the panel controller at boot.
func ServiceUnit(binaryPath, configPath string) string {
	return fmt.Sprintf(`[Unit]
Description=R2 body CBI/DPL panel controller
After=multi-user.target

[Service]
Type=simple
ExecStart=%s -config-file %s
Restart=on-failure
RestartSec=5s

[Install]
WantedBy=multi-user.target
`, binaryPath, configPath)
}

// InstallService writes the unit file to servicePath.
func InstallService(servicePath, binaryPath, configPath string) error {
	if err := os.WriteFile(servicePath, []byte(ServiceUnit(binaryPath, configPath)), 0644); err != nil {
		return fmt.Errorf("failed to write service unit: %w", err)
	}
	return nil
}
