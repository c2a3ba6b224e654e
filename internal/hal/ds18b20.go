package hal

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// W1Dir is the kernel 1-Wire device directory on a stock Raspberry Pi with
// the w1-gpio overlay enabled.
const W1Dir = "/sys/bus/w1/devices"

// DS18B20Read returns a ReadFunc sampling a DS18B20 thermometer through the
// kernel w1 sysfs interface. The kernel publishes millidegrees Celsius in
// <dir>/<deviceID>/temperature; the reading is converted to °F.
//
// Each call performs one file read, which triggers a bus conversion taking
// up to 750ms on the default 12-bit resolution. Callers sample from a loop
// whose period comfortably exceeds that.
func DS18B20Read(dir, deviceID string) ReadFunc {
	path := filepath.Join(dir, deviceID, "temperature")
	return func() (float64, error) {
		raw, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("hal: read probe %s: %w", deviceID, err)
		}

		text := strings.TrimSpace(string(raw))
		milli, err := strconv.Atoi(text)
		if err != nil {
			return 0, fmt.Errorf("hal: probe %s returned %q: %w", deviceID, text, err)
		}

		celsius := float64(milli) / 1000.0
		return celsius*9.0/5.0 + 32.0, nil
	}
}
