package fsutils

import (
	"math"
	"strconv"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatFileSize returns a human-readable size in base-1024 units
// with two decimal places, e.g. "1.00 KB". Zero is "0 B".
func FormatFileSize(size int64) string {
	if size <= 0 {
		return "0 B"
	}
	exp := int(math.Floor(math.Log(float64(size)) / math.Log(1024)))
	if exp >= len(sizeUnits) {
		exp = len(sizeUnits) - 1
	}
	val := float64(size) / math.Pow(1024, float64(exp))
	return strconv.FormatFloat(val, 'f', 2, 64) + " " + sizeUnits[exp]
}

// FormatGB renders a gigabyte value reported by the device.
func FormatGB(gb float64) string {
	return strconv.FormatFloat(gb, 'f', 2, 64) + " GB"
}
