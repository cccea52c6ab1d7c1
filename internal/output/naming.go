package output

import (
	"fmt"
	"time"
)

// TimestampLayout names manual captures. The hour is on the 12-hour clock.
const TimestampLayout = "2006_01_02_03_04_05"

// BaseName returns the file name, without extension, of a capture: auto
// captures are numbered, manual ones are stamped with their capture time.
func BaseName(auto bool, frame int, at time.Time) string {
	if auto {
		return fmt.Sprintf("frame_%06d", frame)
	}
	return at.Format(TimestampLayout)
}
