// Package format renders byte sizes and timestamps for listing responses.
package format

import (
	"fmt"
	"time"
)

// uploadTimeLayout renders timestamps like "10:09PM, 10 Oct".
const uploadTimeLayout = "03:04PM, 02 Jan"

// FileSize renders size in the largest binary (1024-based) unit not exceeding
// the value, rounded to whole numbers: "500 B", "2 KB", "5 GB".
func FileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	suffixes := []string{"KB", "MB", "GB", "TB"}
	value := float64(size) / unit
	i := 0
	for value >= unit && i < len(suffixes)-1 {
		value /= unit
		i++
	}
	return fmt.Sprintf("%.0f %s", value, suffixes[i])
}

// UploadTime renders a file's upload timestamp for listing responses.
func UploadTime(t time.Time) string {
	return t.Format(uploadTimeLayout)
}
