package uploader

import "math"

// ProgressFunc receives the number of body bytes handed to the transport so
// far and the total body size. total <= 0 means the size is unknown.
type ProgressFunc func(sent, total int64)

// Percent is round(sent / total * 100) clamped to [0;100].
func Percent(sent, total int64) int {
	if total <= 0 || sent <= 0 {
		return 0
	}

	if sent >= total {
		return 100
	}

	return int(math.Round(float64(sent) / float64(total) * 100))
}
