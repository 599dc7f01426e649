package domain

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// DownloadKey derives the extraction directory name from a resolved URL.
// Equal URLs always map to the same key within and across runs.
func DownloadKey(url string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(url))
}
