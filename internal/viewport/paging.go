package viewport

import "math"

// ClampPageNumber pulls page into [1, count]. An unknown or zero count
// always yields page 1.
func ClampPageNumber(page, count int) int {
	if count < 1 || page < 1 {
		return 1
	}
	if page > count {
		return count
	}
	return page
}

// VirtualPageCount splits a continuous surface into pages of viewportHeight.
func VirtualPageCount(totalHeight, viewportHeight float64) int {
	if !(totalHeight > 0) || !(viewportHeight > 0) {
		return 1
	}
	n := int(math.Ceil(totalHeight / viewportHeight))
	if n < 1 {
		return 1
	}
	return n
}

// ScrollOffsetForPage returns the vertical offset at which page starts.
func ScrollOffsetForPage(page int, viewportHeight float64) float64 {
	if page < 1 || !(viewportHeight > 0) {
		return 0
	}
	return float64(page-1) * viewportHeight
}
