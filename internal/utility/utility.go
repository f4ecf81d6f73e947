package utility

import "time"

// DateLayout is the layout used for dates stored in records
const DateLayout = "2006-01-02 15:04:05"

// FormatDate formats t with DateLayout
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Contains reports whether item is in slice
func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}
