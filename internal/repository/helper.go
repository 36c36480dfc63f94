package repository

import "time"

// timestampLayout is fixed-width so stored timestamps compare correctly as strings.
const timestampLayout = "2006-01-02 15:04:05.000000"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
