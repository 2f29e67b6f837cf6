package storage

import (
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// ExifTakenDate returns the capture date of the image at path as
// YYYY-MM-DD, preferring DateTimeOriginal over DateTime. It returns ""
// for files without EXIF data or with malformed date tags.
func ExifTakenDate(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return ""
	}

	for _, field := range []exif.FieldName{exif.DateTimeOriginal, exif.DateTime} {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		raw, err := tag.StringVal()
		if err != nil {
			continue
		}
		if date := normalizeExifDate(raw); date != "" {
			return date
		}
	}
	return ""
}

// normalizeExifDate converts an EXIF datetime such as
// "2023:07:14 10:02:33" to "2023-07-14", rejecting values that do not
// parse as a calendar date.
func normalizeExifDate(raw string) string {
	datePart, _, _ := strings.Cut(strings.TrimSpace(raw), " ")
	datePart = strings.ReplaceAll(datePart, ":", "-")
	if _, err := time.Parse("2006-01-02", datePart); err != nil {
		return ""
	}
	return datePart
}
