package constants

import "strings"

// Source file formats accepted by the upload pipeline.
const (
	FormatPDF   = "PDF"
	FormatImage = "IMAGE"
)

// AllowedExtensions holds the default allowed file extensions for FIR uploads.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to a file format.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return FormatPDF
	case "jpg", "jpeg", "png":
		return FormatImage
	default:
		return ""
	}
}
