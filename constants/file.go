package constants

import "strings"

// FileFormat is the normalized category a file extension maps to.
// The ingestion pipeline dispatches on this, not on the raw extension.
type FileFormat string

const (
	SPREADSHEET FileFormat = "SPREADSHEET"
	DOCUMENT    FileFormat = "DOCUMENT"
	TEXT        FileFormat = "TEXT"
	IMAGE       FileFormat = "IMAGE"
)

// AllowedExtensions is the dispatch table for upload intake: every accepted
// extension and the format it normalizes to. Legacy binary .xls workbooks are
// not accepted; the spreadsheet parser reads OOXML only.
var AllowedExtensions = map[string]FileFormat{
	"xlsx": SPREADSHEET,
	"pdf":  DOCUMENT,
	"txt":  TEXT,
	"jpg":  IMAGE,
	"jpeg": IMAGE,
	"png":  IMAGE,
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat returns the format for a (possibly dotted, mixed-case)
// extension, or "" if the extension is not supported.
func MapExtToFormat(ext string) FileFormat {
	return AllowedExtensions[NormalizeExt(ext)]
}

// MIMEForExt returns the MIME type submitted to the extraction service for a
// supported extension.
func MIMEForExt(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return "application/pdf"
	case "txt":
		return "text/plain"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
