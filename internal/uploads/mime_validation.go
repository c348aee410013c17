package uploads

import (
	"fmt"
	"mime"
	"path"
	"slices"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
)

type fileFormat struct {
	mime string
	ext  string
}

var (
	formatPNG  = fileFormat{mime: "image/png", ext: ".png"}
	formatJPEG = fileFormat{mime: "image/jpeg", ext: ".jpg"}
	formatWebP = fileFormat{mime: "image/webp", ext: ".webp"}
	formatGIF  = fileFormat{mime: "image/gif", ext: ".gif"}
	formatPDF  = fileFormat{mime: "application/pdf", ext: ".pdf"}
)

// acceptPolicy is what one document type will take.
type acceptPolicy struct {
	label   string
	formats []fileFormat
}

var (
	imagesOnly = acceptPolicy{
		label:   "images",
		formats: []fileFormat{formatGIF, formatJPEG, formatPNG, formatWebP},
	}
	imagesOrPDF = acceptPolicy{
		label:   "images or PDFs",
		formats: []fileFormat{formatPDF, formatGIF, formatJPEG, formatPNG, formatWebP},
	}
)

// policyFor returns the image-only policy for profile pictures and the
// broader one for every identification document.
func policyFor(documentType string) acceptPolicy {
	if documentType == documentTypeProfilePicture {
		return imagesOnly
	}
	return imagesOrPDF
}

func (p acceptPolicy) mimeTypes() []string {
	out := make([]string, len(p.formats))
	for i, f := range p.formats {
		out[i] = f.mime
	}
	slices.Sort(out)
	return out
}

func (p acceptPolicy) lookup(mimeType string) (fileFormat, bool) {
	for _, f := range p.formats {
		if strings.EqualFold(f.mime, mimeType) {
			return f, true
		}
	}
	return fileFormat{}, false
}

func (p acceptPolicy) allows(mimeType string) bool {
	_, ok := p.lookup(mimeType)
	return ok
}

// admits checks the decoded bytes. Payloads mimetype cannot classify are
// accepted on the declared type.
func (p acceptPolicy) admits(data []byte) bool {
	detected := mimetype.Detect(data)
	if detected.Is("application/octet-stream") {
		return true
	}
	for _, f := range p.formats {
		if detected.Is(f.mime) {
			return true
		}
	}
	return false
}

// extension prefers the client file name's suffix and falls back to the one
// registered for the declared content type.
func (p acceptPolicy) extension(fileName, mimeType string) string {
	if ext := strings.ToLower(path.Ext(sanitizeFileName(fileName))); ext != "" && len(ext) <= 6 {
		return ext
	}
	f, _ := p.lookup(mimeType)
	return f.ext
}

// parseContentType strips parameters and lowercases the declared media type.
func parseContentType(value string) (string, error) {
	clean := strings.TrimSpace(value)
	if clean == "" {
		return "", fmt.Errorf("content type required")
	}
	mediaType, _, err := mime.ParseMediaType(clean)
	if err != nil {
		return "", fmt.Errorf("parse content type: %w", err)
	}
	return strings.ToLower(mediaType), nil
}

func sanitizeFileName(name string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsControl(r):
			return -1
		case unicode.IsSpace(r):
			return '-'
		}
		return r
	}, base)
	return strings.Trim(cleaned, "-_")
}

// sanitizeDocumentType keeps lowercase letters, digits, '-' and '_'; spaces
// become underscores.
func sanitizeDocumentType(value string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		case unicode.IsSpace(r):
			return '_'
		}
		return -1
	}, strings.ToLower(strings.TrimSpace(value)))
}
