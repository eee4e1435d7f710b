package validation

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// DetectMimeType trusts the part header unless it is missing or generic, in
// which case the file extension decides.
func DetectMimeType(fileHeader *multipart.FileHeader) (string, error) {
	return DetectMimeTypeByName(fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
}

func DetectMimeTypeByName(declared, filename string) (string, error) {
	mimeType := declared
	if mimeType == "" || mimeType == "application/octet-stream" {
		if detected := mime.TypeByExtension(filepath.Ext(filename)); detected != "" {
			mimeType = detected
		}
	}
	if mimeType == "" {
		return "", fmt.Errorf("could not detect MIME type for file: %s", filename)
	}
	// drop parameters such as "; charset=utf-8"
	if mediaType, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = mediaType
	}
	return mimeType, nil
}

// ExtractImageDimensions reads only the image header. The reader is rewound.
func ExtractImageDimensions(file io.ReadSeeker, mimeType string) (*int, *int) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, nil
	}

	cfg, _, err := image.DecodeConfig(file)
	file.Seek(0, io.SeekStart)
	if err != nil {
		return nil, nil
	}
	width, height := cfg.Width, cfg.Height
	return &width, &height
}
