package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	appErr "github.com/verdant-labs/plantdex/internal/pkg/errors"
)

// Decoded is the result of validating a data-URI image payload.
type Decoded struct {
	Bytes     []byte
	Extension string
	Width     int
	Height    int
}

// mimeExtensions maps accepted MIME types to their canonical file extension.
// image/jpeg normalizes to "jpg".
var mimeExtensions = map[string]string{
	"image/png":  "png",
	"image/gif":  "gif",
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
}

// Decode turns a `data:<mime>;base64,<payload>` string into raw image bytes
// plus the validated extension and pixel dimensions. It performs no I/O.
func Decode(dataURI string) (*Decoded, error) {
	mimeType, payload, err := splitDataURI(dataURI)
	if err != nil {
		return nil, err
	}
	ext, ok := mimeExtensions[mimeType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", appErr.ErrUnsupportedFormat, mimeType)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrMalformedPayload, err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrCorruptImage, err)
	}
	return &Decoded{
		Bytes:     raw,
		Extension: ext,
		Width:     cfg.Width,
		Height:    cfg.Height,
	}, nil
}

func splitDataURI(raw string) (mimeType, payload string, err error) {
	if !strings.HasPrefix(raw, "data:") {
		return "", "", fmt.Errorf("%w: missing data: prefix", appErr.ErrMalformedPayload)
	}
	parts := strings.SplitN(raw, ",", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: missing payload separator", appErr.ErrMalformedPayload)
	}
	meta := strings.TrimPrefix(parts[0], "data:")
	if !strings.HasSuffix(meta, ";base64") {
		return "", "", fmt.Errorf("%w: payload is not base64-encoded", appErr.ErrMalformedPayload)
	}
	mimeType = strings.TrimSpace(strings.TrimSuffix(meta, ";base64"))
	return mimeType, parts[1], nil
}
