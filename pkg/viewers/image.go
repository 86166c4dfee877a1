package viewers

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/riff"
	_ "golang.org/x/image/vp8"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".riff": true, ".tiff": true, ".vp8": true, ".webp": true,
}

// IsImage reports whether a file should be shown as an image.
func IsImage(name, contentType string) bool {
	if strings.HasPrefix(contentType, "image/") {
		return true
	}
	return imageExtensions[strings.ToLower(path.Ext(name))]
}

// ImageMeta decodes the header of an image. Only the first bytes of the file are needed.
func ImageMeta(data []byte) (*Meta, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	main := MetaGroup{
		ID:    "main",
		Title: "Format: " + strings.ToUpper(format),
	}
	main.Records = append(main.Records,
		&MetaRecord{
			ID:         "width",
			Title:      "Width",
			Value:      strconv.Itoa(cfg.Width),
			ValueAlign: AlignRight,
		},
		&MetaRecord{
			ID:         "height",
			Title:      "Height",
			Value:      strconv.Itoa(cfg.Height),
			ValueAlign: AlignRight,
		},
	)
	return &Meta{
		Groups: []*MetaGroup{
			&main,
		},
	}, nil
}
