package viewers

import (
	"github.com/datatug/sdtug/pkg/fsutils"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatBytes prints n with thousands separators, e.g. "1,048,576 bytes".
func FormatBytes(n int64) string {
	return printer.Sprintf("%d bytes", n)
}

// ContentMeta describes content that is neither text nor a decodable image.
// size is -1 when the device did not send a length.
func ContentMeta(contentType string, size int64) *Meta {
	if contentType == "" {
		contentType = "unknown"
	}
	group := MetaGroup{
		ID:    "content",
		Title: "Binary file",
		Records: []*MetaRecord{
			{ID: "type", Title: "Content type", Value: contentType},
		},
	}
	if size >= 0 {
		group.Records = append(group.Records,
			&MetaRecord{ID: "size", Title: "Size", Value: fsutils.FormatFileSize(size), ValueAlign: AlignRight},
			&MetaRecord{ID: "bytes", Title: "Bytes", Value: FormatBytes(size), ValueAlign: AlignRight},
		)
	}
	return &Meta{Groups: []*MetaGroup{&group}}
}
