package viewers

import (
	"bytes"
	"encoding/json"
	"mime"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/datatug/sdtug/pkg/chroma2tcell"
	"github.com/rivo/tview"
)

// IsText reports whether data can be shown as text.
func IsText(contentType string, data []byte) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil {
		switch {
		case strings.HasPrefix(mediaType, "text/"):
			return true
		case mediaType == "application/json", mediaType == "application/xml", mediaType == "application/javascript":
			return true
		}
	}
	return utf8.Valid(data) && !bytes.ContainsRune(data, 0)
}

// TextContent returns data as tview text, colourised by file name.
// JSON is indented first when it parses.
func TextContent(name string, data []byte) string {
	text := string(data)
	if strings.EqualFold(path.Ext(name), ".json") {
		text, _ = prettyJSON(text)
	}
	colorized, err := chroma2tcell.ColorizeFile(name, text)
	if err != nil {
		return tview.Escape(text)
	}
	return colorized
}

func prettyJSON(input string) (string, error) {
	var out bytes.Buffer
	err := json.Indent(&out, []byte(input), "", "  ")
	if err != nil {
		return input, err
	}
	return out.String(), nil
}
