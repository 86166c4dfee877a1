package files

import (
	"path"
	"strings"
)

// Listing is a directory listing as returned by the device.
// Entries are kept in the order the device sent them.
type Listing struct {
	Path        string `json:"path,omitempty"`
	Directories []Dir  `json:"directories"`
	Files       []File `json:"files"`
}

type Dir struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type File struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	Modified string `json:"modified,omitempty"`
}

func (l Listing) IsEmpty() bool {
	return len(l.Directories) == 0 && len(l.Files) == 0
}

// FindFile returns the file with the given full path.
func (l Listing) FindFile(filePath string) (File, bool) {
	for _, f := range l.Files {
		if f.Path == filePath {
			return f, true
		}
	}
	return File{}, false
}

// BaseName returns the last element of a slash-delimited device path.
func BaseName(p string) string {
	if p == "" || p == "/" {
		return p
	}
	return path.Base(strings.TrimSuffix(p, "/"))
}

// Crumb is one element of a path navigator.
type Crumb struct {
	Title string
	Path  string
}

// Crumbs splits a device path into navigator elements starting with the root.
// Empty segments are skipped, so "/data//logs/" yields Root, data, logs.
func Crumbs(p string) []Crumb {
	crumbs := []Crumb{{Title: "Root", Path: "/"}}
	var sb strings.Builder
	for _, part := range strings.Split(p, "/") {
		if part == "" {
			continue
		}
		sb.WriteString("/")
		sb.WriteString(part)
		crumbs = append(crumbs, Crumb{Title: part, Path: sb.String()})
	}
	return crumbs
}

// ParentPath returns the directory containing p. The parent of the root is the root.
func ParentPath(p string) string {
	p = strings.TrimSuffix(p, "/")
	i := strings.LastIndex(p, "/")
	if i <= 0 {
		return "/"
	}
	return p[:i]
}
