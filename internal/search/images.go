package search

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// Images resolves the gallery of an entity from a directory named after it.
type Images struct {
	fs   afero.Fs
	root string
}

func NewImages(fs afero.Fs, root string) *Images {
	return &Images{fs: fs, root: root}
}

// For lists image files under <root>/<name>/. A missing or unreadable
// directory yields an empty list. Order follows the directory listing and
// callers must not rely on it.
func (i *Images) For(name string) []string {
	images := []string{}
	if i == nil || i.fs == nil || name == "" {
		return images
	}
	entries, err := afero.ReadDir(i.fs, filepath.Join(i.root, name))
	if err != nil {
		return images
	}
	base := filepath.ToSlash(i.root)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))]; !ok {
			continue
		}
		images = append(images, path.Join(base, filepath.ToSlash(name), entry.Name()))
	}
	return images
}
