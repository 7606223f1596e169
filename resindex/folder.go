package resindex

import (
	"sort"
	"strings"

	"github.com/vtex/go-resconfig/folderconfig"
)

// Folder is a resource folder such as "drawable-hdpi" and the files it holds.
// A folder is not modified once indexed.
type Folder struct {
	Type   FolderType
	Name   string
	Source string

	config *folderconfig.Configuration
	files  map[string]struct{}
}

func newFolder(source, name string, typ FolderType, config *folderconfig.Configuration) *Folder {
	return &Folder{
		Type:   typ,
		Name:   name,
		Source: source,
		config: config,
		files:  map[string]struct{}{},
	}
}

// Configuration makes folders usable as candidates of
// folderconfig.FindMatchingConfigurable.
func (f *Folder) Configuration() *folderconfig.Configuration {
	return f.config
}

func (f *Folder) HasFile(name string) bool {
	_, ok := f.files[name]
	return ok
}

// Files returns the file names of the folder, sorted.
func (f *Folder) Files() []string {
	files := make([]string, 0, len(f.files))
	for name := range f.files {
		files = append(files, name)
	}
	sort.Strings(files)
	return files
}

func (f *Folder) addFiles(files ...string) {
	for _, name := range files {
		if name != "" {
			f.files[name] = struct{}{}
		}
	}
}

// withFiles returns a copy of f holding files as well.
func (f *Folder) withFiles(files ...string) *Folder {
	merged := *f
	merged.files = make(map[string]struct{}, len(f.files)+len(files))
	for name := range f.files {
		merged.files[name] = struct{}{}
	}
	merged.addFiles(files...)
	return &merged
}

func (f *Folder) String() string {
	if f.Source == "" {
		return f.Name
	}
	return f.Source + "/" + f.Name
}

// lessFolder orders folders by configuration, then by name and source, so the
// default folder comes first and ties between sources are stable.
func lessFolder(a, b *Folder) bool {
	if c := a.config.Compare(b.config); c != 0 {
		return c < 0
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Source < b.Source
}

// splitResourcePath returns the folder and file of a path ending in
// "<folder>/<file>", as found in resource directories and archives.
func splitResourcePath(path string) (folder, file string, ok bool) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return "", "", false
	}
	folder, file = parts[len(parts)-2], parts[len(parts)-1]
	if folder == "" || file == "" {
		return "", "", false
	}
	return folder, file, true
}
