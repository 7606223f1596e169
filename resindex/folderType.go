package resindex

import (
	"github.com/pkg/errors"
)

// FolderType is the resource type named by the first segment of a folder.
type FolderType int

const (
	TypeAnim FolderType = iota
	TypeAnimator
	TypeColor
	TypeDrawable
	TypeInterpolator
	TypeLayout
	TypeMenu
	TypeMipmap
	TypeRaw
	TypeValues
	TypeXml

	folderTypeCount
)

var folderTypeNames = [folderTypeCount]string{
	"anim",
	"animator",
	"color",
	"drawable",
	"interpolator",
	"layout",
	"menu",
	"mipmap",
	"raw",
	"values",
	"xml",
}

func (t FolderType) String() string {
	if !t.IsValid() {
		return "unknown"
	}
	return folderTypeNames[t]
}

func (t FolderType) IsValid() bool {
	return t >= 0 && t < folderTypeCount
}

// FolderTypes returns every folder type in declaration order.
func FolderTypes() []FolderType {
	types := make([]FolderType, folderTypeCount)
	for i := range types {
		types[i] = FolderType(i)
	}
	return types
}

func ParseFolderType(name string) (FolderType, bool) {
	for i, n := range folderTypeNames {
		if n == name {
			return FolderType(i), true
		}
	}
	return 0, false
}

func (t FolderType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, errors.Errorf("Invalid folder type: %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *FolderType) UnmarshalText(b []byte) error {
	parsed, ok := ParseFolderType(string(b))
	if !ok {
		return errors.Errorf("Unknown folder type: %q", string(b))
	}
	*t = parsed
	return nil
}
