package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/spf13/afero"
)

//go:embed styles images
var builtin embed.FS

// Source loads assets from the styles/ and images/ directories of a file
// system.
type Source struct {
	fs   afero.Fs
	name string
}

// Embedded returns the built-in assets.
func Embedded() *Source {
	return &Source{fs: afero.FromIOFS{FS: builtin}, name: "embedded"}
}

// NewDir returns a read-only Source rooted at dir on fsys.
// Returns ErrInvalidBasePath if dir is not an existing directory.
func NewDir(fsys afero.Fs, dir string) (*Source, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	ok, err := afero.DirExists(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, dir)
	}
	return &Source{
		fs:   afero.NewReadOnlyFs(afero.NewBasePathFs(fsys, dir)),
		name: dir,
	}, nil
}

// String names the source in errors and logs.
func (s *Source) String() string { return s.name }

// LoadStyle reads styles/{name}.css.
func (s *Source) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := afero.ReadFile(s.fs, path.Join("styles", name+".css"))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %q in %s", ErrStyleNotFound, name, s.name)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

// LoadImage reads images/{name} with the first extension that exists:
// .svg, then .png, then .jpg.
func (s *Source) LoadImage(name string) (*Image, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	for _, candidate := range imageExtensions {
		data, err := afero.ReadFile(s.fs, path.Join("images", name+candidate.ext))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
		}
		return &Image{Name: name + candidate.ext, Data: data, MIMEType: candidate.mime}, nil
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrImageNotFound, name, s.name)
}

var _ Loader = (*Source)(nil)
