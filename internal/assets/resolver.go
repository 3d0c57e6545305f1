package assets

import (
	"errors"

	"github.com/spf13/afero"
)

// Resolver tries its sources in order and returns the first hit. Only
// not-found errors move on to the next source; an invalid name or a read
// failure stops the lookup.
type Resolver struct {
	sources []Loader
}

// NewResolver returns a Resolver over the embedded assets, preceded by dir
// on fsys when dir is not empty.
func NewResolver(fsys afero.Fs, dir string) (*Resolver, error) {
	r := &Resolver{}
	if dir != "" {
		custom, err := NewDir(fsys, dir)
		if err != nil {
			return nil, err
		}
		r.sources = append(r.sources, custom)
	}
	r.sources = append(r.sources, Embedded())
	return r, nil
}

// HasCustom reports whether a directory overrides the embedded assets.
func (r *Resolver) HasCustom() bool {
	return len(r.sources) > 1
}

// LoadStyle returns the first stylesheet found.
func (r *Resolver) LoadStyle(name string) (string, error) {
	return first(r.sources, func(l Loader) (string, error) { return l.LoadStyle(name) })
}

// LoadImage returns the first image found.
func (r *Resolver) LoadImage(name string) (*Image, error) {
	return first(r.sources, func(l Loader) (*Image, error) { return l.LoadImage(name) })
}

func first[T any](sources []Loader, load func(Loader) (T, error)) (T, error) {
	var (
		zero T
		err  error
	)
	for _, src := range sources {
		var v T
		v, err = load(src)
		if err == nil {
			return v, nil
		}
		if !isNotFound(err) {
			return zero, err
		}
	}
	return zero, err
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrImageNotFound)
}

var _ Loader = (*Resolver)(nil)
