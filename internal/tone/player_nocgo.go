//go:build !cgo

package tone

import "errors"

// NewPlayer reports that audio output needs a cgo build.
func NewPlayer() (Player, error) {
	return nil, errors.New("audio output requires a cgo build")
}
