// Package linker places source files at their destination paths as hardlinks.
//
// A destination that already exists is never replaced. Links that cannot be
// made because source and destination live on different filesystems either
// fail with a CrossDeviceError or, when configured, fall back to a verified
// copy.
package linker

import (
	"errors"
	"fmt"
	"os"

	"musiclink/internal/fileutil"
)

// Outcome describes what Link did for one file.
type Outcome int

const (
	// Linked means a new hardlink was created.
	Linked Outcome = iota + 1
	// AlreadyExists means the destination was present and left untouched.
	AlreadyExists
	// Copied means the destination was created as a verified copy.
	Copied
)

func (o Outcome) String() string {
	switch o {
	case Linked:
		return "linked"
	case AlreadyExists:
		return "exists"
	case Copied:
		return "copied"
	default:
		return "unknown"
	}
}

// Cross-device policies.
const (
	CrossDeviceFail = "fail"
	CrossDeviceCopy = "copy"
)

// LinkError reports a failed link attempt other than a cross-device link.
type LinkError struct {
	Src string
	Dst string
	Err error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link %q -> %q: %v", e.Src, e.Dst, e.Err)
}

func (e *LinkError) Unwrap() error { return e.Err }

// CrossDeviceError reports a hardlink refused because src and dst are on
// different filesystems.
type CrossDeviceError struct {
	Src string
	Dst string
	Err error
}

func (e *CrossDeviceError) Error() string {
	return fmt.Sprintf("link %q -> %q crosses filesystems; put source and destination on the same filesystem or set library.cross_device = \"copy\": %v", e.Src, e.Dst, e.Err)
}

func (e *CrossDeviceError) Unwrap() error { return e.Err }

// IsCrossDevice reports whether err is (or wraps) a CrossDeviceError.
func IsCrossDevice(err error) bool {
	var e *CrossDeviceError
	return errors.As(err, &e)
}

var (
	linkFunc = os.Link
	copyFunc = fileutil.CopyFileVerified
)

// Linker creates destination entries. The zero value links and fails on
// cross-device links.
type Linker struct {
	CrossDevice string
}

// New returns a Linker with the given cross-device policy.
func New(crossDevice string) *Linker {
	return &Linker{CrossDevice: crossDevice}
}

// Exists reports whether dst is already present. Symlinks count as present,
// dangling or not.
func Exists(dst string) (bool, error) {
	if _, err := os.Lstat(dst); err == nil {
		return true, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	return false, nil
}

// Link makes dst refer to the same file as src. The parent of dst must
// already exist.
func (l *Linker) Link(src, dst string) (Outcome, error) {
	exists, err := Exists(dst)
	if err != nil {
		return 0, &LinkError{Src: src, Dst: dst, Err: err}
	}
	if exists {
		return AlreadyExists, nil
	}

	err = linkFunc(src, dst)
	switch {
	case err == nil:
		return Linked, nil
	case errors.Is(err, os.ErrExist):
		// Another writer created dst between the check and the link.
		return AlreadyExists, nil
	case isEXDEV(err):
		if l != nil && l.CrossDevice == CrossDeviceCopy {
			return l.copy(src, dst)
		}
		return 0, &CrossDeviceError{Src: src, Dst: dst, Err: err}
	default:
		return 0, &LinkError{Src: src, Dst: dst, Err: err}
	}
}

func (l *Linker) copy(src, dst string) (Outcome, error) {
	if _, err := copyFunc(src, dst); err != nil {
		if errors.Is(err, os.ErrExist) {
			return AlreadyExists, nil
		}
		return 0, &LinkError{Src: src, Dst: dst, Err: fmt.Errorf("cross-device copy: %w", err)}
	}
	return Copied, nil
}
