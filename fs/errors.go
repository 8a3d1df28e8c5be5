package fs

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures raised while searching
type ErrorKind int

const (
	// InvalidPath means a search root doesn't exist or isn't readable
	InvalidPath ErrorKind = iota + 1
	// ListingFailure means a directory couldn't be enumerated
	ListingFailure
	// StatFailure means metadata of an entry couldn't be obtained
	StatFailure
)

// Sentinels to be used with errors.Is
var (
	ErrInvalidPath    = errors.New("invalid path")
	ErrListingFailure = errors.New("listing failure")
	ErrStatFailure    = errors.New("stat failure")
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidPath:
		return "invalid path"
	case ListingFailure:
		return "listing failure"
	case StatFailure:
		return "stat failure"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) sentinel() error {
	switch k {
	case InvalidPath:
		return ErrInvalidPath
	case ListingFailure:
		return ErrListingFailure
	case StatFailure:
		return ErrStatFailure
	}
	return nil
}

// Error is a failure tied to one path
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: \"%s\"", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s: \"%s\": %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the kind of the first *Error in err's chain, or 0 if there's none
func KindOf(err error) ErrorKind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
