package match

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	set "github.com/deckarep/golang-set/v2"
	"github.com/m-manu/filehound/compare"
	"github.com/m-manu/filehound/filesutil"
	"github.com/m-manu/filehound/fs"
)

// now is swapped in tests
var now = time.Now

// Must panics when err is non-nil, for predicates built from literals
func Must(p *Predicate, err error) *Predicate {
	if err != nil {
		panic(err)
	}
	return p
}

// Ext matches entries whose extension is any of the given ones. ".json" and "json" are the same.
func Ext(extensions ...string) *Predicate {
	cleaned := set.NewSetWithSize[string](len(extensions))
	names := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if cleaned.Add(filesutil.CleanExtension(ext)) {
			names = append(names, filesutil.CleanExtension(ext))
		}
	}
	return New("ext "+strings.Join(names, ","), Regular, func(e *fs.Entry) bool {
		return cleaned.Contains(e.Extension())
	})
}

// Glob matches entries against a glob pattern (with ** and {a,b} support).
// A pattern without a path separator is matched against the base name only.
func Glob(pattern string) (*Predicate, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern \"%s\"", pattern)
	}
	matchBase := !strings.Contains(pattern, "/")
	return New("glob "+pattern, Regular, func(e *fs.Entry) bool {
		target := filepath.ToSlash(e.Path())
		if matchBase {
			target = e.Name()
		}
		matched, _ := doublestar.Match(pattern, target)
		return matched
	}), nil
}

// Like matches entries whose full path matches a regular expression
func Like(pattern string) (*Predicate, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern \"%s\": %+v", pattern, err)
	}
	return New("like "+pattern, Regular, func(e *fs.Entry) bool {
		return re.MatchString(e.Path())
	}), nil
}

// Discard rejects entries whose full path matches any of the regular expressions
func Discard(patterns ...string) (*Predicate, error) {
	likes := make([]*Predicate, 0, len(patterns))
	for _, pattern := range patterns {
		like, err := Like(pattern)
		if err != nil {
			return nil, err
		}
		likes = append(likes, like)
	}
	return Or(likes...).Not(), nil
}

// Size matches entries whose size satisfies an expression such as "<10k"
func Size(expression string) (*Predicate, error) {
	sizeMatches, err := compare.ParseSize(expression)
	if err != nil {
		return nil, err
	}
	return New("size "+expression, Regular, func(e *fs.Entry) bool {
		return sizeMatches(e.Size())
	}), nil
}

// IsEmpty matches zero length entries
func IsEmpty() *Predicate {
	return New("empty", Regular, func(e *fs.Entry) bool {
		return e.Size() == 0
	})
}

// Modified matches entries by modification time, e.g. "< 2 days"
func Modified(expression string) (*Predicate, error) {
	return timePredicate("modified", expression, (*fs.Entry).ModTime)
}

// Accessed matches entries by access time, e.g. "> 8 hours"
func Accessed(expression string) (*Predicate, error) {
	return timePredicate("accessed", expression, (*fs.Entry).AccessTime)
}

// Changed matches entries by status change time, e.g. "< 10 minutes"
func Changed(expression string) (*Predicate, error) {
	return timePredicate("changed", expression, (*fs.Entry).ChangeTime)
}

func timePredicate(name, expression string, timeOf func(*fs.Entry) time.Time) (*Predicate, error) {
	timeMatches, err := compare.ParseDate(expression, now())
	if err != nil {
		return nil, err
	}
	return New(name+" "+expression, Regular, func(e *fs.Entry) bool {
		return timeMatches(timeOf(e))
	}), nil
}

// Socket matches unix domain sockets
func Socket() *Predicate {
	return New("socket", Regular, (*fs.Entry).IsSocket)
}

// DirectoryOptions tune Directories
type DirectoryOptions struct {
	ExcludeHidden bool
}

// Directories matches directories and makes the search report directories instead of files
func Directories(opts ...DirectoryOptions) *Predicate {
	var o DirectoryOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	return New("directories", Directory, func(e *fs.Entry) bool {
		if o.ExcludeHidden && e.IsHidden() {
			return false
		}
		return e.IsDirectory()
	})
}

// IgnoreHiddenFiles rejects entries whose name starts with a dot
func IgnoreHiddenFiles() *Predicate {
	return New("not hidden", Regular, func(e *fs.Entry) bool {
		return !e.IsHidden()
	})
}

// IgnoreHiddenPath rejects entries having a hidden component anywhere in their path.
// An ancestor component counts as hidden only when a dot is followed by something other
// than a dot, so "..cache/x" passes while "..x" itself doesn't.
func IgnoreHiddenPath() *Predicate {
	return New("no hidden path", Regular, func(e *fs.Entry) bool {
		if fs.IsHiddenName(e.Name()) {
			return false
		}
		for _, component := range strings.Split(filepath.ToSlash(e.Path()), "/") {
			if len(component) > 1 && component[0] == '.' && component[1] != '.' {
				return false
			}
		}
		return true
	})
}

// Custom wraps a caller supplied test, which must be free of side effects
func Custom(name string, test func(e *fs.Entry) bool) *Predicate {
	return New(name, Regular, test)
}
