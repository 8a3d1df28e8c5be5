package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	set "github.com/deckarep/golang-set/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/m-manu/filehound/fs"
	"github.com/m-manu/filehound/match"
	"github.com/m-manu/filehound/walker"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Query is a search being configured through chained calls, then run by one of the
// Find methods. Expression based setters (Glob, Size, ...) don't fail; the first bad
// expression is reported when the query runs.
//
// The matcher is composed afresh on every run, so a Query may be changed and run again.
// A Query must not be changed while it runs.
type Query struct {
	roots                   []string
	builder                 *match.Builder
	maxDepth                int
	hasMaxDepth             bool
	directoriesOnly         bool
	ignoreHiddenDirectories bool
	parallelism             int
	fsys                    fs.FileSystem
	err                     error
}

// NewQuery creates a query searching the current directory of the local file system
func NewQuery() *Query {
	q := &Query{
		builder: match.NewBuilder(),
		fsys:    fs.NewLocalFS(),
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	q.roots = []string{cwd}
	return q
}

// Paths replaces the search roots. Roots are cleaned, "~" is expanded on the local file
// system and duplicates are dropped.
func (q *Query) Paths(paths ...string) *Query {
	local := q.isLocal()
	seen := set.NewThreadUnsafeSet[string]()
	roots := make([]string, 0, len(paths))
	for _, p := range paths {
		if local {
			expanded, err := homedir.Expand(p)
			if err != nil {
				q.fail(errors.Wrapf(err, "couldn't expand path %s", p))
				continue
			}
			p = expanded
		}
		p = filepath.Clean(p)
		if seen.Add(p) {
			roots = append(roots, p)
		}
	}
	q.roots = roots
	return q
}

// Path sets a single search root
func (q *Query) Path(p string) *Query {
	return q.Paths(p)
}

// Match adds predicates, all of which an entry must satisfy
func (q *Query) Match(predicates ...*match.Predicate) *Query {
	q.builder.Add(predicates...)
	return q
}

// AddFilter adds a caller supplied test, which must be free of side effects
func (q *Query) AddFilter(name string, test func(e *fs.Entry) bool) *Query {
	return q.Match(match.Custom(name, test))
}

func (q *Query) Ext(extensions ...string) *Query {
	return q.Match(match.Ext(extensions...))
}

func (q *Query) Glob(pattern string) *Query {
	return q.matchOrFail(match.Glob(pattern))
}

func (q *Query) Like(pattern string) *Query {
	return q.matchOrFail(match.Like(pattern))
}

func (q *Query) Discard(patterns ...string) *Query {
	return q.matchOrFail(match.Discard(patterns...))
}

func (q *Query) Size(expression string) *Query {
	return q.matchOrFail(match.Size(expression))
}

func (q *Query) IsEmpty() *Query {
	return q.Match(match.IsEmpty())
}

func (q *Query) Modified(expression string) *Query {
	return q.matchOrFail(match.Modified(expression))
}

func (q *Query) Accessed(expression string) *Query {
	return q.matchOrFail(match.Accessed(expression))
}

func (q *Query) Changed(expression string) *Query {
	return q.matchOrFail(match.Changed(expression))
}

func (q *Query) Socket() *Query {
	return q.Match(match.Socket())
}

func (q *Query) IgnoreHiddenFiles() *Query {
	return q.Match(match.IgnoreHiddenFiles())
}

// IgnoreHiddenDirectories stops descent into directories whose name starts with a dot
func (q *Query) IgnoreHiddenDirectories() *Query {
	q.ignoreHiddenDirectories = true
	return q
}

// Directory reports directories instead of files
func (q *Query) Directory() *Query {
	q.directoriesOnly = true
	return q
}

// Depth bounds descent: 0 searches the immediate children of each root only.
// With a depth set, roots below other roots are kept, since depth counts from each root.
func (q *Query) Depth(depth int) *Query {
	if depth < 0 {
		q.fail(fmt.Errorf("depth can't be negative (got %d)", depth))
		return q
	}
	q.maxDepth = depth
	q.hasMaxDepth = true
	return q
}

// Not negates the composition of all predicates
func (q *Query) Not() *Query {
	q.builder.Negate(true)
	return q
}

// WithFileSystem searches fsys instead of the local file system. Call it before Paths.
func (q *Query) WithFileSystem(fsys fs.FileSystem) *Query {
	q.fsys = fsys
	return q
}

// Parallelism bounds concurrent file system calls of Find
func (q *Query) Parallelism(n int) *Query {
	q.parallelism = n
	return q
}

// Err returns the first configuration error recorded, if any
func (q *Query) Err() error {
	return q.err
}

// SearchPaths returns a copy of the roots a run would walk
func (q *Query) SearchPaths() []string {
	if q.hasMaxDepth {
		return append(make([]string, 0, len(q.roots)), q.roots...)
	}
	return ReducePaths(q.roots)
}

func (q *Query) matchOrFail(p *match.Predicate, err error) *Query {
	if err != nil {
		q.fail(err)
		return q
	}
	return q.Match(p)
}

func (q *Query) fail(err error) {
	if q.err == nil {
		q.err = err
	}
}

func (q *Query) isLocal() bool {
	_, local := q.fsys.(*fs.LocalFS)
	return local
}

func (q *Query) prepare() ([]string, *match.Predicate, *walker.Walker, error) {
	if q.err != nil {
		return nil, nil, nil, errors.Wrap(q.err, "invalid query")
	}
	w := walker.New(walker.Options{
		MaxDepth:                q.maxDepth,
		HasMaxDepth:             q.hasMaxDepth,
		DirectoriesOnly:         q.directoriesOnly,
		IgnoreHiddenDirectories: q.ignoreHiddenDirectories,
		Parallelism:             q.parallelism,
	})
	matcher := q.builder.Build()
	logrus.WithField("matcher", matcher.String()).Debug("query prepared")
	return q.SearchPaths(), matcher, w, nil
}

func (q *Query) rootEntry(root string) (*fs.Entry, error) {
	entry, err := fs.NewEntry(q.fsys, root)
	if err != nil {
		return nil, err
	}
	if entry.IsDirectory() && !q.fsys.IsReadableDirectory(root) {
		return nil, &fs.Error{Kind: fs.InvalidPath, Path: root, Err: errors.New("directory isn't readable")}
	}
	return entry, nil
}

// FindEntriesSync walks the roots one after another and stops at the first failure,
// returning no results
func (q *Query) FindEntriesSync() ([]*fs.Entry, error) {
	roots, matcher, w, err := q.prepare()
	if err != nil {
		return nil, err
	}
	var all []*fs.Entry
	for _, root := range roots {
		entry, rootErr := q.rootEntry(root)
		if rootErr != nil {
			return nil, errors.Wrapf(rootErr, "couldn't search %s", root)
		}
		found, walkErr := w.WalkSync(entry, matcher)
		if walkErr != nil {
			return nil, errors.Wrapf(walkErr, "couldn't search %s", root)
		}
		all = append(all, found...)
	}
	return all, nil
}

// FindSync is FindEntriesSync returning paths
func (q *Query) FindSync() ([]string, error) {
	entries, err := q.FindEntriesSync()
	if err != nil {
		return nil, err
	}
	return pathsOf(entries), nil
}

type rootResult struct {
	entries []*fs.Entry
	err     error
}

// FindEntries walks all roots concurrently. Results are ordered by root, then in walk
// order within a root. A failing root doesn't stop the others: matches of healthy roots
// still reach listeners, but the failures of all roots are returned together, with no results.
// Listeners always get End last.
func (q *Query) FindEntries(ctx context.Context, ls ...Listener) ([]*fs.Entry, error) {
	notify := listeners(ls)
	defer notify.end()
	roots, matcher, w, err := q.prepare()
	if err != nil {
		notify.error(err)
		return nil, err
	}
	results := make([]rootResult, len(roots))
	done := make([]chan struct{}, len(roots))
	for i, root := range roots {
		done[i] = make(chan struct{})
		go func() {
			defer close(done[i])
			entry, rootErr := q.rootEntry(root)
			if rootErr != nil {
				results[i].err = errors.Wrapf(rootErr, "couldn't search %s", root)
				return
			}
			found, walkErr := w.Walk(ctx, entry, matcher)
			if walkErr != nil {
				results[i].err = errors.Wrapf(walkErr, "couldn't search %s", root)
				return
			}
			results[i].entries = found
		}()
	}
	var all []*fs.Entry
	var failures *multierror.Error
	for i := range roots {
		<-done[i]
		if results[i].err != nil {
			failures = multierror.Append(failures, results[i].err)
			continue
		}
		for _, e := range results[i].entries {
			notify.match(e.Path())
		}
		all = append(all, results[i].entries...)
	}
	if err := failures.ErrorOrNil(); err != nil {
		notify.error(err)
		return nil, err
	}
	return all, nil
}

// Find is FindEntries returning paths
func (q *Query) Find(ctx context.Context, ls ...Listener) ([]string, error) {
	entries, err := q.FindEntries(ctx, ls...)
	if err != nil {
		return nil, err
	}
	return pathsOf(entries), nil
}

// Any runs queries concurrently and concatenates their results in argument order.
// It fails if any query fails.
func Any(ctx context.Context, queries ...*Query) ([]string, error) {
	results := make([][]string, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		g.Go(func() error {
			found, err := q.Find(gctx)
			results[i] = found
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var all []string
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

func pathsOf(entries []*fs.Entry) []string {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path())
	}
	return paths
}
