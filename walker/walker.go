// Package walker traverses one search root depth first, deciding where to descend
// and collecting the entries a matcher accepts.
//
// Both WalkSync and Walk visit children in name order and return results in that
// order, so for the same tree and options they return the same sequence.
package walker

import (
	"context"
	"runtime"

	"github.com/m-manu/filehound/fs"
	"github.com/m-manu/filehound/match"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Options control descent and reporting
type Options struct {
	// MaxDepth bounds descent below the root, when HasMaxDepth is set
	MaxDepth    int
	HasMaxDepth bool
	// DirectoriesOnly reports directories (other than the root) instead of files
	DirectoriesOnly bool
	// IgnoreHiddenDirectories skips descending into directories whose name starts with a dot
	IgnoreHiddenDirectories bool
	// Parallelism bounds concurrent file system calls of Walk. Zero means runtime.NumCPU().
	// It doesn't bound goroutines: Walk keeps one per pending subdirectory, most of them
	// parked on the semaphore, so memory grows with the width of the tree.
	Parallelism int
}

// Walker walks roots with fixed options. A Walker may walk several roots concurrently;
// they share its bound on file system calls.
type Walker struct {
	opts Options
	sem  *semaphore.Weighted
}

// New creates a Walker
func New(opts Options) *Walker {
	if opts.Parallelism <= 0 {
		opts.Parallelism = runtime.NumCPU()
	}
	return &Walker{
		opts: opts,
		sem:  semaphore.NewWeighted(int64(opts.Parallelism)),
	}
}

// Options returns the options in effect
func (w *Walker) Options() Options {
	return w.opts
}

type walk struct {
	root     *fs.Entry
	matcher  *match.Predicate
	dirsOnly bool
}

func (w *Walker) newWalk(root *fs.Entry, matcher *match.Predicate) walk {
	return walk{
		root:     root,
		matcher:  matcher,
		dirsOnly: w.opts.DirectoriesOnly || matcher.Target() == match.Directory,
	}
}

// pruned tells whether descent into directory dir stops. A pruned directory is never reported.
func (w *Walker) pruned(v walk, dir *fs.Entry) bool {
	if w.opts.HasMaxDepth && dir.DepthRelativeTo(v.root.Depth()) > w.opts.MaxDepth {
		logrus.WithField("path", dir.Path()).Debug("pruned: beyond maximum depth")
		return true
	}
	if w.opts.IgnoreHiddenDirectories && dir.IsHidden() {
		logrus.WithField("path", dir.Path()).Debug("pruned: hidden directory")
		return true
	}
	return false
}

// reports tells whether e is a candidate of this walk and the matcher accepts it
func (v walk) reports(e *fs.Entry) bool {
	if v.dirsOnly {
		return e.IsDirectory() && e != v.root && v.matcher.Test(e)
	}
	return !e.IsDirectory() && v.matcher.Test(e)
}

// WalkSync walks root sequentially and stops at the first failure, returning no results
func (w *Walker) WalkSync(root *fs.Entry, matcher *match.Predicate) ([]*fs.Entry, error) {
	v := w.newWalk(root, matcher)
	var found []*fs.Entry
	if err := w.searchSync(v, root, &found); err != nil {
		logrus.WithField("root", root.Path()).Debugf("walk failed: %v", err)
		return nil, err
	}
	return found, nil
}

func (w *Walker) searchSync(v walk, e *fs.Entry, found *[]*fs.Entry) error {
	if e.IsDirectory() && w.pruned(v, e) {
		return nil
	}
	if v.reports(e) {
		*found = append(*found, e)
	}
	children, err := e.Children()
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := w.searchSync(v, child, found); err != nil {
			return err
		}
	}
	return nil
}

// Walk walks root with subdirectories explored concurrently. Each subdirectory fills its
// own slot, so the result has the same order as WalkSync's. The first failure cancels the
// rest of this walk and is returned with no results.
func (w *Walker) Walk(ctx context.Context, root *fs.Entry, matcher *match.Predicate) ([]*fs.Entry, error) {
	v := w.newWalk(root, matcher)
	found, err := w.search(ctx, v, root)
	if err != nil {
		logrus.WithField("root", root.Path()).Debugf("walk failed: %v", err)
		return nil, err
	}
	return found, nil
}

func (w *Walker) search(ctx context.Context, v walk, e *fs.Entry) ([]*fs.Entry, error) {
	if !e.IsDirectory() {
		if v.reports(e) {
			return []*fs.Entry{e}, nil
		}
		return nil, nil
	}
	if w.pruned(v, e) {
		return nil, nil
	}
	var found []*fs.Entry
	if v.reports(e) {
		found = append(found, e)
	}
	children, err := w.children(ctx, e)
	if err != nil {
		return nil, err
	}
	slots := make([][]*fs.Entry, len(children))
	g, gctx := errgroup.WithContext(ctx)
	for i, child := range children {
		if !child.IsDirectory() {
			if v.reports(child) {
				slots[i] = []*fs.Entry{child}
			}
			continue
		}
		g.Go(func() error {
			subtree, searchErr := w.search(gctx, v, child)
			slots[i] = subtree
			return searchErr
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, slot := range slots {
		found = append(found, slot...)
	}
	return found, nil
}

func (w *Walker) children(ctx context.Context, dir *fs.Entry) ([]*fs.Entry, error) {
	if err := w.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer w.sem.Release(1)
	return dir.Children()
}
