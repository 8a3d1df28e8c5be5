package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/m-manu/filehound/config"
	"github.com/m-manu/filehound/entity"
	"github.com/m-manu/filehound/fmte"
	"github.com/m-manu/filehound/fs"
	"github.com/m-manu/filehound/remote"
	"github.com/m-manu/filehound/service"
	"github.com/olekukonko/tablewriter"
)

type outputMode int

const (
	outputPlain outputMode = iota
	outputLong
	outputCSV
	outputCount
)

// search is one run of the command: roots grouped per file system, each group
// searched with the same filters
type search struct {
	cfg    *config.QueryConfig
	roots  []string
	sync   bool
	output outputMode
	sshKey string
	out    io.Writer
}

func (s search) run(ctx context.Context) error {
	groups, err := remote.GroupLocations(s.roots)
	if err != nil {
		return &exitError{exitCodeInvalidArgs, err}
	}
	if len(groups) == 0 {
		// current directory
		groups = []remote.Group{{}}
	}
	start := time.Now()
	var all []*fs.Entry
	for _, g := range groups {
		found, searchErr := s.searchGroup(ctx, g)
		if searchErr != nil {
			return searchErr
		}
		all = append(all, found...)
	}
	fmte.PrintfV("Found %d matches in %.1f seconds\n", len(all), time.Since(start).Seconds())
	if err := s.render(all); err != nil {
		return &exitError{exitCodeOutputError, err}
	}
	return nil
}

func (s search) searchGroup(ctx context.Context, g remote.Group) ([]*fs.Entry, error) {
	q := service.NewQuery()
	if g.Location.IsRemote {
		if err := remote.Probe(ctx, g.Location, s.sshKey); err != nil {
			return nil, &exitError{exitCodeRemoteError, err}
		}
		session, err := remote.Dial(g.Location, s.sshKey)
		if err != nil {
			return nil, &exitError{exitCodeRemoteError, err}
		}
		defer func() {
			_ = session.Close()
		}()
		q.WithFileSystem(session)
	}
	if len(g.Paths) > 0 {
		q.Paths(g.Paths...)
	}
	if _, err := s.cfg.Apply(q); err != nil {
		return nil, &exitError{exitCodeInvalidQuery, err}
	}
	where := strings.Join(q.SearchPaths(), ", ")
	if g.Location.IsRemote {
		where = g.Location.SSHSpec() + ":" + where
	}
	fmte.PrintfV("Searching %s\n", where)

	var found []*fs.Entry
	var err error
	if s.sync {
		found, err = q.FindEntriesSync()
	} else {
		found, err = q.FindEntries(ctx, s.listeners()...)
	}
	if err != nil {
		fmte.PrintfWarn("Search of %s failed\n", where)
		return nil, &exitError{exitCodeSearchError, err}
	}
	return found, nil
}

// listeners stream plain output as roots complete, instead of waiting for all groups
func (s search) listeners() []service.Listener {
	if s.output != outputPlain {
		return nil
	}
	return []service.Listener{service.ListenerFuncs{
		OnMatch: func(path string) {
			fmte.PrintMatch(path, s.cfg.Directories)
		},
	}}
}

func (s search) render(entries []*fs.Entry) error {
	switch s.output {
	case outputLong:
		renderTable(s.out, entries)
	case outputCSV:
		return service.WriteCSV(s.out, entries)
	case outputCount:
		renderCount(s.out, entries)
	default:
		if s.sync {
			for _, e := range entries {
				fmte.PrintMatch(e.Path(), e.IsDirectory())
			}
		}
	}
	return nil
}

func renderTable(w io.Writer, entries []*fs.Entry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Path", "Size", "Modified"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})
	for _, e := range entries {
		m := entity.MatchOf(e)
		size := units.BytesSize(float64(m.Size))
		if m.IsDir {
			size = "-"
		}
		table.Append([]string{m.Path, size, time.Unix(m.ModifiedTimestamp, 0).Format("2006-01-02 15:04")})
	}
	table.Render()
}

func renderCount(w io.Writer, entries []*fs.Entry) {
	summary := entity.NewSummary()
	for _, e := range entries {
		summary.Add(entity.MatchOf(e))
	}
	_, _ = fmt.Fprintln(w, fmte.Sprintf("%d matches, %s in total", summary.Count, units.BytesSize(float64(summary.TotalSize))))
	for _, ext := range summary.Extensions() {
		label := "." + ext
		if ext == "" {
			label = "(no extension)"
		}
		_, _ = fmt.Fprintln(w, fmte.Sprintf("%8d  %s", summary.ByExtension[ext], label))
	}
}
