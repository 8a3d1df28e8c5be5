// Package config reads saved searches: YAML files describing a query.
package config

import (
	"fmt"
	"os"

	"github.com/m-manu/filehound/filesutil"
	"github.com/m-manu/filehound/service"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// QueryConfig is a saved search. Zero values leave the query as it is.
type QueryConfig struct {
	// Paths are the search roots, local or [user@]host:[port:]path
	Paths []string `yaml:"paths"`

	Ext     []string `yaml:"ext"`
	Glob    string   `yaml:"glob"`
	Like    string   `yaml:"like"`
	Discard []string `yaml:"discard"`

	// DiscardFrom is a file of newline separated patterns to discard
	DiscardFrom string `yaml:"discard_from"`

	Size     string `yaml:"size"`
	Empty    bool   `yaml:"empty"`
	Modified string `yaml:"modified"`
	Accessed string `yaml:"accessed"`
	Changed  string `yaml:"changed"`
	Socket   bool   `yaml:"socket"`

	// Directories reports directories instead of files
	Directories bool `yaml:"directories"`

	IgnoreHiddenFiles       bool `yaml:"ignore_hidden_files"`
	IgnoreHiddenDirectories bool `yaml:"ignore_hidden_directories"`

	// Depth bounds descent below each root; nil means unbounded
	Depth *int `yaml:"depth"`

	// Not negates all the filters above
	Not bool `yaml:"not"`

	Parallelism int    `yaml:"parallelism"`
	SSHKey      string `yaml:"ssh_key"`
}

// Load reads a saved search. "~" in the file path and in paths inside it is expanded.
func Load(path string) (*QueryConfig, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't expand path %s: %+v", path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg QueryConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.DiscardFrom != "" {
		if cfg.DiscardFrom, err = homedir.Expand(cfg.DiscardFrom); err != nil {
			return nil, fmt.Errorf("couldn't expand path %s: %+v", cfg.DiscardFrom, err)
		}
	}
	if cfg.SSHKey != "" {
		if cfg.SSHKey, err = homedir.Expand(cfg.SSHKey); err != nil {
			return nil, fmt.Errorf("couldn't expand path %s: %+v", cfg.SSHKey, err)
		}
	}
	return &cfg, nil
}

// Apply adds the filters and options of the saved search to q. Paths aren't applied,
// since remote paths need a file system chosen by the caller.
func (c *QueryConfig) Apply(q *service.Query) (*service.Query, error) {
	if len(c.Ext) > 0 {
		q.Ext(c.Ext...)
	}
	if c.Glob != "" {
		q.Glob(c.Glob)
	}
	if c.Like != "" {
		q.Like(c.Like)
	}
	discard := append([]string(nil), c.Discard...)
	if c.DiscardFrom != "" {
		if !filesutil.IsReadableFile(c.DiscardFrom) {
			return nil, fmt.Errorf("discard file %s isn't readable", c.DiscardFrom)
		}
		patterns, err := filesutil.ReadLines(c.DiscardFrom)
		if err != nil {
			return nil, err
		}
		discard = append(discard, patterns...)
	}
	if len(discard) > 0 {
		q.Discard(discard...)
	}
	if c.Size != "" {
		q.Size(c.Size)
	}
	if c.Empty {
		q.IsEmpty()
	}
	if c.Modified != "" {
		q.Modified(c.Modified)
	}
	if c.Accessed != "" {
		q.Accessed(c.Accessed)
	}
	if c.Changed != "" {
		q.Changed(c.Changed)
	}
	if c.Socket {
		q.Socket()
	}
	if c.Directories {
		q.Directory()
	}
	if c.IgnoreHiddenFiles {
		q.IgnoreHiddenFiles()
	}
	if c.IgnoreHiddenDirectories {
		q.IgnoreHiddenDirectories()
	}
	if c.Depth != nil {
		q.Depth(*c.Depth)
	}
	if c.Not {
		q.Not()
	}
	if c.Parallelism > 0 {
		q.Parallelism(c.Parallelism)
	}
	return q, q.Err()
}
