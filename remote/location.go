package remote

import (
	"fmt"
	"strconv"
	"strings"
)

// Location is a search root, either a local path or [user@]host:[port:]path
type Location struct {
	IsRemote bool
	User     string // empty = current user
	Host     string
	Port     int // 0 = default (22)
	Path     string
}

// ParseLocation parses a root given on the command line.
//
// Rules:
//   - Starts with "/", "./", "../" or "~" → local
//   - A drive letter followed by ":" (as in C:\data) → local
//   - Contains ":" → remote (host:path, user@host:path or user@host:port:path)
//   - Everything else → local
func ParseLocation(arg string) (Location, error) {
	if arg == "" {
		return Location{}, fmt.Errorf("empty path argument")
	}
	if strings.HasPrefix(arg, "/") || strings.HasPrefix(arg, "./") || strings.HasPrefix(arg, "../") ||
		strings.HasPrefix(arg, "~") || isDrivePath(arg) {
		return Location{Path: arg}, nil
	}
	colonIdx := strings.Index(arg, ":")
	if colonIdx < 0 {
		return Location{Path: arg}, nil
	}

	hostPart, rest := arg[:colonIdx], arg[colonIdx+1:]
	loc := Location{IsRemote: true, Host: hostPart}
	if atIdx := strings.Index(hostPart, "@"); atIdx >= 0 {
		loc.User, loc.Host = hostPart[:atIdx], hostPart[atIdx+1:]
	}
	if loc.Host == "" {
		return Location{}, fmt.Errorf("empty host in remote path %q", arg)
	}

	// port:path
	if secondColon := strings.Index(rest, ":"); secondColon > 0 {
		if port, err := strconv.Atoi(rest[:secondColon]); err == nil && port > 0 && port <= 65535 {
			loc.Port = port
			rest = rest[secondColon+1:]
		}
	}
	if rest == "" {
		return Location{}, fmt.Errorf("empty path in remote spec %q", arg)
	}
	loc.Path = rest
	return loc, nil
}

func isDrivePath(arg string) bool {
	if len(arg) < 2 || arg[1] != ':' {
		return false
	}
	c := arg[0]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// Endpoint identifies the SSH session a remote location needs: locations sharing it
// are searched over one connection
func (l Location) Endpoint() string {
	if !l.IsRemote {
		return ""
	}
	return fmt.Sprintf("%s:%d", l.SSHSpec(), l.Port)
}

// SSHSpec returns a string like "user@host" or "host" suitable for display and ssh commands
func (l Location) SSHSpec() string {
	if l.User != "" {
		return l.User + "@" + l.Host
	}
	return l.Host
}

func (l Location) String() string {
	if !l.IsRemote {
		return l.Path
	}
	if l.Port != 0 {
		return fmt.Sprintf("%s:%d:%s", l.SSHSpec(), l.Port, l.Path)
	}
	return l.SSHSpec() + ":" + l.Path
}

// Group is a set of roots searched over the same file system
type Group struct {
	// Endpoint is empty for the local file system
	Endpoint string
	// Location holds connection details (the path is the first root's)
	Location Location
	Paths    []string
}

// GroupLocations parses roots and groups them by endpoint, in order of first appearance
func GroupLocations(args []string) ([]Group, error) {
	var groups []Group
	index := map[string]int{}
	for _, arg := range args {
		loc, err := ParseLocation(arg)
		if err != nil {
			return nil, err
		}
		i, seen := index[loc.Endpoint()]
		if !seen {
			i = len(groups)
			index[loc.Endpoint()] = i
			groups = append(groups, Group{Endpoint: loc.Endpoint(), Location: loc})
		}
		groups[i].Paths = append(groups[i].Paths, loc.Path)
	}
	return groups, nil
}
