package entity

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m-manu/filehound/fs"
)

// Match is what gets reported about a matching entry
type Match struct {
	Path              string
	Size              int64
	ModifiedTimestamp int64
	IsDir             bool
	Extension         string
}

// MatchOf snapshots an entry
func MatchOf(e *fs.Entry) Match {
	return Match{
		Path:              e.Path(),
		Size:              e.Size(),
		ModifiedTimestamp: e.ModTime().Unix(),
		IsDir:             e.IsDirectory(),
		Extension:         e.Extension(),
	}
}

// Record is the CSV row: path, size, modification time (unix seconds)
func (m Match) Record() []string {
	return []string{m.Path, strconv.FormatInt(m.Size, 10), strconv.FormatInt(m.ModifiedTimestamp, 10)}
}

func (m Match) String() string {
	return fmt.Sprintf("{path: %s, size: %d, modified: %v}", m.Path, m.Size, time.Unix(m.ModifiedTimestamp, 0))
}
