package service

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/m-manu/filehound/entity"
	"github.com/m-manu/filehound/fs"
)

// WriteCSV writes a path,size,modified row per entry
func WriteCSV(w io.Writer, entries []*fs.Entry) error {
	cw := csv.NewWriter(w)
	for _, e := range entries {
		record := entity.MatchOf(e).Record()
		wErr := cw.Write(record)
		if wErr != nil {
			return fmt.Errorf("error while writing record %+v: %+v", record, wErr)
		}
	}
	cw.Flush()
	return cw.Error()
}
