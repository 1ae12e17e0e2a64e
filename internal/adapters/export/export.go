// Package export renders result entries as CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/okian/tunify/internal/domain/types"
)

// Header is the first CSV row.
var Header = []string{"track_name", "artist_name", "genre", "popularity"}

// WriteCSV writes a header and one row per entry to w. Popularity is
// formatted without trailing zeros.
func WriteCSV(w io.Writer, entries []types.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, e := range entries {
		rec := []string{
			e.TrackName,
			e.ArtistName,
			e.Genre,
			strconv.FormatFloat(e.Popularity, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// CSV renders entries to a UTF-8 byte slice.
func CSV(entries []types.Entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
