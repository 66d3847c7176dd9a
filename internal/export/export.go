// Package export writes a fetched simulation snapshot to disk. Nothing is
// written unless the user asks for it.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/ksdash/internal/render"
)

var ErrUnsupportedFormat = errors.New("export: unsupported format")

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatSVG  = "svg"

	svgCols  = 80
	svgRows  = 30
	svgScale = 4.0
)

// Snapshot is one fetched result plus where it came from.
type Snapshot struct {
	Endpoint  string        `json:"endpoint"`
	RequestID string        `json:"request_id,omitempty"`
	FetchedAt time.Time     `json:"fetched_at"`
	Steps     int           `json:"steps"`
	Field     *render.Field `json:"field"`
}

func NewSnapshot(endpoint, requestID string, fetchedAt time.Time, f *render.Field) *Snapshot {
	return &Snapshot{
		Endpoint:  endpoint,
		RequestID: requestID,
		FetchedAt: fetchedAt,
		Steps:     f.Frames(),
		Field:     f,
	}
}

// FormatFor picks the output format from a file extension.
func FormatFor(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case FormatJSON, FormatCSV, FormatSVG:
		return ext, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// ToFile writes snap to path in the format implied by its extension.
func ToFile(path string, snap *Snapshot) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return Write(file, format, snap)
}

func Write(w io.Writer, format string, snap *Snapshot) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, snap)
	case FormatCSV:
		return WriteCSV(w, snap.Field)
	case FormatSVG:
		last := snap.Field.Frames() - 1
		_, err := io.WriteString(w, SurfaceSVG(render.Snapshot(snap.Field, last, svgCols, svgRows), svgScale, "#00a8cc"))
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func WriteJSON(w io.Writer, snap *Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snap)
}

// WriteCSV writes the field in long form, one row per (t, x) sample.
func WriteCSV(w io.Writer, f *render.Field) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"t", "x", "u"}); err != nil {
		return err
	}
	for k, t := range f.T {
		ts := strconv.FormatFloat(t, 'g', -1, 64)
		for i, x := range f.X {
			row := []string{
				ts,
				strconv.FormatFloat(x, 'g', -1, 64),
				strconv.FormatFloat(f.U[k][i], 'g', -1, 64),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
