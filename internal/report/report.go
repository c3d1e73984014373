// Package report exports the lap history of a stopwatch when a session ends.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/tsatke/stopwatch"
)

// Format selects how a report is rendered.
type Format uint8

const (
	FormatText Format = iota
	FormatCSV
	FormatJSON
)

var ErrUnknownFormat = errors.New("unknown report format")

var formatNames = map[Format]string{
	FormatText: "text",
	FormatCSV:  "csv",
	FormatJSON: "json",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// ParseFormat accepts the names returned by Format.String, case insensitive.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownFormat, "%q", s)
}

// Write renders snap in the given format and writes it to path on fs,
// replacing any existing file.
func Write(fs afero.Fs, path string, format Format, snap stopwatch.Snapshot) error {
	var buf bytes.Buffer
	if err := Render(&buf, format, snap); err != nil {
		return err
	}
	if err := afero.WriteFile(fs, path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "write report %s", path)
	}
	return nil
}

// Render writes the report for snap to w.
func Render(w io.Writer, format Format, snap stopwatch.Snapshot) error {
	switch format {
	case FormatText:
		return renderText(w, snap)
	case FormatCSV:
		return renderCSV(w, snap)
	case FormatJSON:
		return renderJSON(w, snap)
	}
	return errors.Wrapf(ErrUnknownFormat, "%s", format)
}

func renderText(w io.Writer, snap stopwatch.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, lap := range snap.History() {
		fmt.Fprintf(tw, "%s\t%s\n", lap.Label, lap.Display)
	}
	fmt.Fprintf(tw, "Total\t%s\n", snap.TotalDisplay())
	return errors.Wrap(tw.Flush(), "render text")
}

func renderCSV(w io.Writer, snap stopwatch.Snapshot) error {
	cw := csv.NewWriter(w)
	records := [][]string{{"lap", "label", "ms", "display"}}
	history := snap.History()
	for i, lap := range history {
		records = append(records, []string{
			strconv.Itoa(len(history) - i),
			lap.Label,
			strconv.FormatInt(lap.Duration.Milliseconds(), 10),
			lap.Display,
		})
	}
	return errors.Wrap(cw.WriteAll(records), "render csv")
}

type jsonReport struct {
	TotalMs int64     `json:"total_ms"`
	Total   string    `json:"total"`
	Laps    []jsonLap `json:"laps"`
}

type jsonLap struct {
	Label   string `json:"label"`
	Ms      int64  `json:"ms"`
	Display string `json:"display"`
}

func renderJSON(w io.Writer, snap stopwatch.Snapshot) error {
	r := jsonReport{
		TotalMs: snap.Total.Milliseconds(),
		Total:   snap.TotalDisplay(),
		Laps:    []jsonLap{},
	}
	for _, lap := range snap.History() {
		r.Laps = append(r.Laps, jsonLap{
			Label:   lap.Label,
			Ms:      lap.Duration.Milliseconds(),
			Display: lap.Display,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(r), "render json")
}
