// Package profile inspects a raw CSV before cleaning and reports its shape:
// row and column counts, the inferred type of each column, and how many
// values are missing. The result is logged at the start of a pipeline run.
package profile

import (
	"io"
	"log/slog"
	"os"

	"github.com/go-gota/gota/dataframe"

	"opsreport/internal/errors"
)

// ColumnProfile describes one column of the raw dataset
type ColumnProfile struct {
	Name    string
	Type    string
	Missing int
}

// Profile describes the shape of a raw dataset
type Profile struct {
	Rows    int
	Columns []ColumnProfile
}

// FromCSV profiles a CSV document
func FromCSV(r io.Reader) (*Profile, error) {
	df := dataframe.ReadCSV(r, dataframe.HasHeader(true))
	if df.Err != nil {
		return nil, errors.NewParsingError("failed to profile CSV input", df.Err)
	}

	p := &Profile{
		Rows:    df.Nrow(),
		Columns: make([]ColumnProfile, 0, df.Ncol()),
	}

	for _, name := range df.Names() {
		col := df.Col(name)
		missing := 0
		for _, rec := range col.Records() {
			if rec == "" || rec == "NaN" {
				missing++
			}
		}
		p.Columns = append(p.Columns, ColumnProfile{
			Name:    name,
			Type:    string(col.Type()),
			Missing: missing,
		})
	}

	return p, nil
}

// FromFile profiles a CSV file on disk
func FromFile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open file for profiling", err)
	}
	defer f.Close()
	return FromCSV(f)
}

// MissingTotal returns the number of missing values across all columns
func (p *Profile) MissingTotal() int {
	total := 0
	for _, c := range p.Columns {
		total += c.Missing
	}
	return total
}

// Log writes the profile to the logger at info level
func (p *Profile) Log(logger *slog.Logger) {
	logger.Info("dataset profile",
		slog.Int("rows", p.Rows),
		slog.Int("columns", len(p.Columns)),
		slog.Int("missing_values", p.MissingTotal()))
	for _, c := range p.Columns {
		logger.Debug("column profile",
			slog.String("column", c.Name),
			slog.String("type", c.Type),
			slog.Int("missing", c.Missing))
	}
}
