package dataset

import (
	"encoding/csv"
	"math"
	"os"
	"strings"

	"SignalRun/pkg/errs"
	"SignalRun/pkg/util"
)

// Load reads a CSV file with a header row into a Dataset. Column order and
// row order are preserved; each column is type-inferred from its cells.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.NotFoundError("Input CSV file not found").WithError(err)
		}
		return nil, errs.ValueError("Invalid CSV file format").WithError(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errs.ValueError("Invalid CSV file format").WithError(err)
	}
	if len(records) <= 1 {
		return nil, errs.ValueError("Input CSV file is empty")
	}

	header := records[0]
	rows := records[1:]

	d := New(len(rows))
	for col, name := range header {
		cells := make([]string, len(rows))
		for i, row := range rows {
			cells[i] = row[col]
		}
		d.AttachStrings(name, cells)
	}

	if _, ok := d.Column("close"); !ok {
		return nil, errs.ValueError("Missing required column: close")
	}

	return d, nil
}

func parseCell(s string) (float64, bool) {
	if strings.TrimSpace(s) == "" {
		return math.NaN(), true
	}
	return util.ParseFloat(s)
}
