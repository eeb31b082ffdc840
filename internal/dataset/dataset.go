package dataset

import "math"

// Column is one named series of the Dataset. Cells are kept as raw strings;
// columns whose every non-empty cell parses as a number also carry a float
// view, with NaN marking blank cells. Derived columns are float-only.
type Column struct {
	Name    string
	Numeric bool
	Floats  []float64
	Strings []string
}

// Dataset is an ordered collection of equally sized columns. Row order is
// time order and is preserved through all transforms.
type Dataset struct {
	columns []*Column
	byName  map[string]*Column
	rows    int
}

// New creates an empty dataset with the given row count.
func New(rows int) *Dataset {
	return &Dataset{byName: make(map[string]*Column), rows: rows}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return d.rows
}

// ColumnNames returns column names in original order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, 0, len(d.columns))
	for _, c := range d.columns {
		names = append(names, c.Name)
	}
	return names
}

// Column returns the named column, if present.
func (d *Dataset) Column(name string) (*Column, bool) {
	c, ok := d.byName[name]
	return c, ok
}

func (d *Dataset) add(c *Column) {
	if existing, ok := d.byName[c.Name]; ok {
		*existing = *c
		return
	}
	d.columns = append(d.columns, c)
	d.byName[c.Name] = c
}

// AttachStrings adds a raw column, inferring a float view when every
// non-empty cell parses.
func (d *Dataset) AttachStrings(name string, cells []string) {
	c := &Column{Name: name, Strings: cells}
	floats := make([]float64, len(cells))
	numeric := false
	for i, cell := range cells {
		v, ok := parseCell(cell)
		if !ok {
			numeric = false
			break
		}
		floats[i] = v
		if !math.IsNaN(v) {
			numeric = true
		}
	}
	if numeric {
		c.Numeric = true
		c.Floats = floats
	}
	d.add(c)
}

// AttachFloats adds (or replaces) a derived float column.
func (d *Dataset) AttachFloats(name string, values []float64) {
	d.add(&Column{Name: name, Numeric: true, Floats: values})
}
