// Package table flattens simulation output into rows for analysis or CSV
// export. Each row is one leaf group of one model at one recorded
// iteration; columns are the identifier and iteration, the group name path
// and the union of compartment names across the whole series.
package table

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/nathangeffen/ziggie/macro"
)

// Options controls table layout.
type Options struct {
	// Header prepends a column-name row.
	Header bool

	// ConcatNames joins the group name path into a single column using
	// this separator. When empty, each level of the deepest path gets its
	// own name_<i> column.
	ConcatNames string

	// IncludeIdent prepends an ident column, for batch output where rows
	// from several runs are concatenated.
	IncludeIdent bool
}

// Series flattens a recorded series into rows of strings. Compartments a
// leaf does not hold are left empty. Column order is deterministic:
// compartment names sort alphabetically.
func Series(series macro.ModelListSeries, opts Options) [][]string {
	depth, compartments := shape(series)

	var rows [][]string
	if opts.Header {
		rows = append(rows, header(depth, compartments, opts))
	}
	for _, snap := range series {
		for _, m := range snap.Models {
			rows = append(rows, modelRows(m, snap.Iteration, depth, compartments, opts)...)
		}
	}
	return rows
}

// shape returns the deepest name path and the sorted union of compartment
// names across every leaf in the series.
func shape(series macro.ModelListSeries) (depth int, compartments []string) {
	seen := map[string]bool{}
	for _, snap := range series {
		for _, m := range snap.Models {
			walkNamed(&m.Group, nil, func(leaf *macro.Group, path []string) {
				if len(path) > depth {
					depth = len(path)
				}
				for name := range leaf.Compartments {
					seen[name] = true
				}
			})
		}
	}
	for name := range seen {
		compartments = append(compartments, name)
	}
	sort.Strings(compartments)
	return depth, compartments
}

// walkNamed visits leaves depth-first carrying the path of non-empty group
// names from the root.
func walkNamed(g *macro.Group, path []string, fn func(*macro.Group, []string)) {
	if g.Name != "" {
		path = append(path, g.Name)
	}
	if g.IsLeaf() {
		fn(g, path)
		return
	}
	for _, child := range g.Groups {
		walkNamed(child, path, fn)
	}
}

func header(depth int, compartments []string, opts Options) []string {
	var row []string
	if opts.IncludeIdent {
		row = append(row, "ident")
	}
	row = append(row, "iter")
	if opts.ConcatNames != "" {
		row = append(row, "name")
	} else {
		for i := 0; i < depth; i++ {
			row = append(row, "name_"+strconv.Itoa(i))
		}
	}
	return append(row, compartments...)
}

func modelRows(m *macro.Model, iteration, depth int, compartments []string, opts Options) [][]string {
	var rows [][]string
	walkNamed(&m.Group, nil, func(leaf *macro.Group, path []string) {
		var row []string
		if opts.IncludeIdent {
			row = append(row, strconv.Itoa(m.Ident))
		}
		row = append(row, strconv.Itoa(iteration))
		if opts.ConcatNames != "" {
			joined := ""
			for i, name := range path {
				if i > 0 {
					joined += opts.ConcatNames
				}
				joined += name
			}
			row = append(row, joined)
		} else {
			for i := 0; i < depth; i++ {
				if i < len(path) {
					row = append(row, path[i])
				} else {
					row = append(row, "")
				}
			}
		}
		for _, name := range compartments {
			if v, ok := leaf.Compartments[name]; ok {
				row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	})
	return rows
}

// WriteCSV writes rows to w in RFC 4180 form.
func WriteCSV(w io.Writer, rows [][]string) error {
	out := csv.NewWriter(w)
	for _, row := range rows {
		if err := out.Write(row); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

// SeriesToCSV flattens the series and writes it to w.
func SeriesToCSV(w io.Writer, series macro.ModelListSeries, opts Options) error {
	return WriteCSV(w, Series(series, opts))
}

// SeriesToFile writes the series as CSV to the named file.
func SeriesToFile(path string, series macro.ModelListSeries, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := SeriesToCSV(f, series, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
