package dataflattentable

import (
	"github.com/kolide/propkit/pkg/dataflatten"
	"github.com/osquery/osquery-go/plugin/table"
)

// Columns returns the standard data flattening columns, after any table
// specific ones.
func Columns(columns ...table.ColumnDefinition) []table.ColumnDefinition {
	return append(columns,
		table.TextColumn("fullkey"),
		table.TextColumn("parent"),
		table.TextColumn("key"),
		table.TextColumn("value"),
		table.TextColumn("query"),
	)
}

// ToMap converts flattened rows into osquery results, adding rowData to
// each one.
func ToMap(rows []dataflatten.Row, dataQuery string, rowData map[string]string) []map[string]string {
	results := make([]map[string]string, 0, len(rows))

	for _, row := range rows {
		p, k := row.ParentKey("/")

		res := map[string]string{
			"fullkey": row.StringPath("/"),
			"parent":  p,
			"key":     k,
			"value":   row.Value,
			"query":   dataQuery,
		}

		for rk, rv := range rowData {
			res[rk] = rv
		}

		results = append(results, res)
	}

	return results
}
