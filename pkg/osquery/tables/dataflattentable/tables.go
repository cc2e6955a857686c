package dataflattentable

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/kolide/propkit/pkg/dataflatten"
	"github.com/kolide/propkit/pkg/osquery/tables/tablehelpers"
	"github.com/osquery/osquery-go"
	"github.com/osquery/osquery-go/plugin/table"
	"github.com/pkg/errors"
	"go.opencensus.io/trace"
)

type DataSourceType int

const (
	PropertiesType DataSourceType = iota + 1
	JsonType
	XmlType
	IniType
	PlistType
)

type Table struct {
	logger    log.Logger
	tableName string

	dataFunc dataflatten.DataFileFunc

	// flattenOpts are added to every query, ahead of the per query ones.
	flattenOpts []dataflatten.FlattenOpts
}

// AllTablePlugins is a helper to return all the expected flattening tables.
func AllTablePlugins(logger log.Logger) []osquery.OsqueryPlugin {
	return []osquery.OsqueryPlugin{
		TablePlugin(logger, PropertiesType),
		TablePlugin(logger, JsonType),
		TablePlugin(logger, XmlType),
		TablePlugin(logger, IniType),
		TablePlugin(logger, PlistType),
	}
}

func TablePlugin(logger log.Logger, dataSourceType DataSourceType) *table.Plugin {
	columns := Columns(table.TextColumn("path"))

	t := newTable(logger, dataSourceType)

	return table.NewPlugin(t.tableName, columns, t.generate)
}

func newTable(logger log.Logger, dataSourceType DataSourceType) *Table {
	t := &Table{}

	switch dataSourceType {
	case PropertiesType:
		t.dataFunc = dataflatten.PropertiesFile
		t.tableName = "kolide_properties"
		// dotted keys become paths, so parent and key mean something
		t.flattenOpts = []dataflatten.FlattenOpts{dataflatten.WithNestedKeys(".")}
	case JsonType:
		t.dataFunc = dataflatten.JsonFile
		t.tableName = "kolide_json"
	case XmlType:
		t.dataFunc = dataflatten.XmlFile
		t.tableName = "kolide_xml"
	case IniType:
		t.dataFunc = dataflatten.IniFile
		t.tableName = "kolide_ini"
	case PlistType:
		t.dataFunc = dataflatten.PlistFile
		t.tableName = "kolide_plist"
	default:
		panic("Unknown data source type")
	}

	t.logger = level.NewFilter(log.With(logger, "table", t.tableName), level.AllowInfo())

	return t
}

func (t *Table) generate(ctx context.Context, queryContext table.QueryContext) ([]map[string]string, error) {
	ctx, span := trace.StartSpan(ctx, "dataflattentable."+t.tableName)
	defer span.End()

	var results []map[string]string

	requestedPaths := tablehelpers.GetConstraints(queryContext, "path")
	if len(requestedPaths) == 0 {
		return results, errors.Errorf("The %s table requires that you specify a constraint for path", t.tableName)
	}

	for _, requestedPath := range requestedPaths {

		// We take globs in via the sql %, but glob needs *. So convert.
		filePaths, err := filepath.Glob(strings.ReplaceAll(requestedPath, `%`, `*`))
		if err != nil {
			return results, errors.Wrap(err, "bad glob")
		}

		for _, filePath := range filePaths {
			for _, dataQuery := range tablehelpers.GetConstraints(queryContext, "query", tablehelpers.WithDefaults("*")) {
				subresults, err := t.generatePath(ctx, filePath, dataQuery)
				if err != nil {
					level.Info(t.logger).Log(
						"msg", "failed to get data for path",
						"path", filePath,
						"err", err,
					)
					continue
				}

				results = append(results, subresults...)
			}
		}
	}

	return results, nil
}

func (t *Table) generatePath(ctx context.Context, filePath string, dataQuery string) ([]map[string]string, error) {
	_, span := trace.StartSpan(ctx, "dataflattentable.generatePath")
	defer span.End()
	span.AddAttributes(trace.StringAttribute("path", filePath))

	flattenOpts := append([]dataflatten.FlattenOpts{}, t.flattenOpts...)
	flattenOpts = append(flattenOpts,
		dataflatten.WithLogger(t.logger),
		dataflatten.WithQuery(strings.Split(dataQuery, "/")),
	)

	data, err := t.dataFunc(filePath, flattenOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "parsing data")
	}

	rowData := map[string]string{
		"path": filePath,
	}

	return ToMap(data, dataQuery, rowData), nil
}
