package properties_pairs

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/kolide/propkit/pkg/dataflatten"
	"github.com/kolide/propkit/pkg/osquery/tables/tablehelpers"
	"github.com/osquery/osquery-go/plugin/table"
	"github.com/pkg/errors"
	"go.opencensus.io/trace"
)

const tableName = "kolide_properties_pairs"

// Table returns a row per pair of a properties file, in file order. Unlike
// kolide_properties, nothing is collapsed, so duplicate keys and their
// order survive.
type Table struct {
	logger log.Logger
}

func TablePlugin(logger log.Logger) *table.Plugin {
	columns := []table.ColumnDefinition{
		table.TextColumn("path"),
		table.IntegerColumn("idx"),
		table.TextColumn("key"),
		table.TextColumn("value"),
	}

	t := &Table{
		logger: log.With(logger, "table", tableName),
	}

	return table.NewPlugin(tableName, columns, t.generate)
}

func (t *Table) generate(ctx context.Context, queryContext table.QueryContext) ([]map[string]string, error) {
	_, span := trace.StartSpan(ctx, "properties_pairs.generate")
	defer span.End()

	var results []map[string]string

	requestedPaths := tablehelpers.GetConstraints(queryContext, "path")
	if len(requestedPaths) == 0 {
		return results, errors.Errorf("The %s table requires that you specify a constraint for path", tableName)
	}

	wantedKeys := make(map[string]struct{})
	for _, key := range tablehelpers.GetConstraints(queryContext, "key") {
		wantedKeys[key] = struct{}{}
	}

	for _, requestedPath := range requestedPaths {
		filePaths, err := filepath.Glob(strings.ReplaceAll(requestedPath, `%`, `*`))
		if err != nil {
			return results, errors.Wrap(err, "bad glob")
		}

		for _, filePath := range filePaths {
			props, err := dataflatten.LoadPropertiesFile(filePath, t.logger)
			if err != nil {
				level.Info(t.logger).Log(
					"msg", "failed to load properties file",
					"path", filePath,
					"err", err,
				)
				continue
			}

			for idx, pair := range props.KeyValues() {
				if len(wantedKeys) > 0 {
					if _, ok := wantedKeys[pair.Key]; !ok {
						continue
					}
				}

				results = append(results, map[string]string{
					"path":  filePath,
					"idx":   strconv.Itoa(idx),
					"key":   pair.Key,
					"value": pair.Value,
				})
			}
		}
	}

	span.AddAttributes(trace.Int64Attribute("rows", int64(len(results))))

	return results, nil
}
