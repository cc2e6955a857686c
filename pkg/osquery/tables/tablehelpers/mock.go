package tablehelpers

import "github.com/osquery/osquery-go/plugin/table"

// MockQueryContext builds a QueryContext of equality constraints, for
// testing table generate functions.
func MockQueryContext(constraints map[string][]string) table.QueryContext {
	queryContext := table.QueryContext{
		Constraints: make(map[string]table.ConstraintList, len(constraints)),
	}

	for columnName, expressions := range constraints {
		constraintList := table.ConstraintList{
			Affinity: table.ColumnTypeText,
		}

		for _, expression := range expressions {
			constraintList.Constraints = append(constraintList.Constraints, table.Constraint{
				Operator:   table.OperatorEquals,
				Expression: expression,
			})
		}

		queryContext.Constraints[columnName] = constraintList
	}

	return queryContext
}
