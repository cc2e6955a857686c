package properties_pairs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/kolide/propkit/pkg/osquery/tables/tablehelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_generate(t *testing.T) {
	t.Parallel()

	appPath := filepath.Join("testdata", "app.properties")

	tests := []struct {
		name        string
		constraints map[string][]string
		expected    []map[string]string
		expectErr   bool
	}{
		{
			name:      "no path",
			expectErr: true,
		},
		{
			name:        "all pairs",
			constraints: map[string][]string{"path": {appPath}},
			expected: []map[string]string{
				{"path": appPath, "idx": "0", "key": "server.port", "value": "8080"},
				{"path": appPath, "idx": "1", "key": "server.host", "value": "localhost"},
				{"path": appPath, "idx": "2", "key": "server.port", "value": "9090"},
				{"path": appPath, "idx": "3", "key": "motd", "value": "Welcome,friend"},
			},
		},
		{
			name:        "key filter keeps file index",
			constraints: map[string][]string{"path": {appPath}, "key": {"server.port"}},
			expected: []map[string]string{
				{"path": appPath, "idx": "0", "key": "server.port", "value": "8080"},
				{"path": appPath, "idx": "2", "key": "server.port", "value": "9090"},
			},
		},
		{
			name:        "broken file is skipped",
			constraints: map[string][]string{"path": {filepath.Join("testdata", "broken.properties")}},
			expected:    nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tbl := &Table{logger: log.NewNopLogger()}
			results, err := tbl.generate(context.TODO(), tablehelpers.MockQueryContext(tt.constraints))
			if tt.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, results)
		})
	}
}
