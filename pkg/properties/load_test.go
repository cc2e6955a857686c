package properties

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name     string
		in       string
		expected []Pair
	}{
		{
			name:     "equals",
			in:       "name=value",
			expected: []Pair{{"name", "value"}},
		},
		{
			name:     "colon",
			in:       "name:value",
			expected: []Pair{{"name", "value"}},
		},
		{
			name:     "first separator wins",
			in:       "a:b=c",
			expected: []Pair{{"a", "b=c"}},
		},
		{
			name:     "blank lines",
			in:       "\nname=value\n\n",
			expected: []Pair{{"name", "value"}},
		},
		{
			name:     "hash comment",
			in:       "# comment\nname=value",
			expected: []Pair{{"name", "value"}},
		},
		{
			name:     "bang comment",
			in:       "! comment\nname=value",
			expected: []Pair{{"name", "value"}},
		},
		{
			name:     "trailing comment",
			in:       "url=http://example.com/#frag\nwarn=careful! really",
			expected: []Pair{{"url", "http://example.com/"}, {"warn", "careful"}},
		},
		{
			name:     "whitespace",
			in:       "  name  \t  =    value  \t  ",
			expected: []Pair{{"name", "value"}},
		},
		{
			name:     "empty value",
			in:       "name=",
			expected: []Pair{{"name", ""}},
		},
		{
			name:     "empty key",
			in:       "=value",
			expected: []Pair{{"", "value"}},
		},
		{
			name:     "continuation",
			in:       "key=\\\nline2,\\\n  line3\n",
			expected: []Pair{{"key", "line2,line3"}},
		},
		{
			name:     "continuation on first line",
			in:       "key = one \\\n   two\nnext=3",
			expected: []Pair{{"key", "one two"}, {"next", "3"}},
		},
		{
			name:     "only the opening segment keeps inner whitespace",
			in:       "key=a \\\nb \\\nc",
			expected: []Pair{{"key", "a bc"}},
		},
		{
			name:     "comment inside continuation",
			in:       "key=a\\\n  b # not part of it\nnext=c",
			expected: []Pair{{"key", "ab"}, {"next", "c"}},
		},
		{
			name:     "continued segments are not decoded",
			in:       "key=a\\\n\\t",
			expected: []Pair{{"key", "a\\t"}},
		},
		{
			name:     "continuation open at end of input",
			in:       "key=a\\\n  b\\",
			expected: []Pair{{"key", "ab"}},
		},
		{
			name:     "even backslashes do not continue",
			in:       "path=c:\\\\\nnext=1",
			expected: []Pair{{"path", "c:\\"}, {"next", "1"}},
		},
		{
			name:     "control escapes",
			in:       "name=hello\\tworld\\r\\nhow are you?",
			expected: []Pair{{"name", "hello\tworld\r\nhow are you?"}},
		},
		{
			name:     "unicode escape",
			in:       "name=hello\\u002c world",
			expected: []Pair{{"name", "hello, world"}},
		},
		{
			name:     "multibyte unicode escapes",
			in:       "two=caf\\u00e9\nthree=\\u20AC5",
			expected: []Pair{{"two", "café"}, {"three", "€5"}},
		},
		{
			name:     "raw utf-8",
			in:       "grüße=日本語",
			expected: []Pair{{"grüße", "日本語"}},
		},
		{
			name:     "carriage return line endings",
			in:       "a=1\rb=2\r\nc=3",
			expected: []Pair{{"a", "1"}, {"b", "2"}, {"c", "3"}},
		},
		{
			name:     "duplicates kept in order",
			in:       "a=1\nb=2\na=3",
			expected: []Pair{{"a", "1"}, {"b", "2"}, {"a", "3"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			props, err := Load([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, props.Pairs())
		})
	}
}

func TestLoad_Empty(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "\n\n", "# only a comment", "\r\n"} {
		props, err := Load([]byte(in))
		require.NoError(t, err, in)
		assert.True(t, props.IsEmpty(), in)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name    string
		in      string
		checkFn func(t *testing.T, err error)
	}{
		{
			name: "no separator",
			in:   "noseparatorhere",
			checkFn: func(t *testing.T, err error) {
				var malformed *MalformedLineError
				require.True(t, errors.As(err, &malformed))
				assert.Equal(t, 1, malformed.Line)
				assert.Equal(t, "noseparatorhere", malformed.Text)
			},
		},
		{
			name: "line numbers count blank lines",
			in:   "a=1\r\n\nbad line",
			checkFn: func(t *testing.T, err error) {
				var malformed *MalformedLineError
				require.True(t, errors.As(err, &malformed))
				assert.Equal(t, 4, malformed.Line)
				assert.Equal(t, "bad line", malformed.Text)
			},
		},
		{
			name: "whitespace only line",
			in:   "a=1\n   \nb=2",
			checkFn: func(t *testing.T, err error) {
				var malformed *MalformedLineError
				require.True(t, errors.As(err, &malformed))
				assert.Equal(t, 2, malformed.Line)
				assert.Equal(t, "   ", malformed.Text)
			},
		},
		{
			name: "indented comment",
			in:   "   # comment\nname=value",
			checkFn: func(t *testing.T, err error) {
				var malformed *MalformedLineError
				require.True(t, errors.As(err, &malformed))
				assert.Equal(t, 1, malformed.Line)
			},
		},
		{
			name: "tabs only",
			in:   "  \t  ",
			checkFn: func(t *testing.T, err error) {
				var malformed *MalformedLineError
				require.True(t, errors.As(err, &malformed))
				assert.Equal(t, 1, malformed.Line)
			},
		},
		{
			name: "unknown escape",
			in:   "a=1\nb=\\q",
			checkFn: func(t *testing.T, err error) {
				var escape *InvalidEscapeError
				require.True(t, errors.As(err, &escape))
				assert.Equal(t, 2, escape.Line)
				assert.Equal(t, "b=\\q", escape.Text)
			},
		},
		{
			name: "truncated unicode escape",
			in:   "a=\\u12",
			checkFn: func(t *testing.T, err error) {
				var escape *InvalidEscapeError
				require.True(t, errors.As(err, &escape))
				assert.Equal(t, 1, escape.Line)
			},
		},
		{
			name: "non hex unicode escape",
			in:   "a=\\u12g4",
			checkFn: func(t *testing.T, err error) {
				var escape *InvalidEscapeError
				require.True(t, errors.As(err, &escape))
			},
		},
		{
			name: "invalid utf-8 in value",
			in:   "a=\xff",
			checkFn: func(t *testing.T, err error) {
				var invalid *InvalidUTF8Error
				require.True(t, errors.As(err, &invalid))
				assert.Equal(t, 1, invalid.Line)
				assert.Equal(t, 0, invalid.Offset)
			},
		},
		{
			name: "invalid utf-8 in key",
			in:   "\n\nk\xffx=1",
			checkFn: func(t *testing.T, err error) {
				var invalid *InvalidUTF8Error
				require.True(t, errors.As(err, &invalid))
				assert.Equal(t, 3, invalid.Line)
				assert.Equal(t, 1, invalid.Offset)
			},
		},
		{
			name: "invalid utf-8 in continuation",
			in:   "a=\\\nok\\\n\xc3",
			checkFn: func(t *testing.T, err error) {
				var invalid *InvalidUTF8Error
				require.True(t, errors.As(err, &invalid))
				assert.Equal(t, 3, invalid.Line)
			},
		},
		{
			name: "lone surrogate escape",
			in:   "a=\\uD83D",
			checkFn: func(t *testing.T, err error) {
				var invalid *InvalidUTF8Error
				require.True(t, errors.As(err, &invalid))
				assert.Equal(t, 1, invalid.Line)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			props, err := Load([]byte(tt.in))
			require.Error(t, err)
			assert.Nil(t, props, "no partial results on error")
			tt.checkFn(t, err)
		})
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	in := "# app settings\n" +
		"app.name = demo\n" +
		"app.greeting=hello\\u002c world\n" +
		"app.description = a long \\\n    description\n" +
		"app.name = again\n" +
		"empty=\n"

	first, err := Load([]byte(in))
	require.NoError(t, err)
	require.Equal(t, 5, first.Len())

	second, err := Load([]byte(first.String()))
	require.NoError(t, err)
	assert.Equal(t, first.Pairs(), second.Pairs())
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	props, err := LoadFile(filepath.Join("testdata", "sample.properties"))
	require.NoError(t, err)

	assert.Equal(t, "jdbc:postgresql://localhost:5432/app", props.MustGet("db.url"))
	assert.Equal(t, []string{"info", "debug"}, props.GetAll("log.level"))
	assert.Equal(t, "Größe", props.MustGet("label.size"))
	assert.Equal(t, "first,second,third", props.MustGet("list"))

	_, err = LoadFile(filepath.Join("testdata", "does-not-exist.properties"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading properties file")
}

func TestLoadReader(t *testing.T) {
	t.Parallel()

	props, err := LoadReader(strings.NewReader("a=1\nb=2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, props.Keys())
}

func Test_oddBackslashes(t *testing.T) {
	t.Parallel()

	assert.True(t, oddBackslashes("hello\\"))
	assert.False(t, oddBackslashes("hello\\\\"))
	assert.True(t, oddBackslashes("hello\\\\\\"))
	assert.False(t, oddBackslashes("hello"))
	assert.False(t, oddBackslashes(""))
}
