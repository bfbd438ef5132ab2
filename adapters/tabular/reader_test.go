package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	data := []byte("\ufeffage, chol ,target\n63,233,1\n37,250\n")

	table, err := NewDataReader(FormatCSV).ReadBytes(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"age", "chol", "target"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, RawRowData{"age": "63", "chol": "233", "target": "1"}, table.Rows[0])
	assert.Equal(t, "", table.Rows[1]["target"], "short rows are padded")
}

func TestReadCSVHeaderOnly(t *testing.T) {
	table, err := NewDataReader(FormatCSV).ReadBytes([]byte("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, table.Headers)
	assert.Empty(t, table.Rows)
}

func TestReadCSVRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"too many fields", "a,b\n1,2,3\n"},
		{"bare quote", "a,b\n\"1,2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDataReader(FormatCSV).ReadBytes([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestDuplicateHeadersAreSuffixed(t *testing.T) {
	table, err := NewDataReader(FormatCSV).ReadBytes([]byte("x,x,x\n1,2,3\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "x.1", "x.2"}, table.Headers)
	assert.Equal(t, "3", table.Rows[0]["x.2"])
}

func TestRenameIsPositional(t *testing.T) {
	table, err := NewDataReader(FormatCSV).ReadBytes([]byte("chol,age\n233,63\n"))
	require.NoError(t, err)

	require.NoError(t, table.Rename([]string{"age", "chol"}))

	assert.Equal(t, []string{"age", "chol"}, table.Headers)
	// values keep their position; the names do not follow the data
	assert.Equal(t, "233", table.Rows[0]["age"])
	assert.Equal(t, "63", table.Rows[0]["chol"])

	assert.Error(t, table.Rename([]string{"only"}))
}

func TestXLSXRoundTrip(t *testing.T) {
	payload, err := WriteXLSX("Data", []string{"age", "target"}, [][]interface{}{{54, 1}, {41, 0}})
	require.NoError(t, err)

	table, err := NewDataReader(FormatXLSX).ReadBytes(payload)
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "target"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "41", table.Rows[1]["age"])
}

func TestReadXLSXRejectsGarbage(t *testing.T) {
	_, err := NewDataReader(FormatXLSX).ReadBytes([]byte("definitely not a zip"))
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatXLSX, DetectFormat("heart.XLSX"))
	assert.Equal(t, FormatCSV, DetectFormat("heart.csv"))
	assert.Equal(t, FormatCSV, DetectFormat("noext"))
}

func TestWriteCSV(t *testing.T) {
	out, err := WriteCSV([]string{"a", "b c"}, [][]string{{"1", "x,y"}})
	require.NoError(t, err)
	assert.Equal(t, "a,b c\n1,\"x,y\"\n", string(out))
}
