package jsonl

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groceries.jsonl")
	expiry := time.Date(2027, 3, 1, 12, 30, 15, 123456789, time.UTC)
	items := []types.GroceryItem{
		{ID: 101, Name: "Rice", Quantity: 50, ExpiryDate: expiry},
		{ID: 102, Name: "Milk \"Powder\" <tin>", Quantity: 0, ExpiryDate: expiry.AddDate(0, 6, 0)},
	}

	require.NoError(t, Save(path, items))
	got, err := Load[types.GroceryItem](path)
	require.NoError(t, err)

	assert.Equal(t, items, got)
}

func TestSaveWritesOneObjectPerLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "electronics.jsonl")
	items := []types.ElectronicItem{
		{ID: 1, Name: "Smartphone", Quantity: 10, Brand: "BrandA", WarrantyMonths: 24},
		{ID: 2, Name: "Laptop", Quantity: 5, Brand: "BrandB", WarrantyMonths: 12},
	}
	require.NoError(t, Save(path, items))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"id":1,"name":"Smartphone","quantity":10,"brand":"BrandA","warranty_months":24}`, lines[0])
	assert.JSONEq(t, `{"id":2,"name":"Laptop","quantity":5,"brand":"BrandB","warranty_months":12}`, lines[1])
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	got, err := Load[types.LogEntry](filepath.Join(t.TempDir(), "absent.jsonl"))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSaveReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	require.NoError(t, Save(path, []types.LogEntry{{ID: 1}, {ID: 2}, {ID: 3}}))
	require.NoError(t, Save(path, []types.LogEntry{{ID: 9}}))

	got, err := Load[types.LogEntry](path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 9, got[0].ID)

	// No temp files are left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantIDs []int
		wantErr string
	}{
		{
			name:    "empty input",
			input:   "",
			wantIDs: []int{},
		},
		{
			name:    "blank lines are skipped",
			input:   "{\"id\":1}\n\n   \n{\"id\":2}\n",
			wantIDs: []int{1, 2},
		},
		{
			name:    "missing trailing newline",
			input:   `{"id":7}`,
			wantIDs: []int{7},
		},
		{
			name:    "malformed line reports its number",
			input:   "{\"id\":1}\nnot json\n",
			wantErr: "line 2",
		},
		{
			name:    "unknown fields are ignored",
			input:   `{"id":3,"colour":"red"}`,
			wantIDs: []int{3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode[types.LogEntry](strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			ids := make([]int, 0, len(got))
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode[types.LogEntry](&buf, nil))
	assert.Zero(t, buf.Len())
}
