package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		vectors [][]float32
		wantErr bool
	}{
		{
			name:    "valid",
			names:   []string{"Laptop", "Smartphone"},
			vectors: [][]float32{{1, 0}, {0, 1}},
		},
		{
			name:    "empty catalog is allowed",
			names:   []string{},
			vectors: [][]float32{},
		},
		{
			name:    "length mismatch",
			names:   []string{"Laptop"},
			vectors: [][]float32{{1, 0}, {0, 1}},
			wantErr: true,
		},
		{
			name:    "duplicate name",
			names:   []string{"Laptop", "Laptop"},
			vectors: [][]float32{{1, 0}, {0, 1}},
			wantErr: true,
		},
		{
			name:    "empty name",
			names:   []string{""},
			vectors: [][]float32{{1, 0}},
			wantErr: true,
		},
		{
			name:    "dimension mismatch",
			names:   []string{"Laptop", "Smartphone"},
			vectors: [][]float32{{1, 0}, {0, 1, 2}},
			wantErr: true,
		},
		{
			name:    "zero-length vector",
			names:   []string{"Laptop"},
			vectors: [][]float32{{}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.names, tt.vectors)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	names := []string{"Laptop"}
	vectors := [][]float32{{1, 2, 3}}
	cat, err := New(names, vectors)
	if err != nil {
		t.Fatal(err)
	}

	// Mutating the inputs or accessor outputs must not affect the catalog.
	names[0] = "Changed"
	vectors[0][0] = 99
	got := cat.Names()
	got[0] = "AlsoChanged"

	name, vec := cat.At(0)
	if name != "Laptop" {
		t.Errorf("name: got %q, want Laptop", name)
	}
	if vec[0] != 1 {
		t.Errorf("vector mutated: got %v", vec[0])
	}
	if cat.Names()[0] != "Laptop" {
		t.Errorf("Names() not a copy")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cat, err := New(
		[]string{"Laptop", "Washing Machine", "テレビ"},
		[][]float32{{0.1, -0.2, 0.3}, {0.4, 0.5, -0.6}, {0, 1, 0}},
	)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "sub", "catalog.bin")
	if err := cat.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Len() != cat.Len() {
		t.Fatalf("Len: got %d, want %d", loaded.Len(), cat.Len())
	}
	if loaded.Dimensions() != 3 {
		t.Errorf("Dimensions: got %d, want 3", loaded.Dimensions())
	}
	for i := 0; i < cat.Len(); i++ {
		wantName, wantVec := cat.At(i)
		gotName, gotVec := loaded.At(i)
		if gotName != wantName {
			t.Errorf("entry %d name: got %q, want %q", i, gotName, wantName)
		}
		for j := range wantVec {
			if gotVec[j] != wantVec[j] {
				t.Errorf("entry %d vector[%d]: got %v, want %v", i, j, gotVec[j], wantVec[j])
			}
		}
	}
}

func TestSaveLoadEmptyCatalog(t *testing.T) {
	cat, err := New(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "catalog.bin")
	if err := cat.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Len() != 0 {
		t.Errorf("Len: got %d, want 0", loaded.Len())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.bin")); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}

func TestLoadNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "category.json")
	if err := os.WriteFile(path, []byte(`["Laptop", "Smartphone", "Tablet"]`), 0600); err != nil {
		t.Fatal(err)
	}
	names, err := LoadNames(path)
	if err != nil {
		t.Fatalf("LoadNames() error = %v", err)
	}
	if len(names) != 3 || names[0] != "Laptop" || names[2] != "Tablet" {
		t.Errorf("names: got %v", names)
	}
}

func TestLoadNamesInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "category.json")
	if err := os.WriteFile(path, []byte(`{"not": "an array"}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadNames(path); err == nil {
		t.Error("LoadNames() should fail on non-array JSON")
	}
}
