package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
}

func TestResolve(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	touch(t, filepath.Join(second, "drum_test.png"))
	touch(t, filepath.Join(second, "figure_19_1.png"))
	if err := os.Mkdir(filepath.Join(first, "figure_19_1.jpg"), 0o755); err != nil {
		t.Fatalf("Mkdir() failed: %v", err)
	}

	tests := []struct {
		name    string
		dirs    []string
		want    string
		wantErr bool
	}{
		{"name order within a directory", []string{second}, filepath.Join(second, "figure_19_1.png"), false},
		{"directories skip non-files", []string{first, second}, filepath.Join(second, "figure_19_1.png"), false},
		{"empty dirs ignored", []string{"", second}, filepath.Join(second, "figure_19_1.png"), false},
		{"nothing found", []string{first}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewResolver(tt.dirs...).Resolve(FigureNames)
			if tt.wantErr {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("Resolve() error = %v, want ErrNotFound", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "typeface.ttf"), []byte("font"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	path, data, err := NewResolver(dir).Read(FontNames)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if filepath.Base(path) != "typeface.ttf" || string(data) != "font" {
		t.Errorf("Read() = %q, %q", path, data)
	}
}
