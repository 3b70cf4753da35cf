package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/transparentlyai/adkflow-sub012/internal/adapters/file"
	"github.com/transparentlyai/adkflow-sub012/pkg/manifest"
	"github.com/transparentlyai/adkflow-sub012/pkg/ports"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunProjectStoreContract(t, store)
}

func TestFileStore_DefaultPath(t *testing.T) {
	store := file.New("")
	if store.BasePath != filepath.Join(".adkflow", "projects") {
		t.Errorf("default path = %q", store.BasePath)
	}
}

func TestFileStore_RejectsEmptyID(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	if err := store.Save(ctx, "", manifest.New("x")); err == nil {
		t.Error("Save with empty ID should fail")
	}
	if _, err := store.Load(ctx, ""); err == nil {
		t.Error("Load with empty ID should fail")
	}
	if err := store.Delete(ctx, ""); err == nil {
		t.Error("Delete with empty ID should fail")
	}
}

func TestFileStore_CorruptManifestSurfacesError(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)

	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(": : :"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(context.Background(), "bad"); err == nil {
		t.Error("corrupt manifest should not load")
	}
}

func TestFileStore_ListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	if err := store.Save(ctx, "keep", manifest.New("keep")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != "keep" {
		t.Errorf("List = %v", ids)
	}
}
