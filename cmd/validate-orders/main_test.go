package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.jsonl")
	content := `{"customer_id":1,"products":[{"product_id":1,"qty":2}]}` + "\n" +
		`{"customer_id":1,"products":[{"product_id":0,"qty":2}]}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-in", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr=%s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "1 valid / 1 invalid") {
		t.Fatalf("unexpected summary: %s", stderr.String())
	}
	if n := strings.Count(stdout.String(), "\n"); n != 1 {
		t.Fatalf("want 1 canonical line, got %d", n)
	}
}

func TestRun_Errors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-in", filepath.Join(t.TempDir(), "missing.json")}, &stdout, &stderr); code != 1 {
		t.Fatalf("missing file: want exit 1, got %d", code)
	}
	if code := run(context.Background(), []string{"-unknown"}, &stdout, &stderr); code != 2 {
		t.Fatalf("bad flag: want exit 2, got %d", code)
	}
}
