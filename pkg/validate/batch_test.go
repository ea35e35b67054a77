package validate

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gunvolt24/rapid_express/internal/domain"
)

const (
	validPayload   = `{"customer_id":1,"products":[{"product_id":7,"qty":3}]}`
	dupPayload     = `{"customer_id":1,"products":[{"product_id":5,"qty":2},{"product_id":5,"qty":1}]}`
	unknownPayload = `{"customer_id":1,"products":[{"product_id":7,"qty":3}],"note":"x"}`
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestValidateFile_JSON_Auto_OK(t *testing.T) {
	path := writeTemp(t, "one.json", validPayload)

	var out bytes.Buffer
	summary, err := ValidateFile(context.Background(), NewOrderValidator(), path, FormatAuto, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.String() != "1 valid / 0 invalid" {
		t.Fatalf("unexpected summary: %s", summary)
	}
	if strings.TrimSpace(out.String()) != validPayload {
		t.Fatalf("unexpected canonical output: %s", out.String())
	}
}

func TestValidateFile_JSONL_Auto_Mixed(t *testing.T) {
	content := validPayload + "\n\n" + dupPayload + "\n" + unknownPayload + "\n" + validPayload + "\n"
	path := writeTemp(t, "list.jsonl", content)

	var out bytes.Buffer
	summary, err := ValidateFile(context.Background(), NewOrderValidator(), path, FormatAuto, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.String() != "2 valid / 2 invalid" {
		t.Fatalf("unexpected summary: %s", summary)
	}
	if lines := strings.Split(strings.TrimSpace(out.String()), "\n"); len(lines) != 2 {
		t.Fatalf("expected 2 output lines, got %d", len(lines))
	}
}

func TestValidateFile_JSON_Invalid(t *testing.T) {
	path := writeTemp(t, "bad.json", dupPayload)

	var out bytes.Buffer
	summary, err := ValidateFile(context.Background(), NewOrderValidator(), path, FormatJSON, &out)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if summary != (Summary{Invalid: 1}) || out.Len() != 0 {
		t.Fatalf("unexpected summary=%q out=%q", summary, out.String())
	}
}

func TestValidateFile_UnsupportedFormat(t *testing.T) {
	path := writeTemp(t, "x.json", validPayload)
	if _, err := ValidateFile(context.Background(), NewOrderValidator(), path, InputFormat("xml"), &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestDecodeCreateOrder_TrailingData(t *testing.T) {
	_, err := DecodeCreateOrder([]byte(validPayload + `{}`))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput for trailing data, got %v", err)
	}
}

func TestValidateFile_JSONArray(t *testing.T) {
	path := writeTemp(t, "batch.json", "[\n"+validPayload+",\n"+dupPayload+",\n"+validPayload+"\n]")

	var out bytes.Buffer
	summary, err := ValidateFile(context.Background(), NewOrderValidator(), path, FormatAuto, &out)
	if err != nil {
		t.Fatalf("array with invalid items must not fail: %v", err)
	}
	if summary != (Summary{Valid: 2, Invalid: 1}) {
		t.Fatalf("unexpected summary: %s", summary)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestValidateStream_WriteErrorStops(t *testing.T) {
	in := strings.NewReader(validPayload + "\n" + validPayload + "\n")
	summary, err := ValidateStream(context.Background(), NewOrderValidator(), in, failingWriter{})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("want write error, got %v", err)
	}
	if summary.Valid != 0 {
		t.Fatalf("nothing was written, got %s", summary)
	}
}

func TestValidateStream_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ValidateStream(ctx, NewOrderValidator(), strings.NewReader(validPayload+"\n"), &bytes.Buffer{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
