package validate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// InputFormat: формат файла с запросами на создание заказа.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

const maxLineSize = 10 << 20

// Summary: итог пакетной проверки.
type Summary struct {
	Valid   int
	Invalid int
}

func (s Summary) String() string { return fmt.Sprintf("%d valid / %d invalid", s.Valid, s.Invalid) }

// batch: проверка записей по одной; валидные уходят в out в каноническом виде, по строке на запись.
// Ошибка записи в out прерывает обработку и хранится в err.
type batch struct {
	validator *OrderValidator
	out       io.Writer
	sum       Summary
	err       error
}

// add: возвращает причину отказа для невалидной записи.
func (b *batch) add(ctx context.Context, raw []byte) error {
	in, err := ValidateOrderFromJSON(ctx, b.validator, raw)
	if err != nil {
		b.sum.Invalid++
		return err
	}
	canonical, err := json.Marshal(in)
	if err == nil {
		_, err = b.out.Write(append(canonical, '\n'))
	}
	if err != nil {
		b.err = fmt.Errorf("write valid record: %w", err)
		return nil
	}
	b.sum.Valid++
	return nil
}

// ValidateFile: проверяет файл в формате json (один объект или массив объектов) или jsonl.
// FormatAuto выбирает jsonl по расширению .jsonl, иначе json.
// Для одиночного объекта невалидная запись возвращается ошибкой; в массиве и jsonl только считается.
func ValidateFile(ctx context.Context, validator *OrderValidator, path string, format InputFormat, out io.Writer) (Summary, error) {
	if format == FormatAuto {
		format = FormatJSON
		if strings.EqualFold(filepath.Ext(path), ".jsonl") {
			format = FormatJSONL
		}
	}
	if format != FormatJSON && format != FormatJSONL {
		return Summary{}, fmt.Errorf("unsupported format: %s", format)
	}

	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	if format == FormatJSONL {
		return ValidateStream(ctx, validator, f, out)
	}

	raw, err := io.ReadAll(f)
	if err != nil {
		return Summary{}, fmt.Errorf("read file: %w", err)
	}
	b := &batch{validator: validator, out: out}

	raw = bytes.TrimSpace(raw)
	if !bytes.HasPrefix(raw, []byte("[")) {
		rejected := b.add(ctx, raw)
		if b.err != nil {
			return b.sum, b.err
		}
		return b.sum, rejected
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return Summary{}, fmt.Errorf("decode array: %w", err)
	}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return b.sum, err
		}
		_ = b.add(ctx, item) // отказ уже учтён в sum
		if b.err != nil {
			return b.sum, b.err
		}
	}
	return b.sum, nil
}

// ValidateStream: jsonl: запись на строку, пустые строки пропускаются.
func ValidateStream(ctx context.Context, validator *OrderValidator, r io.Reader, out io.Writer) (Summary, error) {
	b := &batch{validator: validator, out: out}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineSize)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return b.sum, err
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		_ = b.add(ctx, line) // отказ уже учтён в sum
		if b.err != nil {
			return b.sum, b.err
		}
	}
	if err := sc.Err(); err != nil {
		return b.sum, fmt.Errorf("scan: %w", err)
	}
	return b.sum, nil
}
