// validate-orders: офлайн-проверка тел запросов на создание заказа (.json / .jsonl)
// без обращения к каталогу. Корректные записи уходят в stdout, итог: в stderr.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Gunvolt24/rapid_express/pkg/validate"
)

const stdinPath = "/dev/stdin"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate-orders", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputPath := fs.String("in", "", "path to input (.json or .jsonl); stdin (jsonl) when empty")
	formatStr := fs.String("format", string(validate.FormatAuto), "input format: auto|json|jsonl")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	path, format := *inputPath, validate.InputFormat(*formatStr)
	if path == "" {
		path = stdinPath
		// у stdin нет расширения: построчный формат
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
	}

	summary, err := validate.ValidateFile(ctx, validate.NewOrderValidator(), path, format, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "validation: %v (%s)\n", err, summary)
		return 1
	}
	fmt.Fprintf(stderr, "validation ok (%s)\n", summary)
	return 0
}
