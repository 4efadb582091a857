package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-quoteform"
	"github.com/goliatone/go-quoteform/internal/config"
	"github.com/goliatone/go-quoteform/internal/logging"
	"github.com/goliatone/go-quoteform/pkg/renderers/tui"
	"github.com/goliatone/go-quoteform/pkg/schema"
)

// errInvalidRecords makes run exit non-zero after reporting every record.
var errInvalidRecords = errors.New("one or more records are invalid")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	// Prompts go to stderr so stdout carries only the encoded submission.
	driver := tui.NewSurveyDriver(terminal.Stdio{In: os.Stdin, Out: os.Stderr, Err: os.Stderr})
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, driver)
	stop()
	os.Exit(code)
}

// run executes one CLI invocation. driver overrides the terminal prompt
// driver in tui mode.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, driver tui.PromptDriver) int {
	flags := pflag.NewFlagSet("quoteform-cli", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	config.Flags(flags)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger, err := logging.New(stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	forms, err := loadForms(cfg)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load forms", "schema_dir", cfg.SchemaDir, "error", err)
		return 1
	}

	out, err := execute(ctx, cfg, forms, logger, driver)
	if len(out) > 0 {
		if werr := writeOutput(cfg.Output, stdout, out); werr != nil {
			logger.ErrorContext(ctx, "failed to write output", "output", cfg.Output, "error", werr)
			return 1
		}
	}
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errInvalidRecords):
		return 1
	case errors.Is(err, tui.ErrAborted), errors.Is(err, tui.ErrDeclined), errors.Is(err, context.Canceled):
		logger.InfoContext(ctx, "form session ended", "form", cfg.Form, "reason", err.Error())
		return 130
	default:
		logger.ErrorContext(ctx, "command failed", "mode", cfg.Mode, "form", cfg.Form, "error", err)
		return 1
	}
}

func loadForms(cfg config.Config) (*quoteform.Forms, error) {
	if strings.TrimSpace(cfg.SchemaDir) == "" {
		return quoteform.New()
	}
	return quoteform.NewFromFS(os.DirFS(cfg.SchemaDir))
}

func execute(ctx context.Context, cfg config.Config, forms *quoteform.Forms, logger *slog.Logger, driver tui.PromptDriver) ([]byte, error) {
	switch cfg.Mode {
	case config.ModeHTML:
		return renderHTML(ctx, cfg, forms)
	case config.ModeOpenAPI:
		return exportOpenAPI(cfg, forms)
	case config.ModeValidate:
		return validateRecords(ctx, cfg, forms, logger)
	default:
		return fillForm(ctx, cfg, forms, logger, driver)
	}
}

func fillForm(ctx context.Context, cfg config.Config, forms *quoteform.Forms, logger *slog.Logger, driver tui.PromptDriver) ([]byte, error) {
	s, err := forms.Lookup(cfg.Form)
	if err != nil {
		return nil, err
	}
	var prefill schema.Record
	if cfg.Input != "" {
		records, err := readRecords(cfg.Input)
		if err != nil {
			return nil, err
		}
		if len(records) > 0 {
			prefill = records[0]
		}
	}

	options := []tui.Option{
		tui.WithOutputFormat(tui.OutputFormat(cfg.Format)),
		tui.WithConfirmSubmit(true),
		tui.WithTheme(tui.Theme{ErrorPrefix: "✗ "}),
	}
	if driver != nil {
		options = append(options, tui.WithPromptDriver(driver))
	}
	renderer := tui.New(options...)

	result, err := renderer.Fill(ctx, s, prefill)
	if err != nil {
		return nil, err
	}
	logSubmission(ctx, logger, cfg.Form, 0, result)
	if err := result.Err(); err != nil {
		return nil, err
	}
	return renderer.Encode(s, result.Record)
}

func renderHTML(ctx context.Context, cfg config.Config, forms *quoteform.Forms) ([]byte, error) {
	opts := quoteform.RenderOptions{Action: cfg.Action}
	if cfg.Input != "" {
		records, err := readRecords(cfg.Input)
		if err != nil {
			return nil, err
		}
		if len(records) > 0 {
			result, err := forms.Validate(cfg.Form, records[0])
			if err != nil {
				return nil, err
			}
			opts.Values = records[0]
			opts.Errors = result.Errors
		}
	}
	return forms.RenderHTML(ctx, cfg.Form, opts)
}

func exportOpenAPI(cfg config.Config, forms *quoteform.Forms) ([]byte, error) {
	var names []string
	if cfg.Form != "" && cfg.Form != "all" {
		names = []string{cfg.Form}
	}
	doc, err := forms.OpenAPI(cfg.APITitle, cfg.APIVersion, names...)
	if err != nil {
		return nil, err
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}
	if cfg.Format != "yaml" {
		return append(raw, '\n'), nil
	}
	return jsonToYAML(raw)
}

type validation struct {
	Index  int                `json:"index"`
	Valid  bool               `json:"valid"`
	Errors schema.FieldErrors `json:"errors,omitempty"`
}

func validateRecords(ctx context.Context, cfg config.Config, forms *quoteform.Forms, logger *slog.Logger) ([]byte, error) {
	records, err := readRecords(cfg.Input)
	if err != nil {
		return nil, err
	}

	var (
		out     strings.Builder
		invalid int
	)
	enc := json.NewEncoder(&out)
	for idx, record := range records {
		result, err := forms.Validate(cfg.Form, record)
		if err != nil {
			return nil, err
		}
		logSubmission(ctx, logger, cfg.Form, idx, result)
		if !result.Valid() {
			invalid++
		}
		if err := enc.Encode(validation{Index: idx, Valid: result.Valid(), Errors: result.Errors}); err != nil {
			return nil, err
		}
	}
	if invalid > 0 {
		return []byte(out.String()), fmt.Errorf("%w: %d of %d", errInvalidRecords, invalid, len(records))
	}
	return []byte(out.String()), nil
}

func logSubmission(ctx context.Context, logger *slog.Logger, form string, idx int, result schema.Result) {
	if result.Valid() {
		logger.InfoContext(ctx, "quote request submitted", "form", form, "index", idx, "record", map[string]string(result.Record))
		return
	}
	logger.WarnContext(ctx, "quote request rejected", "form", form, "index", idx, "fields", result.FailedFields(), "errors", map[string]string(result.Errors))
}

// readRecords accepts a JSON object or an array of objects with string values.
func readRecords(path string) ([]schema.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var records []schema.Record
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("decode records %s: %w", path, err)
		}
		return records, nil
	}
	var record schema.Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", path, err)
	}
	return []schema.Record{record}, nil
}

// jsonToYAML re-encodes a JSON document as block-style YAML, keeping key
// order. Strings stay double-quoted.
func jsonToYAML(raw []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("convert openapi document: %w", err)
	}
	blockStyle(&node)
	return yaml.Marshal(&node)
}

func blockStyle(node *yaml.Node) {
	if node.Kind == yaml.MappingNode || node.Kind == yaml.SequenceNode {
		node.Style = 0
	}
	for _, child := range node.Content {
		blockStyle(child)
	}
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
