package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/themultilangtranslator-png/multilang-translator/internal/cli"
	"github.com/themultilangtranslator-png/multilang-translator/internal/config"
	"github.com/themultilangtranslator-png/multilang-translator/internal/logging"
	"github.com/themultilangtranslator-png/multilang-translator/internal/translation"
)

// runTranslate performs one translation from the command line, bypassing the
// HTTP layer. Useful for smoke-testing provider credentials.
func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	author := fs.String("author", "CLI", "Author label for the message")
	text := fs.String("text", "", "Message text to translate")
	languages := fs.String("langs", "", "Comma-separated target language codes (default: configured list)")
	timeout := fs.Duration("timeout", 30*time.Second, "Overall timeout")
	asJSON := fs.Bool("json", false, "Print the structured result instead of the rendered block")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if strings.TrimSpace(*text) == "" {
		fmt.Fprintln(os.Stderr, "--text is required")
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	service, _, _ := buildCore(cfg, logger)

	var targets []string
	for _, code := range strings.Split(*languages, ",") {
		if trimmed := strings.TrimSpace(code); trimmed != "" {
			targets = append(targets, trimmed)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := service.Translate(ctx, translation.Request{
		Author:    *author,
		Text:      *text,
		Languages: targets,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Translation failed: %v\n", err)
		return 1
	}

	if *asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode result: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Println(result.RenderedText)
	return 0
}
