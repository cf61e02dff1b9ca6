// invoice-extract runs the extraction pipeline over pre-OCR'd text dumps and
// emits structured results as JSON, optionally persisting them to the
// embedded store and/or writing an XLSX workbook.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/Havardbaban/buildcarbon-sub000/internal/common"
	"github.com/Havardbaban/buildcarbon-sub000/internal/entity"
	"github.com/Havardbaban/buildcarbon-sub000/internal/export"
	"github.com/Havardbaban/buildcarbon-sub000/internal/ocr"
	"github.com/Havardbaban/buildcarbon-sub000/internal/pipeline"
	"github.com/Havardbaban/buildcarbon-sub000/internal/rules"
	"github.com/Havardbaban/buildcarbon-sub000/internal/store"
)

func main() {
	_ = godotenv.Load()

	rulesPath := flag.String("rules", "", "path to a JSON rule table (default: compiled-in table)")
	dbPath := flag.String("db", "", "sqlite path to persist results into (optional)")
	xlsxPath := flag.String("xlsx", "", "write results workbook to this path (optional)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <text-file>...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "err", err)
		os.Exit(1)
	}

	var table *rules.Table
	if *rulesPath != "" {
		t, err := rules.LoadFile(*rulesPath)
		if err != nil {
			logger.Error("load rules", "path", *rulesPath, "err", err)
			os.Exit(1)
		}
		table = t
	}

	p := pipeline.New(logger, cfg, table)
	source := ocr.NewFileSource()

	var st *store.Store
	if *dbPath != "" {
		s, err := store.Open(*dbPath, logger)
		if err != nil {
			logger.Error("open store", "err", err)
			os.Exit(1)
		}
		defer s.Close()
		if err := s.Init(ctx); err != nil {
			logger.Error("init store", "err", err)
			os.Exit(1)
		}
		st = s
	}

	var results []*entity.ExtractionResult
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, path := range flag.Args() {
		text, err := source.Extract(ctx, path)
		if err != nil {
			logger.Error("read input", "path", path, "err", err)
			os.Exit(1)
		}
		doc := entity.Document{ID: uuid.New(), RawText: text.Text}
		res, err := p.Run(ctx, doc)
		if err != nil {
			logger.Error("pipeline", "path", path, "err", err)
			os.Exit(1)
		}
		if err := enc.Encode(res); err != nil {
			logger.Error("encode result", "err", err)
			os.Exit(1)
		}
		if st != nil {
			if err := st.SaveResult(ctx, res); err != nil {
				logger.Error("persist result", "err", err)
				os.Exit(1)
			}
		}
		results = append(results, res)
	}

	if *xlsxPath != "" {
		b, err := export.NewService(logger).ResultsXLSX(results)
		if err != nil {
			logger.Error("export xlsx", "err", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxPath, b, 0o644); err != nil {
			logger.Error("write xlsx", "path", *xlsxPath, "err", err)
			os.Exit(1)
		}
		logger.Info("wrote workbook", "path", *xlsxPath)
	}
}
