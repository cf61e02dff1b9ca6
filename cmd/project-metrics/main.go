// project-metrics computes project-finance metrics from a JSON input file:
// either a quick estimate from project assumptions or a full investment
// analysis with loan amortization and IRR.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Havardbaban/buildcarbon-sub000/internal/common"
	"github.com/Havardbaban/buildcarbon-sub000/internal/finance"
)

func main() {
	_ = godotenv.Load()

	mode := flag.String("mode", "estimate", `"estimate" (ProjectAssumptions) or "invest" (InvestmentInput)`)
	inPath := flag.String("in", "", "JSON input file (default: stdin)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s -mode estimate|invest [-in file.json]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "err", err)
		os.Exit(1)
	}

	in := os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			logger.Error("open input", "err", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}
	dec := json.NewDecoder(in)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	switch *mode {
	case "estimate":
		var a finance.ProjectAssumptions
		if err := dec.Decode(&a); err != nil {
			logger.Error("decode assumptions", "err", err)
			os.Exit(1)
		}
		m, err := finance.EstimateProject(a)
		if err != nil {
			logger.Error("estimate", "err", err)
			os.Exit(1)
		}
		_ = enc.Encode(m)
	case "invest":
		var iv finance.InvestmentInput
		if err := dec.Decode(&iv); err != nil {
			logger.Error("decode investment input", "err", err)
			os.Exit(1)
		}
		a, err := finance.Analyze(iv, cfg.Finance)
		if err != nil {
			logger.Error("analyze", "err", err)
			os.Exit(1)
		}
		if !a.IRR.Converged {
			logger.Warn("irr did not converge", "rate", a.IRR.Rate, "iterations", a.IRR.Iterations)
		}
		_ = enc.Encode(a)
	default:
		flag.Usage()
		os.Exit(2)
	}
}
