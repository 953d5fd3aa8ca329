package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"skuqty/internal"
	"skuqty/internal/app"
	"skuqty/internal/config"
	"skuqty/internal/container"
	"skuqty/internal/logging"
	"skuqty/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	must(err)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.Open(ctx, cfg, logger)
	must(err)
	defer a.Close()

	cmd := os.Args[1]
	switch cmd {
	case "parse:text":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		text := fs.String("text", "", "description text")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*text) == "" && fs.NArg() > 0 {
			*text = strings.Join(fs.Args(), " ")
		}
		if strings.TrimSpace(*text) == "" {
			must(fmt.Errorf("--text is required"))
		}
		res := a.Parser.Parse(ctx, internal.ProductDescription{Text: *text, SourceID: "cli"})
		out, err := json.MarshalIndent(res, "", "  ")
		must(err)
		fmt.Println(string(out))
	case "parse:file":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "input file path")
		inType := fs.String("type", "", "text|html|xlsx|pdf|eml (default: by extension)")
		column := fs.String("column", "", "description column header for html/xlsx")
		output := fs.String("output", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if *input == "" || *output == "" {
			must(fmt.Errorf("--input and --output are required"))
		}

		items, err := pipeline.ExtractItemsFromInput(*inType, *input, *column)
		must(err)
		descs := pipeline.Descriptions(items, *input)
		start := time.Now()
		results, err := a.Parser.ParseAll(ctx, descs, cfg.ParseWorkers)
		must(err)
		must(pipeline.ExportRowsToXLSX(pipeline.ResultRows(descs, results), *output))
		printStats(pipeline.Summarize(results))
		fmt.Printf("parse done rows=%d output=%s took=%s\n", len(results), *output, time.Since(start).Round(time.Millisecond))
	case "import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "input file path")
		inType := fs.String("type", "", "text|html|xlsx|pdf|eml (default: by extension)")
		column := fs.String("column", "", "description column header for html/xlsx")
		_ = fs.Parse(os.Args[2:])
		if *input == "" {
			must(fmt.Errorf("--input is required"))
		}
		n, err := a.Processing.ImportFile(*input, *inType, *column)
		must(err)
		fmt.Printf("import done new=%d\n", n)
	case "process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		batch := fs.Int("batch", 500, "batch size")
		_ = fs.Parse(os.Args[2:])
		res, err := a.Processing.ProcessPending(ctx, *batch)
		must(err)
		if res.Processed == 0 {
			fmt.Println("nothing pending")
			return
		}
		printStats(res.Stats)
		fmt.Printf("processed run=%d trace=%s descriptions=%d\n", res.RunID, res.TraceID, res.Processed)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		runID := fs.Int64("run", 0, "run id (default: latest)")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}
		n, err := a.Processing.ExportRun(*runID, *out)
		must(err)
		fmt.Printf("exported %d rows to %s\n", n, *out)
	case "model:train":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		replace := fs.Bool("replace", false, "restart from the seed corpus")
		input := fs.String("input", "", "labeled xlsx: text, type, weight, pieces, containers")
		_ = fs.Parse(os.Args[2:])

		var examples []internal.TrainingExample
		if *input != "" {
			imp, err := pipeline.ReadTrainingXLSX(*input)
			must(err)
			examples = imp.Examples
			fmt.Printf("labeled examples=%d skipped=%d\n", len(imp.Examples), imp.Skipped)
		}
		stats, err := a.Model.Train(ctx, examples, *replace)
		must(err)
		if stats.Skipped {
			fmt.Println("training skipped: nothing new")
			return
		}
		_ = a.DB.SetMetadata("model.last_train", time.Now().UTC().Format(time.RFC3339))
		fmt.Printf("model trained examples=%d added=%d persisted=%t took=%s\n", stats.Examples, stats.Added, stats.Persisted, stats.Duration.Round(time.Millisecond))
	case "model:stats":
		s := a.Model.Stats()
		fmt.Printf("trained=%t examples=%d terms=%d passes=%d trainedAt=%s store=%s\n",
			s.Trained, s.Examples, s.Terms, s.Passes, s.TrainedAt.Format(time.RFC3339), cfg.ModelStore)
		if v, err := a.DB.GetMetadata("model.last_train"); err == nil && v != nil {
			fmt.Printf("last manual train: %s\n", *v)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func printStats(s pipeline.Stats) {
	fmt.Printf("total=%d parsed=%d failed=%d success=%.1f%%\n", s.Total, s.Parsed, s.Failed, s.SuccessRate*100)
	for _, m := range []internal.ParseMethod{internal.MethodRule, internal.MethodModel, internal.MethodNone} {
		if n := s.ByMethod[m]; n > 0 {
			fmt.Printf("  method %-6s %d\n", m, n)
		}
	}
	for _, ct := range container.Types() {
		if n := s.ByContainer[ct]; n > 0 {
			fmt.Printf("  container %-6s %d\n", ct, n)
		}
	}
}

func usage() {
	fmt.Println("usage: skuqty <command>")
	fmt.Println("commands:")
	fmt.Println("  parse:text --text=\"16g*24pcs*12boxes\"")
	fmt.Println("  parse:file --input=... [--type=text|html|xlsx|pdf|eml] [--column=...] --output=...xlsx")
	fmt.Println("  import --input=... [--type=...] [--column=...]")
	fmt.Println("  process [--batch=500]")
	fmt.Println("  export:xlsx [--run=1] --out=./out/result.xlsx")
	fmt.Println("  model:train [--replace] [--input=labeled.xlsx]")
	fmt.Println("  model:stats")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
