package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/skelforge/skelforge/pkg/adapter/golang"
	"github.com/skelforge/skelforge/pkg/adapter/javascript"
	"github.com/skelforge/skelforge/pkg/adapter/typescript"
	"github.com/skelforge/skelforge/pkg/analyzer"
	"github.com/skelforge/skelforge/pkg/harness"
)

func newScanCommand() *cobra.Command {
	var (
		include  []string
		exclude  []string
		workers  int
		jsonOut  bool
		output   string
		tokens   bool
		noProgress bool
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a project and print its extracted skeletons",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			root = expandPath(root)

			logger := buildLogger()
			ctx := context.Background()

			_, qmanager, eng := harness.NewEngineStack(logger)
			adapters := harness.DefaultAdapters(golang.New(qmanager), javascript.New(), typescript.New())

			scanCfg := resolveScanConfig(root, include, exclude)

			var bar *progressbar.ProgressBar
			if !noProgress && !jsonOut {
				bar = progressbar.Default(-1, "scanning")
			}

			result, err := harness.Run(ctx, eng, adapters, harness.Options{
				RootDir:    root,
				ScanConfig: scanCfg,
				NumWorkers: workers,
				Logger:     logger,
				Progress: func(done, total int) {
					if bar != nil {
						if bar.GetMax() != total {
							bar.ChangeMax(total)
						}
						_ = bar.Set(done)
					}
				},
			})
			if err != nil {
				return fmt.Errorf("scan %q: %w", root, err)
			}
			if bar != nil {
				_ = bar.Finish()
			}

			az, err := analyzer.New(result.State, analyzer.Adapters(adapters), analyzer.Config{})
			if err != nil {
				return err
			}
			defer az.Close()

			out := os.Stdout
			if output != "" {
				f, err := os.Create(expandPath(output))
				if err != nil {
					return fmt.Errorf("create %q: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			if jsonOut {
				if err := writeSkeletonsJSON(out, az, result.Files, tokens); err != nil {
					return err
				}
			} else {
				if err := writeSkeletonsText(out, az, result.Files, tokens); err != nil {
					return err
				}
			}

			printScanSummary(result, len(result.Files))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&include, "include", nil, "glob patterns to include (overrides .skelforge.yaml)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "glob patterns to exclude, added to the defaults")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker count, 0 auto-detects from CPU count")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit skeletons as JSON instead of plain text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().BoolVar(&tokens, "tokens", false, "print the estimated token count of each skeleton")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")

	return cmd
}

type jsonSkeleton struct {
	FQName string `json:"fqName"`
	Kind   string `json:"kind"`
	Text   string `json:"skeleton"`
	Tokens int    `json:"tokens,omitempty"`
}

type jsonFile struct {
	File      string         `json:"file"`
	Skeletons []jsonSkeleton `json:"skeletons"`
}

func writeSkeletonsJSON(out *os.File, az *analyzer.Analyzer, files []string, withTokens bool) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	var payload []jsonFile
	for _, f := range files {
		skeletons, err := az.GetSkeletons(f)
		if err != nil {
			continue
		}
		if len(skeletons) == 0 {
			continue
		}
		entry := jsonFile{File: f}
		for _, s := range skeletons {
			js := jsonSkeleton{FQName: s.Unit.FQName(), Kind: s.Unit.Kind.String(), Text: s.Text}
			if withTokens {
				js.Tokens = analyzer.EstimateTokens(s.Text)
			}
			entry.Skeletons = append(entry.Skeletons, js)
		}
		payload = append(payload, entry)
	}
	return enc.Encode(payload)
}

func writeSkeletonsText(out *os.File, az *analyzer.Analyzer, files []string, withTokens bool) error {
	for _, f := range files {
		skeletons, err := az.GetSkeletons(f)
		if err != nil || len(skeletons) == 0 {
			continue
		}
		fmt.Fprintf(out, "// %s\n", f)
		for _, s := range skeletons {
			fmt.Fprintln(out, s.Text)
			if withTokens {
				fmt.Fprintf(out, "// ~%d tokens\n", analyzer.EstimateTokens(s.Text))
			}
		}
		fmt.Fprintln(out)
	}
	return nil
}

func printScanSummary(result *harness.Result, fileCount int) {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(os.Stderr, "%s scanned %d files (%d workers) in %s, %d skipped\n",
		green("✓"), fileCount, result.PoolSize, result.Elapsed.Round(time.Millisecond), len(result.Skipped))
}
