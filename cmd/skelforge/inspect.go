package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skelforge/skelforge/pkg/adapter/golang"
	"github.com/skelforge/skelforge/pkg/adapter/javascript"
	"github.com/skelforge/skelforge/pkg/adapter/typescript"
	"github.com/skelforge/skelforge/pkg/analyzer"
	"github.com/skelforge/skelforge/pkg/harness"
)

func newInspectCommand() *cobra.Command {
	var (
		root       string
		header     bool
		source     bool
		tokens     bool
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "inspect <fqName>",
		Short: "Print the skeleton, header, or source for one fully-qualified symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fqName := args[0]
			logger := buildLogger()
			ctx := context.Background()

			_, qmanager, eng := harness.NewEngineStack(logger)
			adapters := harness.DefaultAdapters(golang.New(qmanager), javascript.New(), typescript.New())

			root = expandPath(root)
			result, err := harness.Run(ctx, eng, adapters, harness.Options{
				RootDir:    root,
				ScanConfig: resolveScanConfig(root, nil, nil),
				NumWorkers: workers,
				Logger:     logger,
			})
			if err != nil {
				return fmt.Errorf("scan %q: %w", root, err)
			}

			az, err := analyzer.New(result.State, analyzer.Adapters(adapters), analyzer.Config{})
			if err != nil {
				return err
			}
			defer az.Close()

			switch {
			case source:
				text, err := az.GetClassSource(fqName)
				if err != nil {
					if code, ok := az.GetMethodSource(fqName); ok {
						fmt.Println(code)
						return nil
					}
					return fmt.Errorf("%s: %w", fqName, err)
				}
				fmt.Println(text)
			case header:
				text, ok := az.GetSkeletonHeader(fqName)
				if !ok {
					return fmt.Errorf("%s: %w", fqName, analyzer.ErrSymbolNotFound)
				}
				fmt.Println(text)
			default:
				text, ok := az.GetSkeleton(fqName)
				if !ok {
					return fmt.Errorf("%s: %w", fqName, analyzer.ErrSymbolNotFound)
				}
				fmt.Println(text)
				if tokens {
					fmt.Printf("// ~%d tokens\n", analyzer.EstimateTokens(text))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "project root to scan before inspecting")
	cmd.Flags().BoolVar(&header, "header", false, "print only the skeleton's first line")
	cmd.Flags().BoolVar(&source, "source", false, "print the original source range(s) instead of the skeleton")
	cmd.Flags().BoolVar(&tokens, "tokens", false, "print the estimated token count")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker count, 0 auto-detects from CPU count")

	return cmd
}
