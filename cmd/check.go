package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"upc/internal/engine"
	"upc/pkg/logger"
)

// checkCommand constructs the 'check' subcommand that evaluates UPC-A codes
// offline, without the API server or database. Codes are taken from the
// command line, or one per line from a file ("-" reads stdin).
func checkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [codes...]",
		Short: "Validates UPC-A codes and prints the results as JSON",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			codes := args
			if file, _ := cmd.Flags().GetString("file"); file != "" {
				fileCodes, err := readCodes(file)
				if err != nil {
					logger.Fatal(ctx, "could not read codes file", zap.Error(err))
				}
				codes = append(codes, fileCodes...)
			}
			if len(codes) == 0 {
				logger.Fatal(ctx, "no codes given")
			}

			enc := json.NewEncoder(os.Stdout)
			for _, code := range codes {
				result, err := engine.Evaluate(code)
				if err != nil {
					logger.Fatal(ctx, "could not evaluate code", zap.String("code", code), zap.Error(err))
				}
				if err := enc.Encode(result); err != nil {
					logger.Fatal(ctx, "could not encode result", zap.Error(err))
				}
			}
		},
	}

	cmd.Flags().StringP("file", "f", "", `File with one code per line ("-" for stdin)`)

	return cmd
}

func readCodes(file string) ([]string, error) {
	in := os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("could not open %s: %w", file, err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	var codes []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			codes = append(codes, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read codes: %w", err)
	}

	return codes, nil
}
