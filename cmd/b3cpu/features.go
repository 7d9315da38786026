package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	kcpuid "github.com/klauspost/cpuid/v2"
	"github.com/urfave/cli/v3"

	"github.com/GerHobbelt/BLAKE3/internal/cpu"
)

type featureReport struct {
	CPU      string       `json:"cpu"`
	Features string       `json:"features"`
	Cross    []crossCheck `json:"cross_check"`
}

type crossCheck struct {
	Name       string `json:"name"`
	Dispatcher bool   `json:"dispatcher"`
	Library    bool   `json:"cpuid_library"`
}

func featuresCmd() *cli.Command {
	return &cli.Command{
		Name:  "features",
		Usage: "Print the instruction set extensions the dispatcher will trust",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Emit machine-readable output"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f := cpu.Features()

			report := featureReport{
				CPU:      kcpuid.CPU.BrandName,
				Features: f.String(),
				Cross: []crossCheck{
					{"sse2", f&cpu.SSE2 != 0, kcpuid.CPU.Supports(kcpuid.SSE2)},
					{"ssse3", f&cpu.SSSE3 != 0, kcpuid.CPU.Supports(kcpuid.SSSE3)},
					{"sse4.1", f&cpu.SSE41 != 0, kcpuid.CPU.Supports(kcpuid.SSE4)},
					{"avx", f&cpu.AVX != 0, kcpuid.CPU.Supports(kcpuid.AVX)},
					{"avx2", f&cpu.AVX2 != 0, kcpuid.CPU.Supports(kcpuid.AVX2)},
					{"avx512f", f&cpu.AVX512F != 0, kcpuid.CPU.Supports(kcpuid.AVX512F)},
					{"avx512vl", f&cpu.AVX512VL != 0, kcpuid.CPU.Supports(kcpuid.AVX512VL)},
				},
			}

			if cmd.Bool("json") {
				return json.NewEncoder(os.Stdout).Encode(report)
			}

			fmt.Printf("cpu:      %s\n", report.CPU)
			fmt.Printf("features: %s\n\n", report.Features)

			for _, c := range report.Cross {
				marker := " "
				if c.Dispatcher != c.Library {
					// Divergence from an independent detection library is
					// worth a second look even when it is intentional
					// (e.g. a tier compiled out).
					marker = "!"
				}
				fmt.Printf("%s %-9s dispatcher=%-5t cpuid=%t\n", marker, c.Name, c.Dispatcher, c.Library)
			}

			return nil
		},
	}
}
