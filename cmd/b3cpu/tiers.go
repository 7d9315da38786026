package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	blake3 "github.com/GerHobbelt/BLAKE3"
)

func tiersCmd() *cli.Command {
	return &cli.Command{
		Name:  "tiers",
		Usage: "Print the kernel tier each operation resolves to on this machine",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Emit machine-readable output"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s := blake3.Select()

			if cmd.Bool("json") {
				return json.NewEncoder(os.Stdout).Encode(s)
			}

			fmt.Printf("features:          %s\n", s.Features)
			fmt.Printf("compress-in-place: %s\n", s.CompressInPlace)
			fmt.Printf("compress-xof:      %s\n", s.CompressXOF)
			fmt.Printf("xof-many:          %s\n", s.XOFMany)
			fmt.Printf("hash-many:         %s\n", s.HashMany)
			fmt.Printf("simd-degree:       %d\n", s.SIMDDegree)

			return nil
		},
	}
}
