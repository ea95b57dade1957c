// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command imatmul multiplies two dense int32 matrices stored on disk.
//
// Usage:
//
//	imatmul                        # ./data/a.bin · ./data/b.bin → ./data/c.bin
//	imatmul gen --size 2048        # write random a.bin and b.bin
//	imatmul verify                 # check c.bin against a naive multiply
//
// Files hold a little-endian int32 N followed by N×N int32 values in
// row-major order. With no subcommand the multiply is timed and reported:
//
//	start
//	Time taken: 1,234,567 microseconds
//	end
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ajroetker/go-imatmul/hwy"
	"github.com/ajroetker/go-imatmul/internal/driver"
	"github.com/ajroetker/go-imatmul/matrix"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the state shared by every subcommand.
type app struct {
	cfg     driver.Config
	verbose bool
	stdout  io.Writer
	stderr  io.Writer
}

func (a *app) logger() *slog.Logger {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{cfg: driver.DefaultConfig(), stdout: stdout, stderr: stderr}
	cmd := &cobra.Command{
		Use:           "imatmul",
		Short:         "Multiply two int32 matrices from the data directory",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context())
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	addConfigFlags(cmd.PersistentFlags(), a)
	cmd.AddCommand(newGenCmd(a), newVerifyCmd(a), newInfoCmd(a))
	return cmd
}

func addConfigFlags(fs *pflag.FlagSet, a *app) {
	fs.StringVar(&a.cfg.DataDir, "data-dir", a.cfg.DataDir, "directory holding the matrix files")
	fs.StringVar(&a.cfg.InputA, "input-a", a.cfg.InputA, "file name of the left operand")
	fs.StringVar(&a.cfg.InputB, "input-b", a.cfg.InputB, "file name of the right operand")
	fs.StringVar(&a.cfg.Output, "output", a.cfg.Output, "file name of the result")
	fs.IntVarP(&a.cfg.Workers, "workers", "w", a.cfg.Workers, "worker threads (<= 0 means GOMAXPROCS)")
	fs.IntVar(&a.cfg.TileSize, "tile", a.cfg.TileSize, "multiply tile size (8 or 16)")
	fs.StringVar(&a.cfg.Allocator, "allocator", a.cfg.Allocator,
		"matrix buffer allocator ("+strings.Join(matrix.AllocatorNames(), ", ")+")")
	fs.BoolVarP(&a.verbose, "verbose", "v", false, "log progress to stderr")
}

func (a *app) run(ctx context.Context) error {
	fmt.Fprintln(a.stdout, "start")
	res, err := driver.Run(ctx, a.cfg, a.logger())
	if err != nil {
		return err
	}
	p := message.NewPrinter(language.English)
	p.Fprintf(a.stdout, "Time taken: %d microseconds\n", res.Elapsed.Microseconds())
	fmt.Fprintln(a.stdout, "end")
	return nil
}

func newGenCmd(a *app) *cobra.Command {
	var (
		size int
		seed uint64
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Write random operands to the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := driver.Generate(a.cfg, size, seed); err != nil {
				return err
			}
			a.logger().Info("generated operands", "size", size, "seed", seed,
				"a", a.cfg.Path(a.cfg.InputA), "b", a.cfg.Path(a.cfg.InputB))
			return nil
		},
	}
	cmd.Flags().IntVarP(&size, "size", "n", 2048, "matrix edge length")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the result against a naive multiply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := driver.Verify(cmd.Context(), a.cfg, a.logger())
			if errors.Is(err, driver.ErrMismatch) {
				fmt.Fprintln(a.stdout, "Fail")
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, "Success")
			return nil
		},
	}
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the detected SIMD level and build settings",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(a.stdout, "level: %s\n", hwy.CurrentLevel())
			fmt.Fprintf(a.stdout, "width: %d bytes\n", hwy.CurrentWidth())
			fmt.Fprintf(a.stdout, "registers per Int32x8: %d\n", hwy.RegistersPerInt32x8())
			fmt.Fprintf(a.stdout, "allocators: %s\n", strings.Join(matrix.AllocatorNames(), ", "))
			if hwy.NoSimdEnv() {
				fmt.Fprintln(a.stdout, "HWY_NO_SIMD is set")
			}
		},
	}
}
