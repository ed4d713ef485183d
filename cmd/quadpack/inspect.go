package main

import (
	"fmt"
	"os"

	"github.com/arloliu/quadpack"
	"github.com/arloliu/quadpack/errs"
	"github.com/spf13/cobra"
)

func newInspectCmd(a *app) *cobra.Command {
	var bigEndian bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print statistics of an encoded quadtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("big-endian") {
				a.cfg.BigEndian = bigEndian
			}

			return a.inspect(args[0])
		},
	}
	cmd.Flags().BoolVar(&bigEndian, "big-endian", false, "read raw input as big-endian")

	return cmd
}

func (a *app) inspect(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", errs.ErrIO, path, err)
	}

	stats, err := quadpack.Inspect(data, quadpack.WithDecoderOptions(a.cfg.DecoderOptions()...))
	if err != nil {
		return err
	}

	byteOrder := "little-endian"
	if stats.BigEndian {
		byteOrder = "big-endian"
	}

	fmt.Fprintf(a.stdout, "file:        %s\n", path)
	fmt.Fprintf(a.stdout, "side:        %d\n", stats.Side)
	fmt.Fprintf(a.stdout, "nodes:       %d\n", stats.Nodes)
	fmt.Fprintf(a.stdout, "leaves:      %d\n", stats.Leaves)
	fmt.Fprintf(a.stdout, "max depth:   %d\n", stats.MaxDepth)
	fmt.Fprintf(a.stdout, "byte order:  %s\n", byteOrder)
	fmt.Fprintf(a.stdout, "compression: %s\n", stats.Compression)
	fmt.Fprintf(a.stdout, "raw size:    %d\n", stats.RawSize)
	fmt.Fprintf(a.stdout, "encoded:     %d (%.2f%% of RGB)\n", stats.EncodedSize, stats.Ratio()*100)

	return nil
}
