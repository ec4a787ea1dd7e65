// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	ges "github.com/Avalanche-io/otio-gesobjects"
	"github.com/Avalanche-io/otio-gesobjects/gstnode"
	"github.com/Avalanche-io/otio-gesobjects/internal/config"
	"github.com/Avalanche-io/otio-gesobjects/internal/logging"
	"github.com/Avalanche-io/otio-gesobjects/memnode"
	"github.com/Avalanche-io/otio-gesobjects/otio"
	"github.com/Avalanche-io/otio-gesobjects/xges"
)

var (
	cfgFile string
	verbose bool
	backend string
	output  string
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gesobj",
	Short: "gesobj - text overlay and test source timeline objects",
	Long:  "Builds GES text overlays and test sources from a YAML project, writes them as XGES and inspects XGES files.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		logging.Init(verbose || cfg.Verbose)

		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(ctx)

		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./gesobj.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	buildCmd.Flags().StringVar(&backend, "backend", "", "track node backend: memory or gst")
	buildCmd.Flags().StringVarP(&output, "output", "o", "", "XGES output file (default: stdout)")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(patternsCmd)
}

func nodeFactory(name string) (ges.NodeFactory, error) {
	switch name {
	case "", config.BackendMemory:
		return memnode.NewFactory(), nil
	case config.BackendGst:
		return gstnode.NewFactory(), nil
	}
	return nil, errors.Errorf("unknown backend %q", name)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the configured project and write it as XGES",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		if backend != "" {
			cfg.Backend = backend
		}
		if output != "" {
			cfg.Output = output
		}

		factory, err := nodeFactory(cfg.Backend)
		if err != nil {
			return err
		}
		edit, err := cfg.Project.Build(factory)
		if err != nil {
			return err
		}

		if err := writeEdit(cmd.OutOrStdout(), cfg.Output, edit); err != nil {
			return err
		}

		log.Info().
			Str("project", edit.Name).
			Str("backend", cfg.Backend).
			Int("tracks", len(edit.Tracks)).
			Int("objects", len(edit.Objects)).
			Msg("build complete")
		return nil
	},
}

// writeEdit encodes edit to path, or to stdout when path is empty. A failed
// close of the output file is reported.
func writeEdit(stdout io.Writer, path string, edit *xges.Edit) (err error) {
	if path == "" {
		return xges.NewEncoder(stdout).Encode(edit)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	return xges.NewEncoder(f).Encode(edit)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [xges file]",
	Short: "Decode an XGES file and summarize its timeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		edit, err := xges.NewDecoder(f).Decode()
		if err != nil {
			return err
		}
		timeline, err := otio.ToTimeline(edit.Name, edit.Rate, edit.Objects)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%g fps)\n", edit.Name, edit.Rate)
		for _, track := range edit.Tracks {
			fmt.Fprintf(out, "  %s\n", track)
		}
		for _, obj := range edit.Objects {
			fmt.Fprintf(out, "  layer %d %s %q start=%d duration=%d\n",
				obj.Priority(), obj.TypeName(), obj.Name(), obj.Start(), obj.Duration())
			for _, ps := range obj.Properties() {
				v, _ := obj.Get(ps.Name)
				fmt.Fprintf(out, "    %s=%v\n", ps.Name, v)
			}
		}

		log.Info().
			Str("file", args[0]).
			Int("layers", len(timeline.VideoTracks())).
			Int("objects", len(edit.Objects)).
			Msg("inspect complete")
		return nil
	},
}

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the enumerated attribute values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, table := range ges.EnumTables() {
			fmt.Fprintln(out, table.TypeName)
			for _, v := range table.Values {
				fmt.Fprintf(out, "  %2d  %-14s %s\n", v.Value, v.Nick, v.Name)
			}
		}
		return nil
	},
}
