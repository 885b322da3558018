// Package main provides the slicknxt CLI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fairlight1337/slicknxt/internal/core/node"
	"github.com/fairlight1337/slicknxt/pkg/slicknxt"
)

// Version information set during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "slicknxt",
	Short: "SlickNXT - node-based flow execution for virtual and NXT I/O",
	Long:  `SlickNXT executes declarative node/edge flows (logic gates, timers, controllers, virtual I/O) at a fixed tick rate.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("SlickNXT %s (commit: %s, built: %s)\n", Version, Commit, BuildTime)
	},
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the registered node types",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range node.Types() {
			fmt.Println(t)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <flow.json>",
	Short: "Check a flow description file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := readFlow(args[0])
		if err != nil {
			return err
		}
		if err := d.Validate(); err != nil {
			return fmt.Errorf("invalid flow: %w", err)
		}
		fmt.Printf("ok: %d nodes, %d edges\n", len(d.Nodes), len(d.Edges))
		return nil
	},
}

var (
	runFor  time.Duration
	runRate time.Duration
	verbose bool
)

var runCmd = &cobra.Command{
	Use:   "run <flow.json>",
	Short: "Execute a flow until interrupted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := readFlow(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		if runFor > 0 {
			ctx, cancel = context.WithTimeout(ctx, runFor)
			defer cancel()
		}

		rt := slicknxt.NewRuntime(runRate)
		defer rt.Close()
		result, err := rt.Load(ctx, d)
		if err != nil {
			return err
		}
		fmt.Printf("loaded %d nodes (%d skipped), %d edges\n",
			result.NodesLoaded, result.NodesSkipped, result.Edges)

		if verbose {
			rt.Subscribe(func(nodeID string, state slicknxt.NodeState) error {
				line, _ := json.Marshal(state.Outputs)
				fmt.Printf("%s %s\n", nodeID, line)
				return nil
			})
		}

		if err := rt.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

func readFlow(path string) (*slicknxt.FlowDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d slicknxt.FlowDescription
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &d, nil
}

func main() {
	runCmd.Flags().DurationVar(&runFor, "for", 0, "stop after this duration (default: run until interrupted)")
	runCmd.Flags().DurationVar(&runRate, "rate", 0, "tick interval (default 100ms)")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print node outputs every tick")

	rootCmd.AddCommand(versionCmd, typesCmd, validateCmd, runCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
