// Command harness is the runtime driver for the tool catalogs: it loads a
// world-state JSON file, exposes the per-domain registries, and routes
// invocations to tools, printing the JSON result envelope.
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/atlas-sim/harness/internal/domains/fundfinance"
	"github.com/atlas-sim/harness/internal/domains/hr"
	"github.com/atlas-sim/harness/internal/domains/incidents"
	"github.com/atlas-sim/harness/internal/domains/smarthome"
	"github.com/atlas-sim/harness/internal/tool"
	"github.com/atlas-sim/harness/internal/validate"
	"github.com/atlas-sim/harness/internal/world"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	worldPath string
	domain    string
	iface     string
	logLevel  string
	instant   string
	seed      int64
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "harness",
		Short:         "Tool-catalog harness for agent-driven enterprise simulations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.worldPath, "world", "world.json", "world-state JSON file")
	root.PersistentFlags().StringVar(&opts.domain, "domain", "fundfinance", "domain catalog (fundfinance, hr, incidents, smarthome)")
	root.PersistentFlags().StringVar(&opts.iface, "interface", "interface_1", "interface version")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", envOrDefault("HARNESS_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.instant, "instant", envOrDefault("HARNESS_INSTANT", validate.DefaultInstant), "pinned current instant")
	root.PersistentFlags().Int64Var(&opts.seed, "seed", 1, "random seed for code generation")

	root.AddCommand(newInterfacesCmd(opts), newListCmd(opts), newDescribeCmd(opts), newInvokeCmd(opts))
	return root
}

func newInterfacesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "interfaces",
		Short: "List the available domains and interface versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, domain := range []string{"fundfinance", "hr", "incidents", "smarthome"} {
				for _, iface := range []string{"interface_1", "interface_2"} {
					fmt.Fprintf(cmd.OutOrStdout(), "%s/%s\n", domain, iface)
				}
			}
			return nil
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the tools of the selected interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := buildRegistry(opts, zap.NewNop())
			if err != nil {
				return err
			}
			for _, t := range reg.Tools() {
				fmt.Fprintln(cmd.OutOrStdout(), t.Name())
			}
			return nil
		},
	}
}

func newDescribeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <tool>",
		Short: "Print a tool's self-describing schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := buildRegistry(opts, zap.NewNop())
			if err != nil {
				return err
			}
			t, ok := reg.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown tool %q in %s/%s", args[0], opts.domain, opts.iface)
			}
			out, err := json.MarshalIndent(t.Describe(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newInvokeCmd(opts *options) *cobra.Command {
	var argsJSON string
	var save bool

	cmd := &cobra.Command{
		Use:   "invoke <tool>",
		Short: "Invoke a tool against the world state and print the result envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			logger, err := buildLogger(opts.logLevel)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck // best-effort flush

			reg, _, err := buildRegistry(opts, logger)
			if err != nil {
				return err
			}
			t, ok := reg.Get(cmdArgs[0])
			if !ok {
				return fmt.Errorf("unknown tool %q in %s/%s", cmdArgs[0], opts.domain, opts.iface)
			}

			data, err := os.ReadFile(opts.worldPath)
			if err != nil {
				return fmt.Errorf("load world: %w", err)
			}
			w, err := world.Load(data)
			if err != nil {
				return err
			}

			var toolArgs map[string]any
			if argsJSON != "" {
				if err := json.Unmarshal([]byte(argsJSON), &toolArgs); err != nil {
					return fmt.Errorf("invalid --args JSON: %w", err)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.Invoke(w, toolArgs))

			if save {
				out, err := w.Dump()
				if err != nil {
					return err
				}
				if err := os.WriteFile(opts.worldPath, out, 0o644); err != nil {
					return fmt.Errorf("save world: %w", err)
				}
				logger.Info("world state saved", zap.String("path", opts.worldPath))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&argsJSON, "args", "", "tool arguments as a JSON object")
	cmd.Flags().BoolVar(&save, "save", false, "write the mutated world state back to the world file")
	return cmd
}

// buildRegistry assembles the selected domain catalog and interface version.
func buildRegistry(opts *options, logger *zap.Logger) (*tool.Registry, validate.Clock, error) {
	clock, err := validate.NewClock(opts.instant)
	if err != nil {
		return nil, validate.Clock{}, err
	}

	var ifaces map[string]*tool.Registry
	switch opts.domain {
	case "fundfinance":
		c := fundfinance.NewCatalog(clock, logger)
		ifaces = map[string]*tool.Registry{"interface_1": c.Interface1(), "interface_2": c.Interface2()}
	case "hr":
		c := hr.NewCatalog(clock, logger)
		ifaces = map[string]*tool.Registry{"interface_1": c.Interface1(), "interface_2": c.Interface2()}
	case "incidents":
		c := incidents.NewCatalog(clock, logger)
		ifaces = map[string]*tool.Registry{"interface_1": c.Interface1(), "interface_2": c.Interface2()}
	case "smarthome":
		c := smarthome.NewCatalog(clock, rand.New(rand.NewSource(opts.seed)), logger)
		ifaces = map[string]*tool.Registry{"interface_1": c.Interface1(), "interface_2": c.Interface2()}
	default:
		return nil, clock, fmt.Errorf("unknown domain %q", opts.domain)
	}

	reg, ok := ifaces[opts.iface]
	if !ok {
		return nil, clock, fmt.Errorf("unknown interface %q for domain %s", opts.iface, opts.domain)
	}
	return reg, clock, nil
}

func buildLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
