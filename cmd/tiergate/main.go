package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zen-systems/tiergate/pkg/adapter"
	"github.com/zen-systems/tiergate/pkg/archive"
	"github.com/zen-systems/tiergate/pkg/catalog"
	"github.com/zen-systems/tiergate/pkg/config"
	"github.com/zen-systems/tiergate/pkg/gateway"
	"github.com/zen-systems/tiergate/pkg/router"
	"github.com/zen-systems/tiergate/pkg/scorer"
	"github.com/zen-systems/tiergate/pkg/server"
	"gopkg.in/yaml.v3"
)

var (
	routingFile string
	debugFlag   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tiergate",
		Short: "Complexity-tiered LLM request router",
		Long: `Tiergate scores each prompt across weighted complexity dimensions,
	classifies it into a tier (SIMPLE, MEDIUM, COMPLEX, REASONING), and routes
	it to the cheapest capable provider for that tier.`,
	}

	rootCmd.PersistentFlags().StringVar(&routingFile, "routing", "", "path to routing config file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable decision logging")

	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(routeCmd())
	rootCmd.AddCommand(modelsCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles the wired routing components for one command invocation.
type app struct {
	cfg      *config.AppConfig
	store    *config.Store
	adapters map[string]adapter.Adapter
	catalog  *catalog.Static
	router   *router.Router
	gateway  *gateway.Gateway
}

func loadApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	path := routingFile
	if path == "" {
		path = cfg.RoutingPath
	}
	store, err := config.OpenStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open routing config: %w", err)
	}

	adapters, err := createAdapters(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create adapters: %w", err)
	}

	cat := catalog.FromAdapters(adapters)
	r := router.New(store, cat, router.WithDebug(debugFlag))

	arch, err := archive.NewStore(filepath.Join(cfg.ConfigDir, "archive"))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	gw := gateway.New(adapters, r, cat, gateway.WithDebug(debugFlag), gateway.WithArchive(arch))

	return &app{
		cfg:      cfg,
		store:    store,
		adapters: adapters,
		catalog:  cat,
		router:   r,
		gateway:  gw,
	}, nil
}

func createAdapters(cfg *config.AppConfig) (map[string]adapter.Adapter, error) {
	adapters := make(map[string]adapter.Adapter)

	if cfg.AnthropicAPIKey != "" {
		a, err := adapter.NewAnthropicAdapter(cfg.AnthropicAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create anthropic adapter: %w", err)
		}
		adapters["anthropic"] = a
	}

	if cfg.OpenAIAPIKey != "" {
		a, err := adapter.NewOpenAIAdapter(cfg.OpenAIAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai adapter: %w", err)
		}
		adapters["openai"] = a
	}

	if cfg.GoogleAPIKey != "" {
		a, err := adapter.NewGoogleAdapter(cfg.GoogleAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create google adapter: %w", err)
		}
		adapters["google"] = a
	}

	if cfg.DeepSeekAPIKey != "" {
		a, err := adapter.NewDeepSeekAdapter(cfg.DeepSeekAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create deepseek adapter: %w", err)
		}
		adapters["deepseek"] = a
	}

	adapters["mock"] = adapter.NewMockAdapter()

	return adapters, nil
}

func askCmd() *cobra.Command {
	var systemFlag, sessionFlag string
	var toolsFlag []string
	var agenticFlag, jsonFlag bool

	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Route a prompt to the best model and print the response",
		Long: `Scores the prompt, selects a provider and model for its complexity
	tier, and dispatches it. Failed candidates are excluded and the request is
	re-routed automatically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			reply, err := a.gateway.Ask(cmd.Context(), gateway.Request{
				Prompt:    args[0],
				System:    systemFlag,
				Tools:     toolsFlag,
				Agentic:   agenticFlag,
				SessionID: sessionFlag,
			})
			if err != nil {
				return err
			}

			if jsonFlag {
				return printJSON(reply)
			}
			fmt.Printf("[%s] %s\n\n", reply.Decision.Tier, reply.Decision.Key())
			fmt.Println(reply.Artifact.Content)
			return nil
		},
	}

	cmd.Flags().StringVar(&systemFlag, "system", "", "system prompt")
	cmd.Flags().StringVar(&sessionFlag, "session", "", "session id for selection pinning")
	cmd.Flags().StringSliceVar(&toolsFlag, "tool", nil, "tool names attached to the request")
	cmd.Flags().BoolVar(&agenticFlag, "agentic", false, "use the agentic preference table")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "print the full reply as JSON")

	return cmd
}

func classifyCmd() *cobra.Command {
	var systemFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "classify [prompt]",
		Short: "Score a prompt without dispatching it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			res := scorer.Score(args[0], systemFlag, a.store.Snapshot())
			if jsonFlag {
				return printJSON(res)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "tier\t%s\n", res.Tier)
			fmt.Fprintf(w, "score\t%.3f\n", res.Score)
			fmt.Fprintf(w, "confidence\t%.3f\n", res.Confidence)
			fmt.Fprintf(w, "ambiguous\t%v\n", res.Ambiguous)
			fmt.Fprintf(w, "agentic score\t%.2f\n", res.AgenticScore)
			fmt.Fprintf(w, "est. tokens\t%d\n", res.EstimatedTokens)
			fmt.Fprintf(w, "signals\t%s\n", strings.Join(res.Signals, ", "))
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&systemFlag, "system", "", "system prompt")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "print the result as JSON")

	return cmd
}

func routeCmd() *cobra.Command {
	var systemFlag string
	var agenticFlag, jsonFlag bool

	cmd := &cobra.Command{
		Use:   "route [prompt]",
		Short: "Show the routing decision for a prompt without dispatching",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			dec, err := a.router.Route(router.Request{
				UserText:     args[0],
				SystemText:   systemFlag,
				ForceAgentic: agenticFlag,
			})
			if err != nil {
				return err
			}

			if jsonFlag {
				return printJSON(dec)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "tier\t%s\n", dec.Tier)
			fmt.Fprintf(w, "provider\t%s\n", dec.Provider)
			fmt.Fprintf(w, "model\t%s\n", dec.Model)
			fmt.Fprintf(w, "confidence\t%.3f\n", dec.Confidence)
			fmt.Fprintf(w, "agentic\t%v\n", dec.Agentic)
			fmt.Fprintf(w, "fallback\t%v\n", dec.UsedFallback)
			fmt.Fprintf(w, "reasoning\t%s\n", dec.Reasoning)
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&systemFlag, "system", "", "system prompt")
	cmd.Flags().BoolVar(&agenticFlag, "agentic", false, "use the agentic preference table")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "print the decision as JSON")

	return cmd
}

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List routable candidates with cost and capability metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			candidates := a.catalog.Candidates()
			sort.Slice(candidates, func(i, j int) bool { return candidates[i].Key() < candidates[j].Key() })

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PROVIDER\tMODEL\tCOST\tCAPABILITIES\tSTATUS")
			for _, c := range candidates {
				status := "ready"
				if !c.Available {
					status = "unavailable"
				}
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n",
					c.Provider, c.Model, c.CostScore, strings.Join(c.Capabilities, ","), status)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			cfg := a.store.Snapshot()
			fmt.Println()
			w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIER\tPREFERRED\tCAPABILITIES")
			for _, tier := range config.SortedTiers(cfg.TierPreferences) {
				pref := cfg.TierPreferences[tier]
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					tier, strings.Join(pref.PreferredModels, ", "), strings.Join(pref.Capabilities, ","))
			}
			return w.Flush()
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or update the routing configuration",
	}
	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configSetCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the active routing configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			snap := a.store.Snapshot()
			if jsonFlag {
				return printJSON(snap)
			}
			out, err := yaml.Marshal(snap)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "print as JSON instead of YAML")

	return cmd
}

func configSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [patch]",
		Short: "Merge a JSON patch into the routing configuration",
		Long: `Deep-merges a partial configuration into the active one and persists
	the result. Keys absent from the patch keep their current values.

	Example:
	  tiergate config set '{"overrides":{"agenticMode":true}}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			var patch config.Patch
			if err := json.Unmarshal([]byte(args[0]), &patch); err != nil {
				return fmt.Errorf("invalid patch: %w", err)
			}

			merged, err := a.store.MergeAndPersist(&patch)
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(merged)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve routing over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.store, a.router, a.gateway)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
