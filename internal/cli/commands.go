// Package cli is the runtime shared by the LCRM binaries: it turns a Program
// description into a cobra command tree, runs the selected action and maps the
// outcome to printed JSON and an exit code.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ai8future/lcrm/internal/commands"
	"github.com/ai8future/lcrm/internal/config"
	"github.com/ai8future/lcrm/internal/ctxlog"
	"github.com/ai8future/lcrm/internal/lcrm"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// ErrUsage means usage text was printed instead of running anything.
	ErrUsage = errors.New("usage")

	// ErrNotOK means the result was printed but the API reported failure.
	ErrNotOK = errors.New("request not successful")
)

// HandlerFunc runs one action against the API.
type HandlerFunc func(ctx context.Context, client *lcrm.Client, opts commands.Options) (*lcrm.Result, error)

// Action is one subcommand of a Program, selected by the first positional.
type Action struct {
	Name    string
	Short   string
	Options string // synopsis shown after the action name
	Example string
	Run     HandlerFunc
}

// Program describes one binary. A Program either has Actions or a single Run.
type Program struct {
	Name    string
	Short   string
	Version string
	Example string

	Actions []Action

	// Run and Options are used when the program takes no action.
	Run     HandlerFunc
	Options string
	// RequiredOptions must be non-empty or usage is printed, before any config is read.
	RequiredOptions []string
}

func init() {
	heading := color.New(color.Bold, color.FgCyan).SprintFunc()
	cobra.AddTemplateFunc("heading", func(s string) string { return heading(s) })
}

const usageTemplate = `{{heading "Usage:"}}
  {{.UseLine}}{{if .HasAvailableSubCommands}}

{{heading "Actions:"}}{{range .Commands}}{{if .IsAvailableCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasExample}}

{{heading "Examples:"}}
{{.Example}}{{end}}

{{heading "Global options:"}}
  --timeout-ms <ms>   request timeout in milliseconds (default 20000)
  --verbose           log requests and responses to stderr
  --help              show help
`

// NewRootCommand builds the command tree for p.
func NewRootCommand(p Program) *cobra.Command {
	root := &cobra.Command{
		Use:           p.Name,
		Short:         p.Short,
		Version:       p.Version,
		Example:       p.Example,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetUsageTemplate(usageTemplate)

	if len(p.Actions) == 0 {
		root.Use = p.Name + " " + p.Options
		root.DisableFlagParsing = true
		root.RunE = func(cmd *cobra.Command, args []string) error {
			opts := commands.Parse(args).Options
			for _, key := range p.RequiredOptions {
				if opts.Get(key) == "" && !opts.Has("help") {
					return usage(cmd, "")
				}
			}
			return invoke(cmd, opts, p.Run)
		}
		return root
	}

	root.Use = p.Name + " <action> [--option value]..."
	root.Args = cobra.ArbitraryArgs
	// Root flags are read by commands.Parse, so a bare --help ends in usage.
	root.DisableFlagParsing = true
	// Only reached when no action matched.
	root.RunE = func(cmd *cobra.Command, args []string) error {
		parsed := commands.Parse(args)
		if action := parsed.Action(); action != "" {
			return usage(cmd, fmt.Sprintf("unknown action %q", action))
		}
		if parsed.Options.Has("version") && !parsed.Options.Has("help") {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", cmd.Name(), cmd.Version)
			return nil
		}
		return usage(cmd, "")
	}
	// help is not an action.
	root.SetHelpCommand(&cobra.Command{
		Use:                "help",
		Hidden:             true,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return usage(root, `unknown action "help"`)
		},
	})

	for _, a := range p.Actions {
		run := a.Run
		root.AddCommand(&cobra.Command{
			Use:                a.Name + " " + a.Options,
			Short:              a.Short,
			Example:            a.Example,
			DisableFlagParsing: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return invoke(cmd, commands.Parse(args).Options, run)
			},
		})
	}
	return root
}

// usage writes the command's usage to stderr and returns ErrUsage.
func usage(cmd *cobra.Command, problem string) error {
	w := cmd.ErrOrStderr()
	if problem != "" {
		fmt.Fprintf(w, "%s\n\n", problem)
	}
	fmt.Fprint(w, cmd.UsageString())
	return ErrUsage
}

// invoke loads configuration, builds the client, runs the handler and prints the result.
func invoke(cmd *cobra.Command, opts commands.Options, run HandlerFunc) error {
	if opts.Has("help") {
		return cmd.Help()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyGlobalOptions(cfg, opts)

	logger := NewLogger(cmd.ErrOrStderr(), cfg.Logging)
	ctx := ctxlog.WithLogger(cmd.Context(), logger)

	client, err := NewClient(cfg, logger)
	if err != nil {
		return err
	}

	result, err := run(ctx, client, opts)
	if err != nil {
		logger.Debug("command failed", "command", cmd.CommandPath(), "kind", ErrorKind(err), "error", err)
		return err
	}

	if err := PrintResult(cmd.OutOrStdout(), result); err != nil {
		return err
	}
	if !result.OK {
		return ErrNotOK
	}
	return nil
}

// Execute runs root and returns the process exit code. Errors that were not
// already reported are printed to stderr as a failure envelope.
func Execute(ctx context.Context, root *cobra.Command) int {
	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNotOK), errors.Is(err, ErrUsage):
		return 1
	}

	if printErr := PrintFailure(root.ErrOrStderr(), err); printErr != nil {
		fmt.Fprintln(root.ErrOrStderr(), err)
	}
	return 1
}
