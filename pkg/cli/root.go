package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/keystonecrm/planner/pkg/dependencies"
	"github.com/keystonecrm/planner/pkg/planner"
	"github.com/sirupsen/logrus"
)

// Command represents a CLI command
type Command struct {
	Name        string
	Description string
	Run         func(args []string) error
	Subcommands map[string]*Command
}

// Env is what every command writes to
type Env struct {
	Out io.Writer
	Log *logrus.Logger
}

// NewLogger returns the text logger the CLI reports progress with
func NewLogger(out io.Writer, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// NewRootCommand creates the root command
func NewRootCommand(env *Env) *Command {
	if env == nil {
		env = &Env{Out: os.Stdout, Log: NewLogger(os.Stderr, "info")}
	}

	root := &Command{
		Name:        "planner",
		Description: "Planner - subscription plan configuration CLI",
		Subcommands: make(map[string]*Command),
	}

	for _, cmd := range []*Command{
		newModulesCommand(env),
		newBundlesCommand(env),
		newCheckCommand(env),
		newClosureCommand(env),
		newQuoteCommand(env),
		newValidateCommand(env),
		newGraphCommand(env),
		newInitCommand(env),
	} {
		root.Subcommands[cmd.Name] = cmd
	}

	return root
}

// Execute runs the subcommand named by args[0]
func (c *Command) Execute(args []string) error {
	if len(args) == 0 {
		return c.usage(os.Stdout)
	}

	// Check for help flag
	if args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		return c.usage(os.Stdout)
	}

	if subcmd, ok := c.Subcommands[args[0]]; ok {
		return subcmd.Run(args[1:])
	}

	return fmt.Errorf("unknown command: %s", args[0])
}

// usage prints the command usage
func (c *Command) usage(w io.Writer) error {
	fmt.Fprintf(w, "Usage: %s <command> [flags] [args]\n\n", c.Name)
	fmt.Fprintf(w, "Commands:\n")
	names := make([]string, 0, len(c.Subcommands))
	for name := range c.Subcommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-15s %s\n", name, c.Subcommands[name].Description)
	}
	return nil
}

// catalogFlags are the flags shared by every command that loads a catalog
type catalogFlags struct {
	dir     *string
	cascade *bool
}

func addCatalogFlags(flags *flag.FlagSet) catalogFlags {
	return catalogFlags{
		dir:     flags.String("catalog", "", "Directory with modules.yaml and bundles.yaml (default: built-in catalog)"),
		cascade: flags.Bool("cascade", false, "Remove dependents when a module is removed"),
	}
}

// load builds the engine the flags point at
func (f catalogFlags) load(env *Env) (*planner.Engine, error) {
	policy := dependencies.KeepOrphans
	if *f.cascade {
		policy = dependencies.CascadeRemoval
	}

	if *f.dir == "" {
		env.Log.Debug("Using built-in catalog")
		return planner.Default(planner.WithRemovalPolicy(policy))
	}

	env.Log.WithField("dir", *f.dir).Debug("Loading catalog")
	e, err := planner.LoadFromDir(*f.dir, planner.WithRemovalPolicy(policy))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", *f.dir, err)
	}
	return e, nil
}
