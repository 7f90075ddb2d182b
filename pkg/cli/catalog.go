package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/keystonecrm/planner/pkg/catalog"
	"github.com/keystonecrm/planner/pkg/pricing"
	"github.com/sirupsen/logrus"
)

func newModulesCommand(env *Env) *Command {
	return &Command{
		Name:        "modules",
		Description: "List catalog modules",
		Run: func(args []string) error {
			flags := flag.NewFlagSet("modules", flag.ContinueOnError)
			cf := addCatalogFlags(flags)
			if err := flags.Parse(args); err != nil {
				return err
			}

			e, err := cf.load(env)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(env.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPRICE\tREQUIRES")
			for _, m := range e.ListModules() {
				id := m.ID
				if m.Baseline {
					id += " (baseline)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", id, m.Name,
					pricing.FormatCents(m.MonthlyPriceCents, pricing.DefaultCurrency),
					strings.Join(m.Requires, ","))
			}
			return tw.Flush()
		},
	}
}

func newBundlesCommand(env *Env) *Command {
	return &Command{
		Name:        "bundles",
		Description: "List bundles with their savings",
		Run: func(args []string) error {
			flags := flag.NewFlagSet("bundles", flag.ContinueOnError)
			cf := addCatalogFlags(flags)
			if err := flags.Parse(args); err != nil {
				return err
			}

			e, err := cf.load(env)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(env.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPRICE\tCUSTOM\tSAVINGS\tMODULES")
			for _, b := range e.ListBundles() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", b.ID, b.Name,
					pricing.FormatCents(b.MonthlyPriceCents, pricing.DefaultCurrency),
					pricing.FormatCents(b.CustomEquivalentCents, pricing.DefaultCurrency),
					pricing.FormatCents(b.SavingsCents, pricing.DefaultCurrency),
					strings.Join(b.Modules, ","))
			}
			return tw.Flush()
		},
	}
}

func newCheckCommand(env *Env) *Command {
	return &Command{
		Name:        "check",
		Description: "Check a catalog for consistency problems",
		Run: func(args []string) error {
			flags := flag.NewFlagSet("check", flag.ContinueOnError)
			cf := addCatalogFlags(flags)
			if err := flags.Parse(args); err != nil {
				return err
			}

			e, err := cf.load(env)
			if err != nil {
				var cfgErr *catalog.ConfigurationError
				if errors.As(err, &cfgErr) {
					for _, p := range cfgErr.Problems {
						env.Log.Error(p)
					}
					return fmt.Errorf("catalog has %d problem(s)", len(cfgErr.Problems))
				}
				return err
			}

			env.Log.WithFields(logrus.Fields{
				"modules": len(e.ListModules()),
				"bundles": len(e.ListBundles()),
			}).Info("Catalog OK")
			return nil
		},
	}
}

func newInitCommand(env *Env) *Command {
	return &Command{
		Name:        "init",
		Description: "Write the built-in catalog as YAML files",
		Run: func(args []string) error {
			flags := flag.NewFlagSet("init", flag.ContinueOnError)
			dir := flags.String("dir", ".", "Directory to write modules.yaml and bundles.yaml into")
			force := flags.Bool("force", false, "Overwrite existing catalog files")
			if err := flags.Parse(args); err != nil {
				return err
			}

			if !*force {
				if _, _, err := catalog.FindFiles(*dir); err == nil {
					return fmt.Errorf("catalog files already exist in %s (use -force to overwrite)", *dir)
				}
			}
			if err := os.MkdirAll(*dir, 0755); err != nil {
				return fmt.Errorf("failed to create %s: %w", *dir, err)
			}
			if err := catalog.SaveConfig(*dir, catalog.DefaultModuleConfig(), catalog.DefaultBundleConfig()); err != nil {
				return fmt.Errorf("failed to write catalog: %w", err)
			}

			env.Log.WithField("dir", *dir).Info("Wrote catalog")
			return nil
		},
	}
}
