package cli

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/keystonecrm/planner/pkg/dependencies"
	"github.com/keystonecrm/planner/pkg/pricing"
	"github.com/keystonecrm/planner/pkg/selection"
)

// ErrInvalidSelection is returned by validate when the selection has violations
var ErrInvalidSelection = errors.New("selection is not valid")

// splitIDs accepts module ids as separate arguments, comma-separated, or both
func splitIDs(args []string) []string {
	var ids []string
	for _, arg := range args {
		for _, id := range strings.Split(arg, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func newClosureCommand(env *Env) *Command {
	return &Command{
		Name:        "closure",
		Description: "Resolve module ids to a selection with all requirements",
		Run: func(args []string) error {
			flags := flag.NewFlagSet("closure", flag.ContinueOnError)
			cf := addCatalogFlags(flags)
			if err := flags.Parse(args); err != nil {
				return err
			}

			e, err := cf.load(env)
			if err != nil {
				return err
			}

			ids := splitIDs(flags.Args())
			closure, err := e.Resolver().Closure(ids)
			if err != nil {
				return err
			}

			requested := make(map[string]bool, len(ids))
			for _, id := range ids {
				requested[id] = true
			}
			for _, id := range closure {
				if requested[id] {
					fmt.Fprintln(env.Out, id)
				} else {
					fmt.Fprintf(env.Out, "%s (required)\n", id)
				}
			}
			return nil
		},
	}
}

func newQuoteCommand(env *Env) *Command {
	return &Command{
		Name:        "quote",
		Description: "Price a selection or a bundle",
		Run: func(args []string) error {
			flags := flag.NewFlagSet("quote", flag.ContinueOnError)
			cf := addCatalogFlags(flags)
			bundleID := flags.String("bundle", "", "Price this bundle instead of module ids")
			resolve := flags.Bool("resolve", true, "Add requirements of the given modules before pricing")
			asJSON := flags.Bool("json", false, "Print the full evaluation as JSON")
			if err := flags.Parse(args); err != nil {
				return err
			}

			e, err := cf.load(env)
			if err != nil {
				return err
			}

			var sel selection.Selection
			if *bundleID != "" {
				b, err := e.GetBundle(*bundleID)
				if err != nil {
					return err
				}
				sel = selection.Selection{ModuleIDs: b.Modules, Mode: selection.ModeBundle, BundleID: b.ID}
			} else {
				ids := splitIDs(flags.Args())
				if *resolve {
					if ids, err = e.Resolver().Closure(ids); err != nil {
						return err
					}
				}
				sel = selection.Selection{ModuleIDs: ids, Mode: selection.ModeCustom}
			}

			out := e.Evaluate(sel)
			if *asJSON {
				enc := json.NewEncoder(env.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			printQuote(env, out)
			return nil
		},
	}
}

func printQuote(env *Env, out selection.Outcome) {
	q := out.Quote
	tw := tabwriter.NewWriter(env.Out, 0, 4, 2, ' ', 0)
	for _, line := range q.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", line.ModuleID, line.Name, pricing.FormatCents(line.PriceCents, q.Currency))
	}
	if q.BundleID != "" {
		fmt.Fprintf(tw, "\tList price\t%s\n", pricing.FormatCents(q.ListPriceCents, q.Currency))
		fmt.Fprintf(tw, "\tBundle %s\t%s\n", q.BundleID, pricing.FormatCents(q.TotalCents, q.Currency))
		fmt.Fprintf(tw, "\tYou save\t%s\n", pricing.FormatCents(q.SavingsCents, q.Currency))
	} else {
		fmt.Fprintf(tw, "\tTotal\t%s\n", pricing.FormatCents(q.TotalCents, q.Currency))
	}
	tw.Flush()

	for _, v := range out.Validation.Violations {
		env.Log.Warn(v.String())
	}
}

func newValidateCommand(env *Env) *Command {
	return &Command{
		Name:        "validate",
		Description: "Check that a selection satisfies every requirement",
		Run: func(args []string) error {
			flags := flag.NewFlagSet("validate", flag.ContinueOnError)
			cf := addCatalogFlags(flags)
			if err := flags.Parse(args); err != nil {
				return err
			}

			e, err := cf.load(env)
			if err != nil {
				return err
			}

			result := e.Validator().Validate(splitIDs(flags.Args()))
			if result.Valid {
				fmt.Fprintln(env.Out, result.Summary())
				return nil
			}
			for _, v := range result.Violations {
				fmt.Fprintln(env.Out, v.String())
			}
			return fmt.Errorf("%w: %d violation(s)", ErrInvalidSelection, len(result.Violations))
		},
	}
}

func newGraphCommand(env *Env) *Command {
	return &Command{
		Name:        "graph",
		Description: "Print the requirement graph as Cytoscape JSON",
		Run: func(args []string) error {
			flags := flag.NewFlagSet("graph", flag.ContinueOnError)
			cf := addCatalogFlags(flags)
			if err := flags.Parse(args); err != nil {
				return err
			}

			e, err := cf.load(env)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(env.Out)
			enc.SetIndent("", "  ")
			return enc.Encode(dependencies.BuildCytoscapeGraph(e.Resolver(), splitIDs(flags.Args())))
		},
	}
}
