package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/seatnorm/pkg/seatmap"
)

// ResolveCmd returns the resolve command.
func ResolveCmd(d *deps) *Command {
	flags := flag.NewFlagSet("resolve", flag.ContinueOnError)
	explain := flags.BoolP("explain", "e", false, "Also print the matched section name and rule")

	return &Command{
		Flags: flags,
		Usage: "resolve [flags] <section> <row>",
		Short: "Resolve one ticket label",
		Long: `Resolve a free-text section and row against the manifest and print
section_id, row_id and valid. Absent ids print as "none". An invalid
ticket is a normal result and exits 0.`,
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execResolve(ctx, io, d, args, *explain)
		},
	}
}

func execResolve(ctx context.Context, io *IO, d *deps, args []string, explain bool) error {
	if len(args) < 2 {
		return ErrSectionRowRequired
	}

	if len(args) > 2 {
		return fmt.Errorf("%w: %q (quote labels that contain spaces)", ErrTooManyArgs, args[2:])
	}

	r, err := d.resolver(ctx)
	if err != nil {
		return err
	}

	line, err := resolveLine(r, args[0], args[1], explain)
	if err != nil {
		return err
	}

	io.Println(line)

	return nil
}

// resolveLine resolves one query and formats it as
// "section_id=10 row_id=2 valid=true", optionally followed by the
// canonical section name and match rule.
func resolveLine(r *seatmap.Resolver, section, row string, explain bool) (string, error) {
	m, ok := r.MatchSection(section)

	var res seatmap.Resolution

	if ok {
		var err error

		res, err = r.ResolveRow(m.Canonical, row)
		if err != nil {
			return "", err
		}
	}

	if !explain {
		return res.String(), nil
	}

	if !ok {
		return res.String() + " canonical=none stage=none", nil
	}

	return fmt.Sprintf("%s canonical=%q stage=%s", res, m.Canonical, m.Stage), nil
}
