package cli

import (
	"context"
	"strconv"

	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(d *deps) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and which files it was loaded from.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			return execPrintConfig(io, d)
		},
	}
}

func execPrintConfig(io *IO, d *deps) error {
	cfg := d.cfg

	if cfg.ManifestAbs == "" {
		io.Warn("no manifest configured", `set "manifest" in .seatnorm.json or pass --manifest`)
	} else if ok, err := d.fs.Exists(cfg.ManifestAbs); err == nil && !ok {
		io.Warn("manifest not found: "+cfg.ManifestAbs, `fix "manifest" in the config or pass --manifest`)
	}

	io.Println("effective_cwd=" + cfg.EffectiveCwd)
	io.Println("manifest=" + cfg.ManifestAbs)
	io.Println("log_level=" + cfg.LogLevel)
	io.Println("jobs=" + strconv.Itoa(cfg.EffectiveJobs))

	if cfg.HistoryFileAbs != "" {
		io.Println("history_file=" + cfg.HistoryFileAbs)
	}

	io.Println("")
	io.Println("# sources")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		io.Println("(defaults only)")
	} else {
		if cfg.Sources.Global != "" {
			io.Println("global_config=" + cfg.Sources.Global)
		}

		if cfg.Sources.Project != "" {
			io.Println("project_config=" + cfg.Sources.Project)
		}
	}

	return nil
}
