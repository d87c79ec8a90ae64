package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/calvinalkan/seatnorm/internal/config"
	"github.com/calvinalkan/seatnorm/internal/fs"
	"github.com/calvinalkan/seatnorm/internal/logging"
	"github.com/calvinalkan/seatnorm/internal/manifest"
	"github.com/calvinalkan/seatnorm/pkg/seatmap"
)

// Error variables for argument handling.
var (
	ErrEmptyManifestFlag  = errors.New("manifest cannot be empty")
	ErrSectionRowRequired = errors.New("section and row are required")
	ErrInputRequired      = errors.New("input file is required")
	ErrTooManyArgs        = errors.New("too many arguments")
)

// deps is shared by all commands. It is filled in after global flags and
// config are parsed, so commands read it only from Exec.
type deps struct {
	cfg config.Config
	fs  fs.FS
	log *zap.Logger
	in  io.Reader
}

// resolver loads the configured manifest.
func (d *deps) resolver(ctx context.Context) (*seatmap.Resolver, error) {
	path, err := d.cfg.RequireManifest()
	if err != nil {
		return nil, err
	}

	idx, err := manifest.Load(ctx, d.fs, path, d.log)
	if err != nil {
		return nil, err
	}

	return seatmap.NewResolver(idx, seatmap.WithLogger(d.log)), nil
}

// abs resolves a command argument against the effective working directory.
func (d *deps) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(d.cfg.EffectiveCwd, path)
}

func commands(d *deps) []*Command {
	return []*Command{
		ResolveCmd(d),
		GradeCmd(d),
		ReplCmd(d),
		PrintConfigCmd(d),
	}
}

// Run is the main entry point. Returns exit code.
//
// A signal on sigCh cancels the running command's context. sigCh may be nil.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	d := &deps{in: in, fs: fs.NewReal(), log: zap.NewNop()}
	cmds := commands(d)

	globals := flag.NewFlagSet("seatnorm", flag.ContinueOnError)
	globals.SetInterspersed(false)
	globals.SetOutput(&strings.Builder{}) // discard pflag output

	workDir := globals.StringP("cwd", "C", "", "Run as if started in `dir`")
	configPath := globals.StringP("config", "c", "", "Use specified config `file`")
	manifestPath := globals.StringP("manifest", "m", "", "Manifest `file` (overrides config)")
	logLevel := globals.String("log-level", "", "Log `level`: debug|info|warn|error (overrides config)")
	help := globals.BoolP("help", "h", false, "Show help")

	if len(args) > 0 {
		args = args[1:]
	}

	if err := globals.Parse(args); err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut, globals, cmds)

		return 1
	}

	if *help || globals.NArg() == 0 {
		printUsage(out, globals, cmds)

		return 0
	}

	if globals.Changed("manifest") && *manifestPath == "" {
		fprintln(errOut, "error:", ErrEmptyManifestFlag)
		printUsage(errOut, globals, cmds)

		return 1
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride:  *workDir,
		ConfigPath:       *configPath,
		ManifestOverride: *manifestPath,
		LogLevelOverride: *logLevel,
		Env:              env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	log, err := logging.New(errOut, cfg.LogLevel)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	defer func() { _ = log.Sync() }()

	d.cfg = cfg
	d.log = log

	name := globals.Arg(0)

	var cmd *Command

	for _, c := range cmds {
		if c.Name() == name {
			cmd = c

			break
		}
	}

	if cmd == nil {
		fprintln(errOut, "error: unknown command:", name)
		printUsage(errOut, globals, cmds)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case sig := <-sigCh:
				log.Info("interrupted", zap.Stringer("signal", sig))
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	log.Debug("command starting",
		zap.String("command", name),
		zap.String("cwd", cfg.EffectiveCwd),
		zap.String("manifest", cfg.ManifestAbs),
	)

	o := NewIO(out, errOut)

	if code := cmd.Run(ctx, o, globals.Args()[1:]); code != 0 {
		return code
	}

	// Finish handles warnings and exit code
	return o.Finish()
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, globals *flag.FlagSet, cmds []*Command) {
	fprintln(w, `seatnorm - resolve free-text section and row labels against a venue manifest

Usage: seatnorm [global flags] <command> [args]

Global flags:`)
	fprintln(w, strings.TrimRight(globals.FlagUsages(), "\n"))
	fprintln(w)
	fprintln(w, "Commands:")

	for _, c := range cmds {
		fprintln(w, c.HelpLine())
	}

	fprintln(w)
	fprintln(w, `Run "seatnorm <command> --help" for command flags.`)
}
