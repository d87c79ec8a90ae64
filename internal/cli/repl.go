package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/calvinalkan/seatnorm/pkg/seatmap"
)

const replPrompt = "seatnorm> "

// ReplCmd returns the repl command.
func ReplCmd(d *deps) *Command {
	return &Command{
		Flags: flag.NewFlagSet("repl", flag.ContinueOnError),
		Usage: "repl",
		Short: "Resolve labels interactively",
		Long: `Read "<section>, <row>" lines and print each resolution with the
matched section name and rule. The row is everything after the last comma.

On a terminal the prompt supports line editing, section name completion
and history. Otherwise lines are read from stdin until EOF.

Type "help" for usage, "quit" to leave.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execRepl(ctx, o, d, args)
		},
	}
}

type repl struct {
	o *IO
	d *deps
	r *seatmap.Resolver
}

func execRepl(ctx context.Context, o *IO, d *deps, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: %q", ErrTooManyArgs, args)
	}

	r, err := d.resolver(ctx)
	if err != nil {
		return err
	}

	rp := &repl{o: o, d: d, r: r}

	if f, ok := d.in.(*os.File); ok && isTerminal(f.Fd()) {
		return rp.interactive(ctx)
	}

	return rp.script(ctx)
}

// script reads queries from non-terminal input.
func (rp *repl) script(ctx context.Context) error {
	if rp.d.in == nil {
		return nil
	}

	scanner := bufio.NewScanner(rp.d.in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if rp.handle(scanner.Text()) {
			return nil
		}
	}

	return scanner.Err()
}

// interactive runs a line-edited prompt with history.
func (rp *repl) interactive(ctx context.Context) error {
	state := liner.NewLiner()
	defer func() { _ = state.Close() }()

	state.SetCtrlCAborts(true)
	state.SetCompleter(rp.complete)

	history := rp.d.cfg.HistoryFileAbs
	if history != "" {
		if f, err := rp.d.fs.Open(history); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}

	rp.o.Printf("seatnorm repl (%s)\n", rp.r.Index())
	rp.o.Println(`Type "help" for usage.`)

	for ctx.Err() == nil {
		line, err := state.Prompt(replPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		if strings.TrimSpace(line) != "" {
			state.AppendHistory(line)
		}

		if rp.handle(line) {
			break
		}
	}

	rp.saveHistory(state, history)

	return nil
}

func (rp *repl) saveHistory(state *liner.State, path string) {
	if path == "" {
		return
	}

	var buf bytes.Buffer

	if _, err := state.WriteHistory(&buf); err != nil {
		rp.d.log.Warn("cannot save history", zap.String("path", path), zap.Error(err))

		return
	}

	if err := rp.d.fs.WriteFileAtomic(path, buf.Bytes(), 0o600); err != nil {
		rp.d.log.Warn("cannot save history", zap.String("path", path), zap.Error(err))
	}
}

// complete offers canonical section names that start with the typed text.
func (rp *repl) complete(line string) []string {
	prefix := strings.ToLower(strings.TrimLeft(line, " "))

	var out []string

	for _, name := range rp.r.Index().Sections() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}

	return out
}

// handle processes one input line. Returns true when the user asked to quit.
func (rp *repl) handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	switch strings.ToLower(line) {
	case "exit", "quit", "q":
		return true
	case "help", "?":
		rp.printHelp()

		return false
	}

	section, row, ok := splitQuery(line)
	if !ok {
		rp.o.ErrPrintln(fmt.Sprintf("error: expected \"<section>, <row>\", got %q", line))

		return false
	}

	out, err := resolveLine(rp.r, section, row, true)
	if err != nil {
		rp.o.ErrPrintln("error:", err)

		return false
	}

	rp.o.Println(out)

	return false
}

func (rp *repl) printHelp() {
	rp.o.Println(`Enter "<section>, <row>", for example: Box Level 6, A
The row is everything after the last comma.

Commands:
  help, ?           Show this help
  quit, exit, q     Leave`)
}

// splitQuery splits "section, row" at the last comma.
func splitQuery(line string) (string, string, bool) {
	i := strings.LastIndex(line, ",")
	if i < 0 {
		return "", "", false
	}

	section := strings.TrimSpace(line[:i])
	row := strings.TrimSpace(line[i+1:])

	if section == "" || row == "" {
		return "", "", false
	}

	return section, row, true
}
