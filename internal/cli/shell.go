package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/mattn/go-shellwords"

	"todo-list/internal/errors"
)

const shellPrompt = "> "

// freeTextCommands take the rest of the line verbatim after the given
// number of leading words.
var freeTextCommands = map[string]int{
	"add":  0,
	"find": 0,
	"edit": 1,
}

// Shell runs an interactive, line-oriented session against an App
type Shell struct {
	app          *App
	in           io.Reader
	interactive  bool
	errorHandler *ErrorHandler
}

// NewShell creates a shell reading commands from in. The banner and prompt
// are only written when interactive is set.
func NewShell(app *App, in io.Reader, interactive bool) *Shell {
	return &Shell{
		app:          app,
		in:           in,
		interactive:  interactive,
		errorHandler: NewErrorHandler(),
	}
}

// Run reads commands until exit, end of input or ctx is done. Command
// failures are printed as one-line diagnostics and the session continues.
func (s *Shell) Run(ctx context.Context) error {
	out := s.app.out
	if s.interactive {
		fmt.Fprintln(out, "Todo List Application")
		fmt.Fprintf(out, "Commands: %s, help, exit\n", strings.Join(s.app.registry.Names(), ", "))
	}

	scanner := bufio.NewScanner(s.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.interactive {
			fmt.Fprint(out, shellPrompt)
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		name, rest, _ := strings.Cut(line, " ")
		switch strings.ToLower(name) {
		case "exit", "quit":
			return nil
		case "help":
			fmt.Fprintln(out, s.app.registry.GetUsage())
			continue
		}

		args, err := splitArgs(name, rest)
		if err == nil {
			err = s.app.Run(ctx, append([]string{name}, args...))
		}
		if err != nil {
			fmt.Fprintf(out, "Error: %s\n", s.errorHandler.HandleSimple(err))
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.NewIOError("read", "input", err)
	}
	return nil
}

// splitArgs turns the text after a command name into arguments. Titles and
// search terms are kept as typed; other commands use shell-style quoting so
// paths may contain spaces.
func splitArgs(name, rest string) ([]string, error) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, nil
	}

	if leading, ok := freeTextCommands[strings.ToLower(name)]; ok {
		return splitLeading(rest, leading), nil
	}

	parser := shellwords.NewParser()
	args, err := parser.Parse(rest)
	if err != nil {
		return nil, errors.NewInvalidInputError("arguments", rest, err.Error())
	}
	if parser.Position >= 0 {
		return nil, errors.NewInvalidInputError("arguments", rest, "quote arguments containing ; & | < or >")
	}
	return args, nil
}

// splitLeading splits off n whitespace-separated words and returns the
// remainder unchanged as the last argument.
func splitLeading(s string, n int) []string {
	args := make([]string, 0, n+1)
	for i := 0; i < n; i++ {
		end := strings.IndexFunc(s, unicode.IsSpace)
		if end < 0 {
			break
		}
		args = append(args, s[:end])
		s = strings.TrimLeftFunc(s[end:], unicode.IsSpace)
	}
	return append(args, s)
}
