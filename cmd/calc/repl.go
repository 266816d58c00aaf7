package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/session"
)

const help = `enter an expression to evaluate it; ANS is the last answer
:deg :rad     use degrees or radians for sin, cos, tan
:mode         switch between degrees and radians
:hist         list history
:clear-hist   clear history
:recall N     evaluate history entry N again
:m+ X :m- X   add X to or subtract X from memory (default ANS)
:mr :mc       show or clear memory
:sq X         square X (default ANS)
:sqrt X       square root of X
:inv X        reciprocal of X
:pct X        percentage; a+b, a-b, a*b, a/b apply b percent to a
:help :quit`

// repl dispatches lines of input to a session.
type repl struct {
	s    *session.Session
	out  io.Writer
	echo bool
	quit bool
}

// all handles each of args as a line. The result is whether every line
// succeeded.
func (r *repl) all(args []string) bool {
	ok := true
	for _, arg := range args {
		ok = r.line(arg) && ok
		if r.quit {
			break
		}
	}
	return ok
}

// lines handles each line of in until EOF or :quit.
func (r *repl) lines(in io.Reader) bool {
	ok := true
	sc := bufio.NewScanner(in)
	for !r.quit && sc.Scan() {
		ok = r.line(sc.Text()) && ok
	}
	if err := sc.Err(); err != nil {
		log.WithError(err).Error("reading input")
		return false
	}
	return ok
}

// line handles one line of input, either a command or an expression. It
// returns false if the line failed.
func (r *repl) line(text string) bool {
	text = strings.TrimSpace(text)
	switch {
	case text == "":
		return true
	case strings.HasPrefix(text, ":"):
		return r.command(text[1:])
	default:
		return r.evaluate(text)
	}
}

func (r *repl) evaluate(text string) bool {
	if r.echo {
		if a, err := calc.ParseString(text); err == nil {
			fmt.Fprintf(r.out, "%v : ", a)
		}
	}
	e, err := r.s.Evaluate(text)
	return r.result(e, err)
}

func (r *repl) result(e session.Entry, err error) bool {
	switch {
	case errors.Is(err, session.ErrStore):
		log.WithError(err).Warn("history not saved")
	case err != nil:
		log.WithError(err).Debug("evaluation failed")
		fmt.Fprintln(r.out, "error:", err)
		return false
	}
	log.WithFields(log.Fields{"expr": e.Expr, "result": e.Result}).Debug("evaluated")
	fmt.Fprintln(r.out, calc.FormatResult(e.Result))
	return true
}

func (r *repl) command(text string) bool {
	name, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "deg":
		r.s.SetMode(calc.Degrees)
		fmt.Fprintln(r.out, r.s.Mode())
	case "rad":
		r.s.SetMode(calc.Radians)
		fmt.Fprintln(r.out, r.s.Mode())
	case "mode":
		fmt.Fprintln(r.out, r.s.ToggleMode())
	case "hist":
		for i, e := range r.s.History() {
			fmt.Fprintf(r.out, "%d %v\n", i+1, e)
		}
	case "clear-hist":
		if err := r.s.ClearHistory(); err != nil {
			log.WithError(err).Error("clearing history")
			return false
		}
	case "recall":
		n, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(r.out, "error: :recall needs an entry number, not %q\n", arg)
			return false
		}
		expr, err := r.s.Recall(n - 1)
		if err != nil {
			fmt.Fprintln(r.out, "error:", err)
			return false
		}
		fmt.Fprintln(r.out, expr)
		return r.evaluate(expr)
	case "m+", "m-":
		if arg == "" {
			arg = strconv.FormatFloat(r.s.Ans(), 'g', -1, 64)
		}
		f := r.s.MemoryAdd
		if name == "m-" {
			f = r.s.MemorySub
		}
		m, err := f(arg)
		if err != nil {
			fmt.Fprintln(r.out, "error:", err)
			return false
		}
		fmt.Fprintln(r.out, "memory:", calc.FormatResult(m))
	case "mr":
		fmt.Fprintln(r.out, calc.FormatResult(r.s.MemoryRecall()))
	case "mc":
		r.s.MemoryClear()
		fmt.Fprintln(r.out, "memory cleared")
	case "sq", "sqrt", "inv", "pct":
		if arg == "" {
			arg = "ANS"
		}
		var f func(string) (session.Entry, error)
		switch name {
		case "sq":
			f = r.s.Square
		case "sqrt":
			f = r.s.Sqrt
		case "inv":
			f = r.s.Reciprocal
		default:
			f = r.s.Percent
		}
		e, err := f(arg)
		return r.result(e, err)
	case "help":
		fmt.Fprintln(r.out, help)
	case "quit", "q":
		r.quit = true
	default:
		fmt.Fprintf(r.out, "error: unknown command :%s; try :help\n", name)
		return false
	}
	return true
}

// interactive runs a line editor on the terminal until EOF or :quit.
func interactive(r *repl) bool {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		log.WithError(err).Warn("cannot use raw terminal")
		return r.lines(os.Stdin)
	}
	defer term.Restore(fd, state)
	screen := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}
	t := term.NewTerminal(screen, "")
	// The terminal translates newlines for raw mode.
	r.out = t
	log.SetOutput(t)
	defer log.SetOutput(os.Stderr)
	ok := true
	for !r.quit {
		t.SetPrompt(prompt(r.s.Mode()))
		line, err := t.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			log.WithError(err).Error("reading input")
			return false
		}
		ok = r.line(line) && ok
	}
	return ok
}

func prompt(mode calc.AngleMode) string {
	if mode == calc.Degrees {
		return "deg> "
	}
	return "rad> "
}
