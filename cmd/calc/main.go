// Command calc evaluates arithmetic expressions without executing arbitrary
// code. Given expressions as arguments, it prints the result of each. With no
// arguments, it reads one expression per line from standard input, as an
// interactive calculator when standard input is a terminal.
package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "calc [flags] [expression...]",
	Short: "A safe calculator.",
	Long: `Evaluate arithmetic expressions with + - * / % ** ^, parentheses, the
constants pi and e, and the functions sin cos tan log ln sqrt abs floor ceil
factorial. Trigonometric functions use degrees unless --radians is given.
Put expressions that begin with - after -- so they are not read as flags.`,
	Args: cobra.ArbitraryArgs,
	Run:  runCalc,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or clear the persisted history.",
	Args:  cobra.NoArgs,
	Run:   runHistory,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

func init() {
	rootCmd.Flags().BoolP("radians", "r", false, "interpret trigonometric arguments as radians")
	rootCmd.Flags().BoolP("echo", "e", false, "print parse trees")
	rootCmd.PersistentFlags().String("history", "", "database file to persist history in (empty disables)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	historyCmd.Flags().Bool("clear", false, "remove all history")
	rootCmd.AddCommand(historyCmd)
}

func runCalc(cmd *cobra.Command, args []string) {
	if getFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	mode := calc.Degrees
	if getFlag(cmd, "radians") {
		mode = calc.Radians
	}
	opts := []session.Option{session.WithMode(mode)}
	st := openStore(cmd)
	if st != nil {
		opts = append(opts, session.WithStore(st))
	}
	s, err := session.New(opts...)
	if err != nil {
		log.WithError(err).Warn("history not loaded")
		s, _ = session.New(session.WithMode(mode))
	}
	r := &repl{s: s, out: os.Stdout, echo: getFlag(cmd, "echo")}
	var ok bool
	switch {
	case len(args) > 0:
		ok = r.all(args)
	case term.IsTerminal(int(os.Stdin.Fd())):
		ok = interactive(r)
	default:
		ok = r.lines(os.Stdin)
	}
	if st != nil {
		if err := st.Close(); err != nil {
			log.WithError(err).Error("closing history")
		}
	}
	if !ok {
		os.Exit(1)
	}
}

func runHistory(cmd *cobra.Command, args []string) {
	if getFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	st := openStore(cmd)
	if st == nil {
		fmt.Println("no history file given; use --history")
		os.Exit(2)
	}
	err := listHistory(os.Stdout, st, getFlag(cmd, "clear"))
	if cerr := st.Close(); cerr != nil {
		log.WithError(cerr).Error("closing history")
	}
	if err != nil {
		log.WithError(err).Error("history")
		os.Exit(1)
	}
}

// listHistory writes the stored history to w, one numbered entry per line,
// or clears it if wipe is set.
func listHistory(w io.Writer, st *session.Store, wipe bool) error {
	if wipe {
		log.WithField("path", st.Path()).Debug("clearing history")
		return st.Clear()
	}
	h, err := st.Load()
	if err != nil {
		return err
	}
	for i, e := range h {
		fmt.Fprintf(w, "%d %v\n", i+1, e)
	}
	return nil
}

// openStore opens the history database named by the --history flag, or
// returns nil if there is none. Failing to open it is fatal.
func openStore(cmd *cobra.Command) *session.Store {
	path := getString(cmd, "history")
	if path == "" {
		return nil
	}
	st, err := session.OpenStore(path)
	if err != nil {
		log.WithError(err).Error("cannot use history")
		os.Exit(1)
	}
	log.WithField("path", path).Debug("opened history")
	return st
}

// Get an expected flag, or exit if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

// Get an expected string flag, or exit if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}
