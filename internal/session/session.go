// Package session keeps the state of an interactive calculator: the last
// answer, a memory register, the angle mode, and a history of evaluations
// that can optionally be persisted.
package session

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/zephyrtronium/calc"
)

var (
	// ErrEmpty is returned for input with nothing to evaluate.
	ErrEmpty = errors.New("empty expression")
	// ErrNotNumber is returned when a memory operand is not a plain number.
	ErrNotNumber = errors.New("not a number to use with memory")
	// ErrNoEntry is returned when recalling a history entry that does not
	// exist.
	ErrNoEntry = errors.New("no such history entry")
	// ErrStore wraps failures to persist history. The evaluation itself
	// succeeded when an error is ErrStore.
	ErrStore = errors.New("history store")
)

// ansName is the token replaced with the last answer.
const ansName = "ANS"

// Session is the state of one calculator. It is not safe for concurrent use.
type Session struct {
	mode    calc.AngleMode
	ans     float64
	memory  float64
	history []Entry
	store   *Store
	now     func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithMode sets the initial angle mode. The default is degrees.
func WithMode(mode calc.AngleMode) Option {
	return func(s *Session) {
		s.mode = mode
	}
}

// WithStore persists history to st. The session does not close it.
func WithStore(st *Store) Option {
	return func(s *Session) {
		s.store = st
	}
}

// WithClock sets the function used to timestamp history entries.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New creates a session. If it has a store, history is loaded from it, and
// ANS starts as the last stored result.
func New(opts ...Option) (*Session, error) {
	s := &Session{
		mode: calc.Degrees,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store != nil {
		h, err := s.store.Load()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStore, err)
		}
		s.history = h
		if len(h) > 0 {
			s.ans = h[len(h)-1].Result
		}
	}
	return s, nil
}

// Evaluate evaluates text in the current mode, with ANS replaced by the last
// answer. On success, the result becomes the new answer and is added to the
// history. On failure, the session is unchanged.
func (s *Session) Evaluate(text string) (Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Entry{}, ErrEmpty
	}
	return s.eval(text, text)
}

// eval evaluates src and records it in history as expr.
func (s *Session) eval(expr, src string) (Entry, error) {
	r, err := calc.EvalString(s.substitute(src), s.mode)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{Time: s.now(), Expr: expr, Result: r}
	s.history = append(s.history, e)
	s.ans = r
	if s.store != nil {
		if err := s.store.Append(e); err != nil {
			return e, fmt.Errorf("%w: %w", ErrStore, err)
		}
	}
	return e, nil
}

// substitute replaces each ANS identifier in src with the last answer.
// Identifiers that merely contain ANS are left alone.
func (s *Session) substitute(src string) string {
	if !strings.Contains(src, ansName) {
		return src
	}
	lit := literal(s.ans)
	var b strings.Builder
	// off is the start of the unscanned part of src.
	off := 0
	for {
		i := strings.Index(src[off:], ansName)
		if i < 0 {
			b.WriteString(src[off:])
			return b.String()
		}
		i += off
		j := i + len(ansName)
		if identRune(lastRune(src[:i])) || identRune(firstRune(src[j:])) {
			b.WriteString(src[off:j])
		} else {
			b.WriteString(src[off:i])
			b.WriteString(lit)
		}
		off = j
	}
}

// literal renders x as parenthesized expression text that evaluates to x.
func literal(x float64) string {
	switch {
	case math.IsNaN(x):
		return "(1e999-1e999)"
	case math.IsInf(x, 1):
		return "(1e999)"
	case math.IsInf(x, -1):
		return "(-1e999)"
	}
	return "(" + calc.FormatResult(x) + ")"
}

func identRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return -1
}

func lastRune(s string) rune {
	if s == "" {
		return -1
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

// Square evaluates (text)**2.
func (s *Session) Square(text string) (Entry, error) {
	return s.unary(text, func(x string) string { return "(" + x + ")**2" })
}

// Sqrt evaluates sqrt(text).
func (s *Session) Sqrt(text string) (Entry, error) {
	return s.unary(text, func(x string) string { return "sqrt(" + x + ")" })
}

// Reciprocal evaluates 1/(text).
func (s *Session) Reciprocal(text string) (Entry, error) {
	return s.unary(text, func(x string) string { return "1/(" + x + ")" })
}

// Percent applies a percentage to text. If text contains a binary +, -, *, or
// / outside parentheses, the last one splits it into a base a and a percentage
// b: a+b% is a increased by b percent, a-b% is a decreased by b percent, a*b%
// is b percent of a, and a/b% is a divided by b percent. Otherwise, text is
// the percentage itself, and the result is text/100.
func (s *Session) Percent(text string) (Entry, error) {
	return s.unary(text, percent)
}

func (s *Session) unary(text string, rewrite func(string) string) (Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Entry{}, ErrEmpty
	}
	expr := rewrite(text)
	return s.eval(expr, expr)
}

func percent(x string) string {
	i := splitPercent(x)
	if i < 0 {
		return "(" + x + ")/100"
	}
	a, b := strings.TrimSpace(x[:i]), strings.TrimSpace(x[i+1:])
	switch x[i] {
	case '+':
		return "(" + a + ") + (" + a + ")*((" + b + ")/100)"
	case '-':
		return "(" + a + ") - (" + a + ")*((" + b + ")/100)"
	case '*':
		return "(" + a + ")*((" + b + ")/100)"
	default:
		return "(" + a + ")/((" + b + ")/100)"
	}
}

// splitPercent finds the byte index of the last binary +, -, *, or / in x
// that is not inside parentheses, or -1 if there is none. Signs, exponent
// markers in numbers, and ** do not count.
func splitPercent(x string) int {
	depth := 0
	for i := len(x) - 1; i > 0; i-- {
		switch c := x[i]; c {
		case ')':
			depth++
		case '(':
			depth--
		case '+', '-', '*', '/':
			if depth != 0 {
				continue
			}
			if c == '*' && (x[i-1] == '*' || i+1 < len(x) && x[i+1] == '*') {
				continue
			}
			p := strings.TrimRightFunc(x[:i], unicode.IsSpace)
			if p == "" || strings.ContainsRune("+-*/%^(,", rune(p[len(p)-1])) {
				// Unary sign.
				continue
			}
			if (c == '+' || c == '-') && exponent(p) {
				continue
			}
			return i
		}
	}
	return -1
}

// exponent returns whether p ends in a number's exponent marker, as in the
// text before the sign of 1e-5.
func exponent(p string) bool {
	n := len(p)
	if n < 2 || (p[n-1] != 'e' && p[n-1] != 'E') {
		return false
	}
	// The marker must follow the digits of a number, not a name like "e".
	i := n - 1
	for i > 0 && (p[i-1] >= '0' && p[i-1] <= '9' || p[i-1] == '.') {
		i--
	}
	return i < n-1 && (i == 0 || !identRune(rune(p[i-1])))
}

// Ans returns the last answer.
func (s *Session) Ans() float64 {
	return s.ans
}

// MemoryAdd adds the number in text to memory and returns the new memory
// value. Empty text counts as zero.
func (s *Session) MemoryAdd(text string) (float64, error) {
	x, err := operand(text)
	if err != nil {
		return s.memory, err
	}
	s.memory += x
	return s.memory, nil
}

// MemorySub subtracts the number in text from memory and returns the new
// memory value. Empty text counts as zero.
func (s *Session) MemorySub(text string) (float64, error) {
	x, err := operand(text)
	if err != nil {
		return s.memory, err
	}
	s.memory -= x
	return s.memory, nil
}

// MemoryRecall returns the memory value.
func (s *Session) MemoryRecall() float64 {
	return s.memory
}

// MemoryClear sets memory to zero.
func (s *Session) MemoryClear() {
	s.memory = 0
}

func operand(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, text)
	}
	return x, nil
}

// Mode returns the angle mode used for trigonometric functions.
func (s *Session) Mode() calc.AngleMode {
	return s.mode
}

// SetMode sets the angle mode.
func (s *Session) SetMode(mode calc.AngleMode) {
	s.mode = mode
}

// ToggleMode switches between degrees and radians and returns the new mode.
func (s *Session) ToggleMode() calc.AngleMode {
	s.mode = !s.mode
	return s.mode
}

// History returns a copy of the history, oldest first.
func (s *Session) History() []Entry {
	return append([]Entry(nil), s.history...)
}

// Recall returns the expression of the history entry at index i, oldest
// first, for editing and evaluating again.
func (s *Session) Recall(i int) (string, error) {
	if i < 0 || i >= len(s.history) {
		return "", fmt.Errorf("%w: %d", ErrNoEntry, i)
	}
	return s.history[i].Expr, nil
}

// ClearHistory removes all history, including persisted history.
func (s *Session) ClearHistory() error {
	s.history = nil
	if s.store != nil {
		if err := s.store.Clear(); err != nil {
			return fmt.Errorf("%w: %w", ErrStore, err)
		}
	}
	return nil
}
