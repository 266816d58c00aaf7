package session

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/zephyrtronium/calc"
)

// Entry is one successful evaluation.
type Entry struct {
	// Time is when the evaluation happened.
	Time time.Time
	// Expr is the text the user entered, before ANS was substituted.
	Expr string
	// Result is the value of Expr.
	Result float64
}

// String formats the entry as "[HH:MM:SS] expr = result".
func (e Entry) String() string {
	return "[" + e.Time.Format(time.TimeOnly) + "] " + e.Expr + " = " + calc.FormatResult(e.Result)
}

// entryJSON is the stored form of an Entry. Results are text so that
// infinities survive the trip.
type entryJSON struct {
	Time   time.Time `json:"time"`
	Expr   string    `json:"expr"`
	Result string    `json:"result"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		Time:   e.Time,
		Expr:   e.Expr,
		Result: strconv.FormatFloat(e.Result, 'g', -1, 64),
	})
}

func (e *Entry) UnmarshalJSON(b []byte) error {
	var j entryJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	r, err := strconv.ParseFloat(j.Result, 64)
	if err != nil {
		return err
	}
	*e = Entry{Time: j.Time, Expr: j.Expr, Result: r}
	return nil
}
