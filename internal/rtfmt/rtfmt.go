// Package rtfmt wraps fmt's writer helpers with an error hook so CLI
// code can report failed writes to a logger instead of dropping them.
package rtfmt

import (
	"fmt"
	"io"
)

// ErrorHandler receives write errors from the Fprint helpers. A nil
// handler silences them; the error is still returned.
type ErrorHandler func(error)

// LogHandler adapts a printf-style logger into an ErrorHandler.
func LogHandler(logf func(string, ...interface{}), format string) ErrorHandler {
	if logf == nil {
		return nil
	}
	return func(err error) {
		logf(format, err)
	}
}

func Fprintf(w io.Writer, format string, onErr ErrorHandler, args ...interface{}) error {
	_, err := fmt.Fprintf(w, format, args...)
	if err != nil && onErr != nil {
		onErr(err)
	}
	return err
}

func Fprintln(w io.Writer, onErr ErrorHandler, args ...interface{}) error {
	_, err := fmt.Fprintln(w, args...)
	if err != nil && onErr != nil {
		onErr(err)
	}
	return err
}
