// Package runner provides the panic-recovery helper that runner/startStop
// uses to report panics recovered in its goroutines.
package runner

import (
	"fmt"
	"os"
	"strings"
)

// RecoveryCaller logs a recovered panic to stderr, tagged with the caller's
// identifier so the offending goroutine can be traced back. extra holds
// optional context strings (e.g. a file path) appended to the message.
func RecoveryCaller(caller string, r interface{}, extra ...string) {
	if r == nil {
		return
	}

	msg := fmt.Sprintf("panic recovered in %s: %v", caller, r)
	if len(extra) > 0 {
		msg = msg + " (" + strings.Join(extra, ", ") + ")"
	}

	_, _ = fmt.Fprintln(os.Stderr, msg)
}
