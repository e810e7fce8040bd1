package automaton

import "log/slog"

var logger = slog.New(slog.DiscardHandler)

// SetLogger installs the logger used for debug records of determinization, minimization and
// epsilon elimination. A nil logger restores the default, which discards everything.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger = l
}
