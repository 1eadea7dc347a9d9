package session

import "log/slog"

// Option configures a Session during creation.
//
// Example:
//
//	s := session.New(32, 32,
//	    session.WithLogger(slog.Default()),
//	    session.WithHistoryLimit(200))
type Option func(*options)

type options struct {
	logger       *slog.Logger
	historyLimit int
	id           string
}

// WithLogger overrides the package logger for this session.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithHistoryLimit caps the undo depth. Zero, the default, keeps every
// snapshot.
func WithHistoryLimit(n int) Option {
	return func(o *options) {
		o.historyLimit = n
	}
}

// WithID sets the session identifier instead of a random UUID.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}
