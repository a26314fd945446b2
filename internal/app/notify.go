package app

import "log/slog"

// Notifier delivers session-completion messages to the user. Errors are
// logged and otherwise ignored.
type Notifier interface {
	Notify(title, body string, silent bool) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(title, body string, silent bool) error

func (f NotifierFunc) Notify(title, body string, silent bool) error {
	return f(title, body, silent)
}

// LogNotifier writes notifications to a logger. It is the fallback when no
// interactive surface is attached.
type LogNotifier struct {
	Log *slog.Logger
}

func (n LogNotifier) Notify(title, body string, silent bool) error {
	n.Log.Info("notification", "title", title, "body", body, "silent", silent)
	return nil
}
