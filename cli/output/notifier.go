package output

import "bookbazaar/client/port"

// Notifier adapts a Printer to the client notification interface so
// session and cart feedback lands on the terminal.
type Notifier struct {
	printer *Printer
}

// NewNotifier creates a notifier backed by the given printer
func NewNotifier(printer *Printer) *Notifier {
	return &Notifier{printer: printer}
}

// Success prints a success notification
func (n *Notifier) Success(title, description string) {
	n.printer.Success("%s", title)
	if description != "" {
		n.printer.Print("  %s", n.printer.Dim(description))
	}
}

// Error prints an error notification
func (n *Notifier) Error(title, description string) {
	n.printer.Error("%s", title)
	if description != "" {
		n.printer.Print("  %s", n.printer.Dim(description))
	}
}

var _ port.Notifier = (*Notifier)(nil)
