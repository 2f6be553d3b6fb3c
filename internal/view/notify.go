// internal/view/notify.go
package view

// Variant is the severity of a Notification.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a short user-facing message about the outcome of an action.
type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

// Notifier receives notifications from the views.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

type discardNotifier struct{}

func (discardNotifier) Notify(Notification) {}

func orDiscard(n Notifier) Notifier {
	if n == nil {
		return discardNotifier{}
	}
	return n
}
