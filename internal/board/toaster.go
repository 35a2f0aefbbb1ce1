package board

import "time"

// ToastKind distinguishes success notices from error notices.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is one transient notification.
type Toast struct {
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
}

const (
	maxToasts = 5
	toastTTL  = 4 * time.Second
)

// Toaster keeps a bounded queue of recent notifications. The oldest toast is
// dropped when the queue is full, and expired toasts disappear on read.
type Toaster struct {
	toasts []Toast
	now    func() time.Time
}

// NewToaster creates an empty toaster.
func NewToaster() *Toaster {
	return &Toaster{now: time.Now}
}

// Success enqueues a success notice.
func (t *Toaster) Success(message string) { t.push(message, ToastSuccess) }

// Error enqueues an error notice.
func (t *Toaster) Error(message string) { t.push(message, ToastError) }

func (t *Toaster) push(message string, kind ToastKind) {
	t.toasts = append(t.toasts, Toast{Message: message, Kind: kind, CreatedAt: t.now()})
	if len(t.toasts) > maxToasts {
		t.toasts = t.toasts[len(t.toasts)-maxToasts:]
	}
}

// Active returns the unexpired toasts, oldest first, and prunes the rest.
func (t *Toaster) Active() []Toast {
	cutoff := t.now().Add(-toastTTL)
	live := t.toasts[:0]
	for _, toast := range t.toasts {
		if toast.CreatedAt.After(cutoff) {
			live = append(live, toast)
		}
	}
	t.toasts = live
	out := make([]Toast, len(live))
	copy(out, live)
	return out
}
