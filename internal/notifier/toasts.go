package notifier

import (
	"sort"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/xid"

	"lotdesk/internal/domain/entity"
)

// DefaultToastTTL matches the dashboard's toast display window.
const DefaultToastTTL = 2800 * time.Millisecond

// ToastQueue holds transient operator notifications. Each toast expires on
// its own timer; eviction is handled by a single periodic sweep (the cache
// janitor), not one goroutine per toast. There is no depth cap.
type ToastQueue struct {
	store *cache.Cache
}

func NewToastQueue(ttl time.Duration) *ToastQueue {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}

	sweep := ttl / 2
	if sweep < 10*time.Millisecond {
		sweep = 10 * time.Millisecond
	}

	return &ToastQueue{
		store: cache.New(ttl, sweep),
	}
}

// Push enqueues a toast and schedules its expiry. The xid is k-sortable,
// so listing order equals push order.
func (q *ToastQueue) Push(message string, toastType entity.ToastType) entity.Toast {
	toast := entity.Toast{
		ID:      xid.New().String(),
		Message: message,
		Type:    toastType,
	}

	q.store.SetDefault(toast.ID, toast)

	return toast
}

// List returns the unexpired toasts in push order.
func (q *ToastQueue) List() []entity.Toast {
	items := q.store.Items()

	toasts := make([]entity.Toast, 0, len(items))

	for _, item := range items {
		toast, ok := item.Object.(entity.Toast)
		if !ok {
			continue
		}

		toasts = append(toasts, toast)
	}

	sort.Slice(toasts, func(i, j int) bool {
		return toasts[i].ID < toasts[j].ID
	})

	return toasts
}

// Flush drops all toasts regardless of remaining TTL.
func (q *ToastQueue) Flush() {
	q.store.Flush()
}
