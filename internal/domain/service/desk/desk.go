package desk

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"lotdesk/internal/domain"
	"lotdesk/internal/domain/entity"
	"lotdesk/internal/domain/service/lots"
	"lotdesk/internal/notifier"
	"lotdesk/pkg/contextx"
	"lotdesk/pkg/errcodes"
	"lotdesk/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var actionsTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "lotdesk_actions_total",
		Help: "Accept/reject/notify actions by outcome.",
	},
	[]string{"action", "outcome"},
)

// SupplierGateway is the remote side of the action pipeline.
type SupplierGateway interface {
	AcceptLot(ctx context.Context, id entity.LotID, marginPercent float64) error
	RejectLot(ctx context.Context, id entity.LotID) error
	NotifySuppliers(ctx context.Context) error
}

// Desk owns the view state of the dashboard: the full lot collection, the
// two filter values, the status line and the in-flight action flags. The
// poller and the action pipeline are the only writers; everything else
// reads through Page.
type Desk struct {
	gateway SupplierGateway
	toasts  *notifier.ToastQueue

	mu             sync.Mutex
	allLots        []entity.Lot
	statusFilter   string
	supplierFilter string
	statusMessage  string
	statusError    bool
	busyLots       map[entity.LotID]struct{}
	notifyBusy     bool
}

func New(gateway SupplierGateway, toasts *notifier.ToastQueue) *Desk {
	return &Desk{
		gateway:      gateway,
		toasts:       toasts,
		allLots:      []entity.Lot{},
		statusFilter: lots.FilterAll,
		busyLots:     map[entity.LotID]struct{}{},
	}
}

// Page is a consistent snapshot of everything a collaborator UI renders.
type Page struct {
	Lots           []entity.Lot
	Total          int
	StatusMessage  string
	StatusError    bool
	StatusFilter   string
	SupplierFilter string
	BusyLots       map[entity.LotID]bool
	NotifyBusy     bool
}

func (d *Desk) Page() Page {
	d.mu.Lock()
	defer d.mu.Unlock()

	busy := make(map[entity.LotID]bool, len(d.busyLots))
	for id := range d.busyLots {
		busy[id] = true
	}

	return Page{
		Lots:           lots.Visible(d.allLots, d.statusFilter, d.supplierFilter),
		Total:          len(d.allLots),
		StatusMessage:  d.statusMessage,
		StatusError:    d.statusError,
		StatusFilter:   d.statusFilter,
		SupplierFilter: d.supplierFilter,
		BusyLots:       busy,
		NotifyBusy:     d.notifyBusy,
	}
}

func (d *Desk) Toasts() []entity.Toast {
	return d.toasts.List()
}

// ApplyPoll fully replaces the collection with the cycle's result and
// clears the standing error flag. No merging, no diffing.
func (d *Desk) ApplyPoll(fetched []entity.Lot) {
	if fetched == nil {
		fetched = []entity.Lot{}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.allLots = fetched
	d.statusError = false
	d.refreshCountsLocked()
}

// PollFailed reports a failed cycle. The collection is left untouched;
// the next scheduled tick is the retry.
func (d *Desk) PollFailed(err error) {
	message := "failed to load lots: " + err.Error()
	if domain.HasCode(err, errcodes.ParseError) {
		message = "failed to parse lots feed"
	}

	d.mu.Lock()
	d.statusMessage = message
	d.statusError = true
	d.mu.Unlock()

	d.toasts.Push(message, entity.ToastError)
}

// SetFilters updates both filter values and recomputes the count line.
func (d *Desk) SetFilters(statusFilter, supplierFilter string) error {
	if !lots.StatusFilterAllowed(statusFilter) {
		return domain.NewError(errcodes.InvalidFilter, fmt.Sprintf("unknown status filter %q", statusFilter))
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.statusFilter = statusFilter
	d.supplierFilter = supplierFilter
	d.refreshCountsLocked()

	return nil
}

// ResetFilters returns both filters to their defaults.
func (d *Desk) ResetFilters() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.statusFilter = lots.FilterAll
	d.supplierFilter = ""
	d.refreshCountsLocked()
}

// Accept sends the lot with the operator's margin. The lot is removed
// locally only after the remote call confirms success.
func (d *Desk) Accept(ctx context.Context, id entity.LotID, marginPercent float64) error {
	inFlight := fmt.Sprintf("sending lot #%s with margin %g%%...", id, marginPercent)
	if err := d.beginLotAction(id, inFlight); err != nil {
		return err
	}
	defer d.endLotAction(id)

	if err := d.gateway.AcceptLot(ctx, id, marginPercent); err != nil {
		logger(ctx).Error("accept failed", logx.Stringer(logx.FieldLotID, id), logx.Error(err))
		d.actionFailed("accept", "send failed: "+err.Error())

		return err
	}

	d.removeAfterConfirmation("accept", id, fmt.Sprintf("lot #%s sent", id))

	return nil
}

// Reject declines the lot; same contract as Accept, without a margin.
func (d *Desk) Reject(ctx context.Context, id entity.LotID) error {
	if err := d.beginLotAction(id, fmt.Sprintf("rejecting lot #%s...", id)); err != nil {
		return err
	}
	defer d.endLotAction(id)

	if err := d.gateway.RejectLot(ctx, id); err != nil {
		logger(ctx).Error("reject failed", logx.Stringer(logx.FieldLotID, id), logx.Error(err))
		d.actionFailed("reject", "reject failed: "+err.Error())

		return err
	}

	d.removeAfterConfirmation("reject", id, fmt.Sprintf("lot #%s rejected", id))

	return nil
}

// NotifySuppliers triggers the global broadcast. It never touches the lot
// collection and guards itself with its own busy flag.
func (d *Desk) NotifySuppliers(ctx context.Context) error {
	d.mu.Lock()
	if d.notifyBusy {
		d.mu.Unlock()
		return domain.NewError(errcodes.NotifyBusy, "supplier notification is already in flight")
	}

	d.notifyBusy = true
	d.statusMessage = "notifying suppliers..."
	d.mu.Unlock()

	d.toasts.Push("notifying suppliers...", entity.ToastInfo)

	defer func() {
		d.mu.Lock()
		d.notifyBusy = false
		d.mu.Unlock()
	}()

	if err := d.gateway.NotifySuppliers(ctx); err != nil {
		logger(ctx).Error("notify suppliers failed", logx.Error(err))
		d.actionFailed("notify", "notify failed: "+err.Error())

		return err
	}

	d.mu.Lock()
	d.statusMessage = "suppliers notified"
	d.mu.Unlock()

	d.toasts.Push("notification sent", entity.ToastSuccess)
	actionsTotal.WithLabelValues("notify", "success").Inc()

	return nil
}

// Busy reports whether an accept/reject is in flight for the lot.
func (d *Desk) Busy(id entity.LotID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, busy := d.busyLots[id]

	return busy
}

// Reset clears the whole view state when the session ends.
func (d *Desk) Reset() {
	d.mu.Lock()
	d.allLots = []entity.Lot{}
	d.statusFilter = lots.FilterAll
	d.supplierFilter = ""
	d.statusMessage = ""
	d.statusError = false
	d.busyLots = map[entity.LotID]struct{}{}
	d.notifyBusy = false
	d.mu.Unlock()

	d.toasts.Push("session ended", entity.ToastInfo)
}

func (d *Desk) beginLotAction(id entity.LotID, inFlightMessage string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, busy := d.busyLots[id]; busy {
		return domain.NewError(errcodes.LotBusy, fmt.Sprintf("lot #%s has an action in flight", id))
	}

	d.busyLots[id] = struct{}{}
	d.statusMessage = inFlightMessage

	return nil
}

func (d *Desk) endLotAction(id entity.LotID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.busyLots, id)
}

func (d *Desk) removeAfterConfirmation(action string, id entity.LotID, message string) {
	d.mu.Lock()

	kept := make([]entity.Lot, 0, len(d.allLots))
	for _, lot := range d.allLots {
		if lot.ID != id {
			kept = append(kept, lot)
		}
	}

	d.allLots = kept
	d.refreshCountsLocked()
	// The outcome overwrites the recomputed count line; the next poll or
	// filter change overwrites the outcome in turn.
	d.statusMessage = message
	d.mu.Unlock()

	d.toasts.Push(message, entity.ToastSuccess)
	actionsTotal.WithLabelValues(action, "success").Inc()
}

func (d *Desk) actionFailed(action, message string) {
	d.mu.Lock()
	d.statusMessage = message
	d.statusError = true
	d.mu.Unlock()

	d.toasts.Push(message, entity.ToastError)
	actionsTotal.WithLabelValues(action, "error").Inc()
}

func (d *Desk) refreshCountsLocked() {
	visible := lots.Visible(d.allLots, d.statusFilter, d.supplierFilter)

	if len(visible) > 0 {
		d.statusMessage = fmt.Sprintf("showing %d of %d lots", len(visible), len(d.allLots))
	} else {
		d.statusMessage = "no lots match the current filters"
	}
}
