package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"supply/internal/core/domain/model/history"
	"supply/internal/core/domain/model/kernel"
	"supply/internal/pkg/errs"
	"supply/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrPreparationRequired rejects a generic transition into PREPARING, which
	// is only entered by committing a preparation worksheet.
	ErrPreparationRequired = errors.New("PREPARING is entered by committing a preparation")
)

// FormatNumber renders the human-readable order number for a sequence value.
func FormatNumber(seq int64) string {
	return fmt.Sprintf("ORD-%06d", seq)
}

// Order is a department's request for items from a warehouse. It is the
// aggregate root owning the line items and the lifecycle.
//
// Order follows these invariants:
//   - items is never empty and keeps its submission order
//   - status only moves along the edges of the lifecycle graph
//   - every status change or edit queues exactly one history entry, which the
//     repository persists in the same transaction as the order
//   - the warehouse is fixed once preparation begins
type Order struct {
	id           kernel.UUID
	seq          int64
	departmentID kernel.UUID
	warehouseID  *kernel.UUID
	status       Status
	items        []*Item
	notes        string
	createdAt    time.Time
	createdBy    kernel.UUID
	updatedAt    time.Time
	deliveredBy  *kernel.UUID

	// version is the persisted revision, advanced by the repository on every save.
	version int64

	pendingHistory []history.Entry

	guard guard.ConstructorGuard
}

// TransitionOptions carries the optional parts of a status change.
type TransitionOptions struct {
	Note string
	// WarehouseID routes the order on approval. Other edges reject it unless it
	// names the warehouse already set.
	WarehouseID *kernel.UUID
}

// NewOrder creates a PENDING order on behalf of creator. Department actors may
// only create orders for their own department; admins may create for any.
//
// Example:
//
//	items, warnings, err := order.NewItems([]order.ItemDraft{{Name: "Gloves", Quantity: 10, Unit: "box"}})
//	if err != nil {
//	    return err
//	}
//	o, err := order.NewOrder(kernel.NewUUID(), seq, actor, departmentID, nil, items, "", time.Now())
func NewOrder(
	id kernel.UUID,
	seq int64,
	creator kernel.Actor,
	departmentID kernel.UUID,
	warehouseID *kernel.UUID,
	items []*Item,
	notes string,
	now time.Time,
) (*Order, error) {
	if err := creator.Validate(); err != nil {
		return nil, err
	}

	switch creator.Role() {
	case kernel.RoleAdmin:
	case kernel.RoleDepartment:
		if !creator.BelongsToDepartment(departmentID) {
			return nil, errs.NewAuthorizationErrorWithCause(creator.Role().String(), "create order",
				fmt.Errorf("department %s is not the actor's department", departmentID))
		}
	default:
		return nil, errs.NewAuthorizationError(creator.Role().String(), "create order")
	}

	o := &Order{
		status:    Pending,
		notes:     strings.TrimSpace(notes),
		createdBy: creator.ID(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setSeq(seq),
		o.setDepartmentID(departmentID),
		o.setWarehouseID(warehouseID),
		o.setItems(items),
		o.setTimestamps(now, now),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the persisted state of an order.
type Snapshot struct {
	ID           kernel.UUID
	Seq          int64
	DepartmentID kernel.UUID
	WarehouseID  *kernel.UUID
	Status       Status
	Items        []*Item
	Notes        string
	CreatedAt    time.Time
	CreatedBy    kernel.UUID
	UpdatedAt    time.Time
	DeliveredBy  *kernel.UUID
	Version      int64
}

// RestoreOrder rebuilds an order read from storage. Status and routing must be
// consistent: every status past PENDING other than REJECTED needs a warehouse,
// and DELIVERED needs the delivering driver.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		notes:   s.Notes,
		version: s.Version,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setSeq(s.Seq),
		o.setDepartmentID(s.DepartmentID),
		o.setWarehouseID(s.WarehouseID),
		o.setStatus(s.Status),
		o.setItems(s.Items),
		o.setCreatedBy(s.CreatedBy),
		o.setTimestamps(s.CreatedAt, s.UpdatedAt),
		o.setDeliveredBy(s.DeliveredBy),
	); err != nil {
		return nil, err
	}

	if err := o.checkRouting(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// Seq is the creation sequence number, used to break createdAt ties.
func (o *Order) Seq() int64 {
	return o.seq
}

// Number is the human-readable order number, e.g. ORD-000042.
func (o *Order) Number() string {
	return FormatNumber(o.seq)
}

func (o *Order) DepartmentID() kernel.UUID {
	return o.departmentID
}

// WarehouseID returns the warehouse the order is routed to, or nil.
func (o *Order) WarehouseID() *kernel.UUID {
	if o.warehouseID == nil {
		return nil
	}
	id := *o.warehouseID
	return &id
}

func (o *Order) Status() Status {
	return o.status
}

// Items returns the line items in display order. The slice is a copy; the
// items themselves are read-only outside this package.
func (o *Order) Items() []*Item {
	return slices.Clone(o.items)
}

func (o *Order) Notes() string {
	return o.notes
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) CreatedBy() kernel.UUID {
	return o.createdBy
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// DeliveredBy returns the driver who delivered the order, or nil.
func (o *Order) DeliveredBy() *kernel.UUID {
	if o.deliveredBy == nil {
		return nil
	}
	id := *o.deliveredBy
	return &id
}

func (o *Order) Version() int64 {
	return o.version
}

// Shortages returns the indexes of items supplied partially.
func (o *Order) Shortages() []int {
	indexes := make([]int, 0)
	for i, item := range o.items {
		if item.IsShortage() {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// CheckVersion fails with a ConflictError when expected is set and differs
// from the current version.
func (o *Order) CheckVersion(expected *int64) error {
	if expected != nil && *expected != o.version {
		return errs.NewConflictErrorWithCause("order", o.Number(),
			fmt.Errorf("expected version %d, current version %d", *expected, o.version))
	}
	return nil
}

// BumpVersion advances the version after a successful save.
func (o *Order) BumpVersion() {
	o.version++
}

// PendingHistory returns the history entries queued since the last save.
func (o *Order) PendingHistory() []history.Entry {
	return slices.Clone(o.pendingHistory)
}

// ClearPendingHistory drops the queued entries once they are persisted.
func (o *Order) ClearPendingHistory() {
	o.pendingHistory = nil
}

// IsVisibleTo applies role scoping: departments see their own orders, scoped
// warehouse staff see orders routed to their warehouses and unrouted orders
// still awaiting approval, drivers see READY and DELIVERED orders, admins see all.
func (o *Order) IsVisibleTo(actor kernel.Actor) bool {
	switch actor.Role() {
	case kernel.RoleAdmin:
		return true
	case kernel.RoleDepartment:
		return actor.BelongsToDepartment(o.departmentID)
	case kernel.RoleWarehouse:
		return o.warehouseID == nil || actor.CanAccessWarehouse(*o.warehouseID)
	case kernel.RoleDriver:
		return o.status == Ready || o.status == Delivered
	default:
		return false
	}
}

// Transition moves the order along one lifecycle edge on behalf of actor.
//
// It fails with:
//   - InvalidTransitionError if the edge does not exist, including any attempt
//     to enter PREPARING without committing a preparation
//   - AuthorizationError if the actor's role may not take the edge or the
//     order is outside the actor's scope
//   - ValidationError if approval cannot resolve a warehouse
//
// On success one transition history entry is queued. On failure the order is unchanged.
func (o *Order) Transition(actor kernel.Actor, target Status, opts TransitionOptions, now time.Time) error {
	if err := errors.Join(o.Validate(), actor.Validate()); err != nil {
		return err
	}

	if target == Preparing {
		return errs.NewInvalidTransitionErrorWithCause(o.status.String(), target.String(), ErrPreparationRequired)
	}

	if err := o.authorizeEdge(actor, target); err != nil {
		return err
	}

	warehouseID := o.warehouseID
	if target == Approved {
		resolved, err := o.resolveWarehouse(actor, opts.WarehouseID)
		if err != nil {
			return err
		}
		warehouseID = &resolved
	} else if opts.WarehouseID != nil && (o.warehouseID == nil || !o.warehouseID.IsEqual(*opts.WarehouseID)) {
		return errs.NewValueIsInvalidErrorWithCause("warehouseId",
			fmt.Errorf("warehouse can only be assigned on approval, not on %s", target))
	}

	from := o.status
	entry, err := o.newEntry(history.KindTransition, from, target, actor, now, opts.Note)
	if err != nil {
		return err
	}

	o.status = target
	o.warehouseID = warehouseID
	if target == Delivered {
		driver := actor.ID()
		o.deliveredBy = &driver
	}
	o.touch(now)
	o.pendingHistory = append(o.pendingHistory, entry)
	return nil
}

// PreparationWorksheet seeds one PreparedItem per item with the full requested
// quantity available. It does not change the order.
func (o *Order) PreparationWorksheet(actor kernel.Actor) (PreparedItems, error) {
	if err := errors.Join(o.Validate(), actor.Validate()); err != nil {
		return nil, err
	}

	if o.status != Approved {
		return nil, errs.NewInvalidStateError("begin preparation", o.status.String())
	}

	if err := o.authorizeAction(actor, "prepare orders", kernel.RoleWarehouse); err != nil {
		return nil, err
	}

	return seedPreparation(o.items), nil
}

// CommitPreparation applies a filled-in worksheet: items take the available
// quantities and flags, lines with nothing available become unavailable, and
// the order moves APPROVED -> PREPARING with one preparation history entry
// summarizing the result.
//
// It fails with InvalidStateError unless the order is APPROVED and with a
// ValidationError wrapping ErrNoItemAvailable when no line can be fulfilled.
func (o *Order) CommitPreparation(
	actor kernel.Actor,
	worksheet PreparedItems,
	notes string,
	now time.Time,
) (PreparationSummary, error) {
	if err := errors.Join(o.Validate(), actor.Validate()); err != nil {
		return PreparationSummary{}, err
	}

	if o.status != Approved {
		return PreparationSummary{}, errs.NewInvalidStateError("commit preparation", o.status.String())
	}

	if err := o.authorizeEdge(actor, Preparing); err != nil {
		return PreparationSummary{}, err
	}

	if err := worksheet.matches(o.items); err != nil {
		return PreparationSummary{}, err
	}

	committed := worksheet.normalized()
	if committed.AllUnavailable() {
		return PreparationSummary{}, errs.NewValueIsInvalidErrorWithCause("items", ErrNoItemAvailable)
	}

	summary := Summarize(committed)
	notes = strings.TrimSpace(notes)
	note := summary.String()
	if notes != "" {
		note += "; " + notes
	}

	entry, err := o.newEntry(history.KindPreparation, o.status, Preparing, actor, now, note)
	if err != nil {
		return PreparationSummary{}, err
	}

	for i, item := range o.items {
		item.applyPreparation(committed[i])
	}
	if notes != "" {
		o.notes = notes
	}
	o.status = Preparing
	o.touch(now)
	o.pendingHistory = append(o.pendingHistory, entry)
	return summary, nil
}

// MarkReady moves a PREPARING order to READY. It fails with InvalidStateError
// from any other status. Non-empty notes replace the order notes.
func (o *Order) MarkReady(actor kernel.Actor, notes string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if o.status != Preparing {
		return errs.NewInvalidStateError("mark ready", o.status.String())
	}

	if err := o.Transition(actor, Ready, TransitionOptions{Note: notes}, now); err != nil {
		return err
	}

	if n := strings.TrimSpace(notes); n != "" {
		o.notes = n
	}
	return nil
}

// ReplaceItems swaps the line items while the order is PENDING or APPROVED and
// queues an items_updated entry. Drivers may not edit items.
func (o *Order) ReplaceItems(actor kernel.Actor, items []*Item, now time.Time) error {
	if err := errors.Join(o.Validate(), actor.Validate()); err != nil {
		return err
	}

	if !o.status.AllowsItemChanges() {
		return errs.NewInvalidStateError("edit items", o.status.String())
	}

	if err := o.authorizeAction(actor, "edit items",
		kernel.RoleDepartment, kernel.RoleWarehouse, kernel.RoleAdmin); err != nil {
		return err
	}

	if err := validateItems(items); err != nil {
		return err
	}

	entry, err := o.newEntry(history.KindItemsUpdated, o.status, o.status, actor, now,
		fmt.Sprintf("%d items", len(items)))
	if err != nil {
		return err
	}

	o.items = slices.Clone(items)
	o.touch(now)
	o.pendingHistory = append(o.pendingHistory, entry)
	return nil
}

// UpdateNotes replaces the order notes until the order is DELIVERED or REJECTED
// and queues a notes_updated entry.
func (o *Order) UpdateNotes(actor kernel.Actor, notes string, now time.Time) error {
	if err := errors.Join(o.Validate(), actor.Validate()); err != nil {
		return err
	}

	if !o.status.AllowsNotesChanges() {
		return errs.NewInvalidStateError("edit notes", o.status.String())
	}

	if err := o.authorizeAction(actor, "edit notes",
		kernel.RoleDepartment, kernel.RoleWarehouse, kernel.RoleDriver, kernel.RoleAdmin); err != nil {
		return err
	}

	notes = strings.TrimSpace(notes)
	entry, err := o.newEntry(history.KindNotesUpdated, o.status, o.status, actor, now, notes)
	if err != nil {
		return err
	}

	o.notes = notes
	o.touch(now)
	o.pendingHistory = append(o.pendingHistory, entry)
	return nil
}

// authorizeEdge checks the role gate of the edge o.status -> target and the actor's scope.
func (o *Order) authorizeEdge(actor kernel.Actor, target Status) error {
	role, err := o.status.RequiredRole(target)
	if err != nil {
		return err
	}
	return o.authorizeAction(actor, fmt.Sprintf("move orders from %s to %s", o.status, target), role)
}

func (o *Order) authorizeAction(actor kernel.Actor, action string, roles ...kernel.Role) error {
	if !slices.Contains(roles, actor.Role()) {
		return errs.NewAuthorizationError(actor.Role().String(), action)
	}
	if !o.IsVisibleTo(actor) {
		return errs.NewAuthorizationErrorWithCause(actor.Role().String(), action,
			fmt.Errorf("order %s is outside the actor's scope", o.Number()))
	}
	return nil
}

// resolveWarehouse picks the approval warehouse: the requested one, else the
// one already set, else the actor's only warehouse.
func (o *Order) resolveWarehouse(actor kernel.Actor, requested *kernel.UUID) (kernel.UUID, error) {
	var candidate *kernel.UUID
	switch {
	case requested != nil:
		candidate = requested
	case o.warehouseID != nil:
		candidate = o.warehouseID
	default:
		candidate = actor.SingleWarehouse()
	}

	if candidate == nil {
		return kernel.UUID{}, errs.NewValueIsRequiredErrorWithCause("warehouseId",
			errors.New("approval needs a warehouse to route the order to"))
	}
	if err := candidate.Validate(); err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("warehouseId", err)
	}
	if !actor.CanAccessWarehouse(*candidate) {
		return kernel.UUID{}, errs.NewAuthorizationErrorWithCause(actor.Role().String(), "approve orders",
			fmt.Errorf("warehouse %s is outside the actor's scope", candidate))
	}
	return *candidate, nil
}

func (o *Order) newEntry(
	kind history.Kind,
	from, to Status,
	actor kernel.Actor,
	now time.Time,
	note string,
) (history.Entry, error) {
	if now.IsZero() {
		return history.Entry{}, errs.NewValueIsRequiredError("now")
	}
	return history.NewEntry(o.id, kind, from.String(), to.String(), actor.ID(), now.UTC(), strings.TrimSpace(note))
}

func (o *Order) touch(now time.Time) {
	if now = now.UTC(); now.After(o.updatedAt) {
		o.updatedAt = now
	}
}

func (o *Order) checkRouting() error {
	needsWarehouse := o.status != Pending && o.status != Rejected
	if needsWarehouse && o.warehouseID == nil {
		return errs.NewValueIsRequiredErrorWithCause("warehouseId",
			fmt.Errorf("%s orders must be routed to a warehouse", o.status))
	}
	if (o.status == Delivered) != (o.deliveredBy != nil) {
		return errs.NewValueIsInvalidErrorWithCause("deliveredBy",
			fmt.Errorf("delivering driver is inconsistent with status %s", o.status))
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setSeq(seq int64) error {
	if seq <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("seq", fmt.Errorf("%d is not greater than 0", seq))
	}
	o.seq = seq
	return nil
}

func (o *Order) setDepartmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("departmentId", err)
	}
	o.departmentID = id
	return nil
}

func (o *Order) setWarehouseID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("warehouseId", err)
	}
	wid := *id
	o.warehouseID = &wid
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if err := validateItems(items); err != nil {
		return err
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setCreatedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("createdBy", err)
	}
	o.createdBy = id
	return nil
}

func (o *Order) setTimestamps(createdAt, updatedAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	if updatedAt.Before(createdAt) {
		return errs.NewValueIsInvalidErrorWithCause("updatedAt",
			fmt.Errorf("%s is before createdAt %s", updatedAt, createdAt))
	}
	o.createdAt = createdAt.UTC()
	o.updatedAt = updatedAt.UTC()
	return nil
}

func (o *Order) setDeliveredBy(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("deliveredBy", err)
	}
	did := *id
	o.deliveredBy = &did
	return nil
}

func validateItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}
	return nil
}
