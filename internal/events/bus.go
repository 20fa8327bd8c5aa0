package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Entity names a record table that emits change notifications.
type Entity string

const (
	EntityMembers        Entity = "members"
	EntityTransactions   Entity = "transactions"
	EntityExpenses       Entity = "expenses"
	EntityPettyCash      Entity = "petty_cash_transactions"
	EntityStaff          Entity = "staff"
	EntitySalaryPayments Entity = "salary_payments"
	EntityInventory      Entity = "inventory_items"
	EntityProfiles       Entity = "profiles"
)

// Op is the kind of mutation.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Event is a change notification. It identifies the record but carries no payload.
type Event struct {
	Entity   Entity    `json:"entity"`
	Op       Op        `json:"op"`
	OwnerID  string    `json:"ownerID"`
	RecordID string    `json:"recordID"`
	At       time.Time `json:"at"`
}

// Handler reacts to an event. Handlers run synchronously on the publishing goroutine.
type Handler func(ctx context.Context, ev Event)

// Publisher is what mutating services depend on.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// Filter selects events. Empty Entities matches every entity and an empty
// OwnerID matches every tenant.
type Filter struct {
	Entities []Entity
	OwnerID  string
}

func (f Filter) matches(ev Event) bool {
	if f.OwnerID != "" && f.OwnerID != ev.OwnerID {
		return false
	}
	if len(f.Entities) == 0 {
		return true
	}
	for _, e := range f.Entities {
		if e == ev.Entity {
			return true
		}
	}
	return false
}

type subscription struct {
	id      uint64
	filter  Filter
	handler Handler
}

// Bus is an in-process observer registry. Handlers are invoked in subscription order.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	nextID uint64
	logger *slog.Logger
}

var _ Publisher = (*Bus)(nil)

// NewBus creates an empty bus. A nil logger uses slog.Default.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{logger: logger}
}

// Subscribe registers h for events matching filter and returns a function
// that removes the subscription. Calling it more than once is harmless.
func (b *Bus) Subscribe(filter Filter, h Handler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, filter: filter, handler: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers ev to every matching handler. A zero At is stamped with
// the current time. A panicking handler is logged and does not stop delivery.
func (b *Bus) Publish(ctx context.Context, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	b.mu.RLock()
	targets := make([]subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if s.filter.matches(ev) {
			targets = append(targets, s)
		}
	}
	b.mu.RUnlock()

	for _, s := range targets {
		b.deliver(ctx, s, ev)
	}
}

func (b *Bus) deliver(ctx context.Context, s subscription, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Event handler panicked",
				slog.String("entity", string(ev.Entity)),
				slog.String("op", string(ev.Op)),
				slog.String("panic", fmt.Sprint(r)))
		}
	}()
	s.handler(ctx, ev)
}

// SubscriberCount reports the number of live subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}
