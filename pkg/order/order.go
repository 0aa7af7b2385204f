// Package order is the order-submission demo: an editable list of line items
// and a simulated multi-step submission that ends in success or a
// dismissable failure.
package order

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var (
	ErrBusy     = errors.New("order is not editable right now")
	ErrNoItems  = errors.New("order has no items")
	ErrLastItem = errors.New("order must keep at least one item")
	ErrNotFound = errors.New("item not found")
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusSaving  Status = "saving"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Steps are shown one after another while saving.
var Steps = []string{
	"Validating SKU Integrity...",
	"Calculating Customs Duty...",
	"Securing Freight Allocation...",
	"Finalizing Blockchain Manifest...",
}

const (
	dutyRate    = 0.10
	freightFlat = 450.00
)

type Item struct {
	ID          string  `json:"id"`
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	Qty         int     `json:"qty"`
	Price       float64 `json:"price"`
}

func (i Item) Amount() float64 {
	return float64(i.Qty) * i.Price
}

type Totals struct {
	Subtotal float64
	Duty     float64
	Freight  float64
	Total    float64
}

// Summarize computes the financial summary for items.
func Summarize(items []Item) Totals {
	var t Totals
	for _, it := range items {
		t.Subtotal += it.Amount()
	}
	if t.Subtotal > 0 {
		t.Duty = t.Subtotal * dutyRate
		t.Freight = freightFlat
	}
	t.Total = t.Subtotal + t.Duty + t.Freight
	return t
}

// DefaultItems is the form's starting content.
func DefaultItems() []Item {
	return []Item{{ID: "1", SKU: "SKU-7721", Description: "Logistics Sensor v4", Qty: 150, Price: 12.50}}
}

type Config struct {
	StepDelay   time.Duration
	SettleDelay time.Duration
	SuccessRate float64
}

func DefaultConfig() Config {
	return Config{StepDelay: 800 * time.Millisecond, SettleDelay: 4500 * time.Millisecond, SuccessRate: 0.8}
}

// Flow is one order form. It is not safe for concurrent use: scheduled
// callbacks must be serialized with other calls by the Scheduler.
type Flow struct {
	cfg   Config
	sched Scheduler
	rand  func() float64
	now   func() time.Time

	status   Status
	items    []Item
	step     int
	number   string
	gen      int
	nextID   int
	pending  []func()
	onSettle func(Status, string)
}

type Option func(*Flow)

// WithRand injects the outcome source; success is rand() < SuccessRate.
func WithRand(fn func() float64) Option {
	return func(f *Flow) { f.rand = fn }
}

func WithClock(now func() time.Time) Option {
	return func(f *Flow) { f.now = now }
}

// OnSettle is called when a submission reaches success or error.
func OnSettle(fn func(status Status, number string)) Option {
	return func(f *Flow) { f.onSettle = fn }
}

func NewFlow(cfg Config, sched Scheduler, opts ...Option) *Flow {
	if sched == nil {
		sched = TimerScheduler{}
	}
	f := &Flow{
		cfg:    cfg,
		sched:  sched,
		rand:   rand.Float64,
		now:    time.Now,
		status: StatusIdle,
		items:  DefaultItems(),
		nextID: 2,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) Status() Status { return f.status }

// Step is the index into Steps while saving.
func (f *Flow) Step() int { return f.step }

// OrderNumber is set once a submission succeeds.
func (f *Flow) OrderNumber() string { return f.number }

func (f *Flow) Items() []Item {
	return append([]Item(nil), f.items...)
}

func (f *Flow) Totals() Totals {
	return Summarize(f.items)
}

// AddItem appends a blank line item.
func (f *Flow) AddItem() (Item, error) {
	if f.status != StatusIdle {
		return Item{}, ErrBusy
	}
	it := Item{ID: strconv.Itoa(f.nextID)}
	f.nextID++
	f.items = append(f.items, it)
	return it, nil
}

func (f *Flow) RemoveItem(id string) error {
	if f.status != StatusIdle {
		return ErrBusy
	}
	for i, it := range f.items {
		if it.ID != id {
			continue
		}
		if len(f.items) == 1 {
			return ErrLastItem
		}
		f.items = append(f.items[:i:i], f.items[i+1:]...)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Save starts the simulated submission.
func (f *Flow) Save() error {
	if f.status != StatusIdle {
		return ErrBusy
	}
	if len(f.items) == 0 {
		return ErrNoItems
	}
	f.status = StatusSaving
	f.step = 0
	f.gen++
	gen := f.gen

	for i := 1; i < len(Steps); i++ {
		step := i
		f.schedule(time.Duration(step)*f.cfg.StepDelay, func() {
			if f.gen == gen && f.status == StatusSaving {
				f.step = step
			}
		})
	}
	f.schedule(f.cfg.SettleDelay, func() {
		if f.gen != gen || f.status != StatusSaving {
			return
		}
		f.pending = nil
		if f.rand() < f.cfg.SuccessRate {
			f.status = StatusSuccess
			f.number = f.newOrderNumber()
		} else {
			f.status = StatusError
		}
		if f.onSettle != nil {
			f.onSettle(f.status, f.number)
		}
	})
	return nil
}

func (f *Flow) schedule(d time.Duration, fn func()) {
	f.pending = append(f.pending, f.sched.After(d, fn))
}

// Dismiss clears a failure and returns to the editable form with items kept.
func (f *Flow) Dismiss() {
	if f.status == StatusError {
		f.status = StatusIdle
		f.step = 0
	}
}

// Reset starts a new order after a success.
func (f *Flow) Reset() {
	if f.status != StatusSuccess {
		return
	}
	f.status = StatusIdle
	f.step = 0
	f.number = ""
	f.items = DefaultItems()
	f.nextID = 2
}

// Cancel stops a submission in flight, used when the page is left.
func (f *Flow) Cancel() {
	for _, cancel := range f.pending {
		cancel()
	}
	f.pending = nil
	f.gen++
	if f.status == StatusSaving {
		f.status = StatusIdle
		f.step = 0
	}
}

func (f *Flow) newOrderNumber() string {
	id := uuid.New()
	return fmt.Sprintf("ORD-%d-%05d", f.now().Year(), binary.BigEndian.Uint32(id[:4])%100000)
}
