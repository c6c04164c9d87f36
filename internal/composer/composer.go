// Package composer assembles a parent record (a purchase order or a quote)
// together with its line items before they are submitted as one unit.
//
// A Draft is a plain in-memory value: no I/O, no locking. The order and quote
// services run every incoming payload through a Draft so the server applies
// the same rules the entry screens do.
package composer

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Mode decides what AddItem does with an item that is already in the list.
type Mode int

const (
	// Acumular adds the new quantity to the existing line (orders).
	Acumular Mode = iota
	// Deduplicar keeps the existing line untouched (quotes).
	Deduplicar
)

var (
	ErrSinPadre = errors.New("composer: parent not selected")
	ErrSinItems = errors.New("composer: item list is empty")
	ErrCantidad = errors.New("composer: quantity must be at least 1")
)

// Line is one item of a draft. For quotes Cantidad is always 1 and Precio is
// the negotiated price, so Total works unchanged for both parents.
type Line struct {
	ItemID   int
	Cantidad int
	Precio   decimal.Decimal
}

// Subtotal is Precio × Cantidad.
func (l Line) Subtotal() decimal.Decimal {
	return l.Precio.Mul(decimal.NewFromInt(int64(l.Cantidad)))
}

// Draft is a parent reference plus an ordered list of lines.
type Draft[P comparable] struct {
	mode      Mode
	parent    P
	hasParent bool
	lines     []Line
}

func New[P comparable](mode Mode) *Draft[P] {
	return &Draft[P]{mode: mode}
}

// Parent returns the current parent and whether one was chosen.
func (d *Draft[P]) Parent() (P, bool) { return d.parent, d.hasParent }

// ChangeParent sets the parent. A non-empty list is discarded when the parent
// actually changes, so items scoped to different parents never mix.
// It reports whether the list was cleared.
func (d *Draft[P]) ChangeParent(p P) bool {
	cleared := false
	if d.hasParent && d.parent != p && len(d.lines) > 0 {
		d.lines = nil
		cleared = true
	}
	d.parent = p
	d.hasParent = true
	return cleared
}

// AddItem appends l, or merges it into the existing line for the same item
// according to the draft's mode.
func (d *Draft[P]) AddItem(l Line) error {
	if l.Cantidad < 1 {
		return ErrCantidad
	}
	if i := d.index(l.ItemID); i >= 0 {
		if d.mode == Acumular {
			d.lines[i].Cantidad += l.Cantidad
		}
		return nil
	}
	d.lines = append(d.lines, l)
	return nil
}

// RemoveItem drops the line for itemID, if any.
func (d *Draft[P]) RemoveItem(itemID int) {
	if i := d.index(itemID); i >= 0 {
		d.lines = append(d.lines[:i], d.lines[i+1:]...)
	}
}

// SetCantidad replaces the quantity of an existing line.
func (d *Draft[P]) SetCantidad(itemID, cantidad int) error {
	if cantidad < 1 {
		return ErrCantidad
	}
	if i := d.index(itemID); i >= 0 {
		d.lines[i].Cantidad = cantidad
	}
	return nil
}

// Items returns a copy of the current lines in insertion order.
func (d *Draft[P]) Items() []Line {
	out := make([]Line, len(d.lines))
	copy(out, d.lines)
	return out
}

func (d *Draft[P]) Len() int { return len(d.lines) }

// Total recomputes Σ precio × cantidad from the current lines.
func (d *Draft[P]) Total() decimal.Decimal {
	return Total(d.lines)
}

// Validate reports the first reason the draft cannot be submitted.
func (d *Draft[P]) Validate() error {
	if !d.hasParent {
		return ErrSinPadre
	}
	if len(d.lines) == 0 {
		return ErrSinItems
	}
	return nil
}

func (d *Draft[P]) index(itemID int) int {
	for i, l := range d.lines {
		if l.ItemID == itemID {
			return i
		}
	}
	return -1
}

// Total sums the subtotals of lines.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
