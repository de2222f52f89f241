package basket

import (
	"time"

	"github.com/google/uuid"
)

type OpKind int

const (
	// OpMerge increments the unsent line matching the item's merge key, or
	// inserts the item with quantity 1.
	OpMerge OpKind = iota
	OpSetQuantity
	OpDelete
	OpMarkSent
)

func (k OpKind) String() string {
	switch k {
	case OpMerge:
		return "merge"
	case OpSetQuantity:
		return "set_quantity"
	case OpDelete:
		return "delete"
	case OpMarkSent:
		return "mark_sent"
	default:
		return "unknown"
	}
}

type Op struct {
	Kind        OpKind
	ID          uuid.UUID
	Item        *BasketItem
	Quantity    int
	TableNumber string
	At          time.Time
}

// Batch collects the writes of one basket call. Repositories apply a batch
// all-or-nothing; only unsent lines are touched by any op.
type Batch struct {
	ops []Op
}

func NewBatch() *Batch {
	return &Batch{}
}

func (b *Batch) Merge(item *BasketItem) {
	b.ops = append(b.ops, Op{Kind: OpMerge, ID: item.ID, Item: item})
}

func (b *Batch) SetQuantity(id uuid.UUID, quantity int) {
	b.ops = append(b.ops, Op{Kind: OpSetQuantity, ID: id, Quantity: quantity})
}

func (b *Batch) Delete(id uuid.UUID) {
	b.ops = append(b.ops, Op{Kind: OpDelete, ID: id})
}

func (b *Batch) MarkSent(id uuid.UUID, tableNumber string, at time.Time) {
	b.ops = append(b.ops, Op{Kind: OpMarkSent, ID: id, TableNumber: tableNumber, At: at})
}

func (b *Batch) Ops() []Op {
	return b.ops
}

func (b *Batch) Len() int {
	return len(b.ops)
}
