package domain

// Side indicates whether an order is a bid (buy) or ask (sell).
type Side string

const (
	SideBid Side = "bid"
	SideAsk Side = "ask"
)

// Valid reports whether s is one of the known sides.
func (s Side) Valid() bool {
	return s == SideBid || s == SideAsk
}

// Opposite returns the side an order of side s matches against.
func (s Side) Opposite() Side {
	if s == SideBid {
		return SideAsk
	}
	return SideBid
}

// Order represents a bid or ask instruction, either incoming or resting
// on the book. Price is in integer ticks.
//
// Quantity is fixed at creation. Filled only ever grows and is only
// advanced by the matcher while it owns the order.
type Order struct {
	ID        uint64
	Price     int64
	Quantity  int64
	Filled    int64
	Timestamp uint64 // submission sequence number, strictly increasing
	Side      Side
}

// Remaining returns the quantity still open for matching.
func (o *Order) Remaining() int64 {
	return o.Quantity - o.Filled
}

// IsFilled reports whether the order has no remaining quantity.
func (o *Order) IsFilled() bool {
	return o.Remaining() == 0
}
