package domain

// Fill represents one atomic match between a resting maker and an
// incoming taker. Price is always the maker's price.
type Fill struct {
	FillID    string
	MakerID   uint64
	TakerID   uint64
	TakerSide Side
	Price     int64 // ticks
	Quantity  int64
}

// Notional returns price × quantity in ticks.
func (f Fill) Notional() int64 {
	return f.Price * f.Quantity
}
