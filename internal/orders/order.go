package orders

type Status string

// StatusCancelled is the only status that excludes an order from averages.
// Every other value, known or not, counts as eligible.
const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusCancelled Status = "cancelled"
)

type Order struct {
	ID     string
	UserID string
	Status Status
	Amount float64
}

// Eligible reports whether the order takes part in value averages.
func (o Order) Eligible() bool {
	return o.Status != StatusCancelled
}
