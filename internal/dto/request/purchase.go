package request

// CreatePurchaseRequest carries the ticket count. The amount bound is checked
// in the service so the caller always gets the canonical message.
type CreatePurchaseRequest struct {
	Amount int `json:"amount"`
}
