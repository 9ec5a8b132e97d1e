package request

type ReleaseRequest struct {
	TransactionID string  `json:"transaction_id"`
	SellerID      string  `json:"seller_id"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

type RefundRequest struct {
	TransactionID string  `json:"transaction_id"`
	BuyerID       string  `json:"buyer_id"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}
