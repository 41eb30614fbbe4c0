package dto

import "time"

// TransferRequest payload for creating a transfer.
type TransferRequest struct {
	ToAccountNumber string `json:"toAccountNumber"`
	AmountCents     int64  `json:"amountCents"`
	Reference       string `json:"reference"`
}

// TransferResponse describes a recorded transfer.
type TransferResponse struct {
	ID                string    `json:"id"`
	FromAccountNumber string    `json:"fromAccountNumber"`
	ToAccountNumber   string    `json:"toAccountNumber"`
	AmountCents       int64     `json:"amountCents"`
	Reference         string    `json:"reference"`
	CreatedAt         time.Time `json:"createdAt"`
}
