package models

import "time"

type PaymentMethodType string

const (
	PaymentMpesa      PaymentMethodType = "mpesa"
	PaymentVisa       PaymentMethodType = "visa"
	PaymentMastercard PaymentMethodType = "mastercard"
)

// PaymentMethod is a host payout method. Card numbers and CVCs are stored
// only as bcrypt hashes; the last four digits are kept for display.
type PaymentMethod struct {
	ID         int64             `json:"id"`
	HostID     int64             `json:"host_id"`
	MethodType PaymentMethodType `json:"method_type"`

	MpesaNumber *string `json:"mpesa_number,omitempty"`

	CardNumberHash *string `json:"-"`
	CardLastFour   *string `json:"card_last_four,omitempty"`
	ExpiryMonth    *int    `json:"expiry_month,omitempty"`
	ExpiryYear     *int    `json:"expiry_year,omitempty"`
	CVCHash        *string `json:"-"`

	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

type MpesaPaymentRequest struct {
	MpesaNumber string `json:"mpesa_number"`
	IsDefault   bool   `json:"is_default"`
}

type CardPaymentRequest struct {
	CardNumber  string `json:"card_number"`
	CVC         string `json:"cvc"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	CardType    string `json:"card_type"`
	IsDefault   bool   `json:"is_default"`
}
