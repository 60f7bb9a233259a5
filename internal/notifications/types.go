package notifications

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Errors returned by the Notifier. Handlers map them to HTTP statuses.
var (
	ErrValidation    = errors.New("invalid notification request")
	ErrNotConfigured = errors.New("notification recipient not configured")
)

// OrderStatusRequest asks for a status update to be pushed to a customer.
type OrderStatusRequest struct {
	LineUserID  string     `json:"lineUserId"`
	OrderNumber FlexString `json:"orderNumber"`
	Status      string     `json:"status"`
	OrderTotal  Amount     `json:"orderTotal"`
}

// Validate checks the fields the push cannot do without.
func (r OrderStatusRequest) Validate() error {
	if strings.TrimSpace(r.LineUserID) == "" {
		return fmt.Errorf("%w: LINE User ID is required", ErrValidation)
	}
	return nil
}

// PaymentMethod is how the customer paid for a new order.
type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "online"
	PaymentCash   PaymentMethod = "cash"
)

// OrderItem is one line of a new order.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Size     string `json:"size,omitempty"`
	AddEgg   bool   `json:"addEgg,omitempty"`
	Note     string `json:"note,omitempty"`
}

// AdminOrderRequest describes a newly placed order for the shop admin.
type AdminOrderRequest struct {
	OrderID       FlexString    `json:"orderId"`
	CustomerName  string        `json:"customerName,omitempty"`
	TotalAmount   Amount        `json:"totalAmount"`
	Items         []OrderItem   `json:"items,omitempty"`
	CustomerPhone string        `json:"customerPhone,omitempty"`
	OrderNote     string        `json:"orderNote,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	SlipURL       string        `json:"slipUrl,omitempty"`
}

// Validate checks the fields the summary cannot do without.
func (r AdminOrderRequest) Validate() error {
	if strings.TrimSpace(string(r.OrderID)) == "" {
		return fmt.Errorf("%w: Order ID is required", ErrValidation)
	}
	return nil
}

// FlexString accepts a JSON string or number. Order systems send order
// numbers both ways.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = FlexString(n.String())
	return nil
}

// Amount is a money total in baht. It accepts a JSON number or numeric string.
type Amount float64

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		if strings.TrimSpace(v) == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", v)
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("invalid amount %s", data)
	}
	*a = Amount(f)
	return nil
}

// String renders the amount the way the order system displays it:
// integers without a decimal point, fractions as short as possible.
func (a Amount) String() string {
	return strconv.FormatFloat(float64(a), 'f', -1, 64)
}
