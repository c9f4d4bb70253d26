package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending        Status = "pending"
	StatusInProgress     Status = "in-progress"
	StatusReadyForPickup Status = "ready-for-pickup"
	StatusCancelled      Status = "cancelled"
)

type PaymentMethod string

const (
	PaymentCOD        PaymentMethod = "cod"
	PaymentCard       PaymentMethod = "card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetBanking PaymentMethod = "netbanking"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCOD, PaymentCard, PaymentUPI, PaymentNetBanking:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type ShippingAddress struct {
	FullName     string `json:"fullName" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	AddressLine1 string `json:"addressLine1" binding:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode" binding:"required"`
	Country      string `json:"country"`
}

func (a ShippingAddress) Complete() bool {
	return a.FullName != "" && a.Phone != "" && a.AddressLine1 != "" && a.City != "" && a.PostalCode != ""
}

type Payment struct {
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transactionId,omitempty"`
}

type Tracking struct {
	Carrier           string     `json:"carrier,omitempty"`
	TrackingNumber    string     `json:"trackingNumber,omitempty"`
	TrackingURL       string     `json:"trackingUrl,omitempty"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
}

// Item is an immutable snapshot of a cart line at checkout.
type Item struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type HistoryEntry struct {
	Status    Status    `json:"status"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

type Order struct {
	ID              uint            `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	UserID          uint            `json:"userId"`
	Items           []Item          `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          Status          `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Payment         Payment         `json:"payment"`
	Tracking        Tracking        `json:"tracking"`
	Notes           string          `json:"notes,omitempty"`
	History         []HistoryEntry  `json:"statusHistory,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type CreateOrderInput struct {
	ShippingAddress ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod" binding:"required"`
	Notes           string          `json:"notes"`
}

type UpdateStatusInput struct {
	Status Status `json:"status" binding:"required"`
	Note   string `json:"note"`
}

type CancelInput struct {
	Reason string `json:"reason"`
}

type TrackingInput struct {
	Carrier           string     `json:"carrier"`
	TrackingNumber    string     `json:"trackingNumber"`
	TrackingURL       string     `json:"trackingUrl"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
}

type ListFilter struct {
	UserID *uint
	Status Status
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

type ListResult struct {
	Items []Order `json:"items"`
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}

type Stats struct {
	TotalOrders int             `json:"totalOrders"`
	ByStatus    map[Status]int  `json:"byStatus"`
	Revenue     decimal.Decimal `json:"revenue"`
	TodayOrders int             `json:"todayOrders"`
}

// CartReset carries the totals an emptied cart is persisted with.
type CartReset struct {
	CartID       uint
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	ShippingCost decimal.Decimal
	TotalAmount  decimal.Decimal
}
