package models

import "time"

// Address is the slice of a platform address the dashboard reads.
type Address struct {
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	StreetName string `json:"streetName,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Price is a line-item unit price with an optional discounted value.
type Price struct {
	Value      Money `json:"value"`
	Discounted *struct {
		Value Money `json:"value"`
	} `json:"discounted,omitempty"`
}

// Variant identifies the purchased product variant.
type Variant struct {
	ID  int     `json:"id"`
	SKU *string `json:"sku,omitempty"`
}

// IncludedDiscount is one cart discount's share of a discounted price.
type IncludedDiscount struct {
	Discount         Reference `json:"discount"`
	DiscountedAmount Money     `json:"discountedAmount"`
}

// DiscountedPrice is the per-unit price after discounts, with the discounts
// that produced it.
type DiscountedPrice struct {
	Value             Money              `json:"value"`
	IncludedDiscounts []IncludedDiscount `json:"includedDiscounts,omitempty"`
}

// DiscountedPriceForQuantity pairs a discounted unit price with the quantity
// it applies to.
type DiscountedPriceForQuantity struct {
	Quantity        int64            `json:"quantity"`
	DiscountedPrice *DiscountedPrice `json:"discountedPrice,omitempty"`
}

// LineItem is one product entry of an order.
type LineItem struct {
	ID                         string                       `json:"id"`
	ProductID                  string                       `json:"productId"`
	Name                       LocalizedString              `json:"name"`
	Quantity                   int64                        `json:"quantity"`
	Price                      Price                        `json:"price"`
	Variant                    Variant                      `json:"variant"`
	TotalPrice                 Money                        `json:"totalPrice"`
	DiscountedPricePerQuantity []DiscountedPriceForQuantity `json:"discountedPricePerQuantity,omitempty"`
}

// Order is a platform order as read by the dashboard.
type Order struct {
	ID              string     `json:"id"`
	Version         int        `json:"version"`
	OrderNumber     *string    `json:"orderNumber,omitempty"`
	OrderState      string     `json:"orderState"`
	CreatedAt       string     `json:"createdAt"`
	LastModifiedAt  string     `json:"lastModifiedAt,omitempty"`
	TotalPrice      Money      `json:"totalPrice"`
	LineItems       []LineItem `json:"lineItems"`
	CustomerID      *string    `json:"customerId,omitempty"`
	BillingAddress  *Address   `json:"billingAddress,omitempty"`
	ShippingAddress *Address   `json:"shippingAddress,omitempty"`
}

// CreatedTime parses the order creation timestamp; the zero time is returned
// for malformed input.
func (o Order) CreatedTime() time.Time {
	t, err := time.Parse(time.RFC3339, o.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
