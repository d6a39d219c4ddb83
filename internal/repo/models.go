package repo

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
)

type Order struct {
	ID          string         `db:"id"`
	OrderNumber string         `db:"order_number"`
	UserID      sql.NullString `db:"user_id"`

	Subtotal int64  `db:"subtotal"`
	Shipping int64  `db:"shipping"`
	Tax      int64  `db:"tax"`
	Total    int64  `db:"total"`
	Currency string `db:"currency"`

	GuestFirstName  string         `db:"guest_first_name"`
	GuestLastName   sql.NullString `db:"guest_last_name"`
	GuestEmail      string         `db:"guest_email"`
	GuestPhone      sql.NullString `db:"guest_phone"`
	ShippingAddress []byte         `db:"shipping_address"`
	BillingAddress  []byte         `db:"billing_address"`
	ShippingMethod  sql.NullString `db:"shipping_method"`
	Notes           sql.NullString `db:"notes"`

	PaymentMethod string `db:"payment_method"`
	PaymentStatus string `db:"payment_status"`
	Status        string `db:"status"`

	PaymentSessionID     sql.NullString `db:"payment_session_id"`
	PaymentTransactionID sql.NullString `db:"payment_transaction_id"`
	PaymentSignature     sql.NullString `db:"payment_signature"`

	AccountName  sql.NullString `db:"account_name"`
	AccountEmail sql.NullString `db:"account_email"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Item struct {
	OrderID   string `db:"order_id"`
	Position  int    `db:"position"`
	ProductID string `db:"product_id"`
	Name      string `db:"name"`
	Price     int64  `db:"price"`
	Quantity  int    `db:"quantity"`
	Total     int64  `db:"total"`
}

// Address is the JSONB shape of shipping and billing addresses.
type Address struct {
	FullName     string `json:"full_name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

type Product struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Slug         string         `db:"slug"`
	Description  sql.NullString `db:"description"`
	Price        int64          `db:"price"`
	Image        sql.NullString `db:"image"`
	Stock        int            `db:"stock"`
	IsActive     bool           `db:"is_active"`
	Featured     bool           `db:"featured"`
	CategoryID   sql.NullString `db:"category_id"`
	CategoryName sql.NullString `db:"category_name"`
	CategorySlug sql.NullString `db:"category_slug"`
	CreatedAt    time.Time      `db:"created_at"`
}

type Category struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Slug         string `db:"slug"`
	ProductCount int    `db:"product_count"`
}

func AddressToJSON(a entities.Address) ([]byte, error) {
	return json.Marshal(Address{
		FullName:     a.FullName,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		Phone:        a.Phone,
	})
}

func AddressFromJSON(data []byte) (entities.Address, error) {
	var a Address
	if len(data) == 0 {
		return entities.Address{}, nil
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return entities.Address{}, fmt.Errorf("failed to unmarshal address: %w", err)
	}
	return entities.Address{
		FullName:     a.FullName,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		Phone:        a.Phone,
	}, nil
}

func ItemToEntity(i Item) entities.OrderItem {
	return entities.OrderItem{
		ProductID: i.ProductID,
		Name:      i.Name,
		Price:     i.Price,
		Quantity:  i.Quantity,
		Total:     i.Total,
	}
}

func OrderToEntity(o Order, items []Item) (entities.Order, error) {
	shipping, err := AddressFromJSON(o.ShippingAddress)
	if err != nil {
		return entities.Order{}, err
	}
	billing, err := AddressFromJSON(o.BillingAddress)
	if err != nil {
		return entities.Order{}, err
	}

	order := entities.Order{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      nullStringToString(o.UserID),
		Subtotal:    o.Subtotal,
		Shipping:    o.Shipping,
		Tax:         o.Tax,
		Total:       o.Total,
		Currency:    o.Currency,
		Customer: entities.Customer{
			FirstName: o.GuestFirstName,
			LastName:  nullStringToString(o.GuestLastName),
			Email:     o.GuestEmail,
			Phone:     nullStringToString(o.GuestPhone),
		},
		ShippingAddress:      shipping,
		BillingAddress:       billing,
		ShippingMethod:       nullStringToString(o.ShippingMethod),
		Notes:                nullStringToString(o.Notes),
		PaymentMethod:        entities.PaymentMethod(o.PaymentMethod),
		PaymentStatus:        entities.PaymentStatus(o.PaymentStatus),
		Status:               entities.OrderStatus(o.Status),
		PaymentSessionID:     nullStringToString(o.PaymentSessionID),
		PaymentTransactionID: nullStringToString(o.PaymentTransactionID),
		PaymentSignature:     nullStringToString(o.PaymentSignature),
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}

	if o.UserID.Valid && o.AccountEmail.Valid {
		order.Account = &entities.Account{
			ID:    o.UserID.String,
			Name:  nullStringToString(o.AccountName),
			Email: o.AccountEmail.String,
		}
	}

	if len(items) > 0 {
		order.Items = make([]entities.OrderItem, 0, len(items))
		for _, it := range items {
			order.Items = append(order.Items, ItemToEntity(it))
		}
	}

	return order, nil
}

func ProductToEntity(p Product) entities.Product {
	product := entities.Product{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: nullStringToString(p.Description),
		Price:       p.Price,
		Image:       nullStringToString(p.Image),
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt,
	}
	if p.CategoryID.Valid && p.CategoryName.Valid {
		product.Category = entities.Category{
			ID:   p.CategoryID.String,
			Name: p.CategoryName.String,
			Slug: nullStringToString(p.CategorySlug),
		}
	}
	return product
}

func CategoryToEntity(c Category) entities.Category {
	return entities.Category{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		ProductCount: c.ProductCount,
	}
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
