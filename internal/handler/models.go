package handler

import (
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
)

// Customer контактные данные покупателя
type Customer struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=10,max=20"`
}

// Address адрес доставки или оплаты
type Address struct {
	FullName     string `json:"full_name" validate:"required,max=200"`
	AddressLine1 string `json:"address_line1" validate:"required,max=255"`
	AddressLine2 string `json:"address_line2,omitempty" validate:"max=255"`
	City         string `json:"city" validate:"required,max=100"`
	State        string `json:"state" validate:"required,max=100"`
	PostalCode   string `json:"postal_code" validate:"required,max=20"`
	Country      string `json:"country" validate:"required,iso3166_1_alpha2"`
	Phone        string `json:"phone,omitempty" validate:"max=20"`
}

// OrderItemRequest позиция корзины. Цена клиента не используется для расчёта
type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
	Quantity  int    `json:"quantity" validate:"required,gte=1,lte=100"`
	Price     int64  `json:"price" validate:"gte=0"`
}

// CreateOrderRequest оформление заказа из корзины
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" validate:"required,dive"`
	Customer        Customer           `json:"customer"`
	ShippingAddress Address            `json:"shipping_address"`
	BillingAddress  *Address           `json:"billing_address,omitempty" validate:"omitempty"`
	ShippingMethod  string             `json:"shipping_method,omitempty" validate:"omitempty,oneof=standard express"`
	Notes           string             `json:"notes,omitempty" validate:"max=1000"`
	PaymentMethod   string             `json:"payment_method" validate:"required"`
}

// CreateOrderResponse созданный заказ и, для онлайн оплаты, данные платёжной сессии
type CreateOrderResponse struct {
	OrderID          string `json:"order_id"`
	OrderNumber      string `json:"order_number"`
	Subtotal         int64  `json:"subtotal"`
	Shipping         int64  `json:"shipping"`
	Tax              int64  `json:"tax"`
	Total            int64  `json:"total"`
	Currency         string `json:"currency"`
	PaymentMethod    string `json:"payment_method"`
	PaymentSessionID string `json:"payment_session_id,omitempty"`
	RazorpayKeyID    string `json:"razorpay_key_id,omitempty"`
}

// VerifyPaymentRequest данные, которые платёжный виджет вернул после оплаты
type VerifyPaymentRequest struct {
	OrderID           string `json:"order_id" validate:"required,uuid"`
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// VerifyPaymentResponse состояние заказа после проверки оплаты
type VerifyPaymentResponse struct {
	OrderID       string `json:"order_id"`
	OrderNumber   string `json:"order_number"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// OrderItem позиция заказа
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Total     int64  `json:"total"`
}

// Order представляет заказ
type Order struct {
	ID              string      `json:"id"`
	OrderNumber     string      `json:"order_number"`
	Status          string      `json:"status"`
	PaymentStatus   string      `json:"payment_status"`
	PaymentMethod   string      `json:"payment_method"`
	Items           []OrderItem `json:"items"`
	Subtotal        int64       `json:"subtotal"`
	Shipping        int64       `json:"shipping"`
	Tax             int64       `json:"tax"`
	Total           int64       `json:"total"`
	Currency        string      `json:"currency"`
	Customer        Customer    `json:"customer"`
	ShippingAddress Address     `json:"shipping_address"`
	BillingAddress  Address     `json:"billing_address"`
	ShippingMethod  string      `json:"shipping_method,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// Category категория каталога
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ProductCount int    `json:"product_count"`
}

// ProductCategory категория в карточке товара
type ProductCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product товар каталога
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description,omitempty"`
	Price       int64            `json:"price"`
	Image       string           `json:"image,omitempty"`
	Stock       int              `json:"stock"`
	Featured    bool             `json:"featured"`
	Category    *ProductCategory `json:"category,omitempty"`
}

// ProductPage страница каталога
type ProductPage struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
}

// ProductsQuery параметры фильтрации каталога
type ProductsQuery struct {
	Search      string   `validate:"max=100"`
	CategoryIDs []string `validate:"max=20,dive,required,max=64"`
	MinPrice    *int64   `validate:"omitempty,gte=0"`
	MaxPrice    *int64   `validate:"omitempty,gte=0"`
	Page        int      `validate:"gte=0"`
	Limit       int      `validate:"gte=0,lte=100"`
}

// OrderConfirmedMessage событие из топика подтверждённых заказов
type OrderConfirmedMessage struct {
	OrderID       string               `json:"order_id" validate:"required,uuid"`
	OrderNumber   string               `json:"order_number" validate:"required"`
	CustomerName  string               `json:"customer_name"`
	CustomerEmail string               `json:"customer_email" validate:"omitempty,email"`
	PaymentMethod string               `json:"payment_method" validate:"required"`
	Total         int64                `json:"total" validate:"gte=0"`
	Currency      string               `json:"currency" validate:"required,len=3"`
	Items         []OrderConfirmedItem `json:"items" validate:"required,min=1,dive"`
	CreatedAt     time.Time            `json:"created_at" validate:"required"`
}

type OrderConfirmedItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name" validate:"required"`
	Price     int64  `json:"price" validate:"gte=0"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
	Total     int64  `json:"total" validate:"gte=0"`
}

func CustomerJSONToEntity(c Customer) entities.Customer {
	return entities.Customer{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

func CustomerEntityToJSON(c entities.Customer) Customer {
	return Customer{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

func AddressJSONToEntity(a Address) entities.Address {
	return entities.Address{
		FullName:     a.FullName,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		Phone:        a.Phone,
	}
}

func AddressEntityToJSON(a entities.Address) Address {
	return Address{
		FullName:     a.FullName,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		Phone:        a.Phone,
	}
}

// CreateOrderJSONToEntity без адреса оплаты используется адрес доставки
func CreateOrderJSONToEntity(r CreateOrderRequest, userID string) entities.OrderRequest {
	items := make([]entities.RequestItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entities.RequestItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	billing := r.ShippingAddress
	if r.BillingAddress != nil {
		billing = *r.BillingAddress
	}

	shippingMethod := r.ShippingMethod
	if shippingMethod == "" {
		shippingMethod = "standard"
	}

	return entities.OrderRequest{
		Items:           items,
		Customer:        CustomerJSONToEntity(r.Customer),
		ShippingAddress: AddressJSONToEntity(r.ShippingAddress),
		BillingAddress:  AddressJSONToEntity(billing),
		ShippingMethod:  shippingMethod,
		Notes:           r.Notes,
		PaymentMethod:   entities.PaymentMethod(r.PaymentMethod),
		UserID:          userID,
	}
}

func CreateOrderEntityToJSON(o entities.Order, keyID string) CreateOrderResponse {
	res := CreateOrderResponse{
		OrderID:          o.ID,
		OrderNumber:      o.OrderNumber,
		Subtotal:         o.Subtotal,
		Shipping:         o.Shipping,
		Tax:              o.Tax,
		Total:            o.Total,
		Currency:         o.Currency,
		PaymentMethod:    string(o.PaymentMethod),
		PaymentSessionID: o.PaymentSessionID,
	}
	if o.PaymentSessionID != "" {
		res.RazorpayKeyID = keyID
	}
	return res
}

func VerifyPaymentJSONToEntity(r VerifyPaymentRequest) entities.VerifyRequest {
	return entities.VerifyRequest{
		OrderID: r.OrderID,
		Callback: entities.PaymentCallback{
			ExternalOrderID:   r.RazorpayOrderID,
			ExternalPaymentID: r.RazorpayPaymentID,
			Signature:         r.RazorpaySignature,
		},
	}
}

func VerifyPaymentEntityToJSON(o entities.Order) VerifyPaymentResponse {
	return VerifyPaymentResponse{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
	}
}

func OrderEntityToJSON(o entities.Order) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Total:     it.Total,
		})
	}

	return Order{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		PaymentMethod:   string(o.PaymentMethod),
		Items:           items,
		Subtotal:        o.Subtotal,
		Shipping:        o.Shipping,
		Tax:             o.Tax,
		Total:           o.Total,
		Currency:        o.Currency,
		Customer:        CustomerEntityToJSON(o.Customer),
		ShippingAddress: AddressEntityToJSON(o.ShippingAddress),
		BillingAddress:  AddressEntityToJSON(o.BillingAddress),
		ShippingMethod:  o.ShippingMethod,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func CategoryEntityToJSON(c entities.Category) Category {
	return Category{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		ProductCount: c.ProductCount,
	}
}

func ProductEntityToJSON(p entities.Product) Product {
	res := Product{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Stock:       p.Stock,
		Featured:    p.Featured,
	}
	if p.Category.ID != "" {
		res.Category = &ProductCategory{ID: p.Category.ID, Name: p.Category.Name, Slug: p.Category.Slug}
	}
	return res
}

func ProductPageEntityToJSON(p entities.ProductPage) ProductPage {
	products := make([]Product, 0, len(p.Products))
	for _, it := range p.Products {
		products = append(products, ProductEntityToJSON(it))
	}
	return ProductPage{
		Products:   products,
		Total:      p.Total,
		Page:       p.Page,
		TotalPages: p.TotalPages,
	}
}

func ProductsQueryToFilter(q ProductsQuery) entities.ProductFilter {
	return entities.ProductFilter{
		Search:      q.Search,
		CategoryIDs: q.CategoryIDs,
		MinPrice:    q.MinPrice,
		MaxPrice:    q.MaxPrice,
		Page:        q.Page,
		Limit:       q.Limit,
	}
}

func OrderConfirmedJSONToEntity(m OrderConfirmedMessage) entities.OrderSummary {
	items := make([]entities.OrderItem, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, entities.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Total:     it.Total,
		})
	}
	return entities.OrderSummary{
		OrderID:       m.OrderID,
		OrderNumber:   m.OrderNumber,
		CustomerName:  m.CustomerName,
		CustomerEmail: m.CustomerEmail,
		PaymentMethod: entities.PaymentMethod(m.PaymentMethod),
		Total:         m.Total,
		Currency:      m.Currency,
		Items:         items,
		CreatedAt:     m.CreatedAt,
	}
}
