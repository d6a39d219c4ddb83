package entities

import (
	"bytes"
	"encoding/gob"
	"time"
)

type Category struct {
	ID           string
	Name         string
	Slug         string
	ProductCount int
}

type Product struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Price       int64
	Image       string
	Stock       int
	IsActive    bool
	Featured    bool

	// zero value when the category row is gone
	Category Category

	CreatedAt time.Time
}

type ProductFilter struct {
	Search      string
	CategoryIDs []string
	MinPrice    *int64
	MaxPrice    *int64
	Page        int
	Limit       int
}

type ProductPage struct {
	Products   []Product
	Total      int
	Page       int
	TotalPages int
}

func (p *Product) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *Product) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	if err := dec.Decode(p); err != nil {
		return ErrInvalidProduct
	}
	return nil
}

func init() {
	gob.Register(Product{})
	gob.Register(Category{})
}
