package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/pkg/cart"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/checkout"
)

const baseURL = "http://localhost:8080"

type product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
	Category struct {
		Name string `json:"name"`
	} `json:"category"`
}

func fetchProducts(ctx context.Context) ([]product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/products", nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var page struct {
		Products []product `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, err
	}
	return page.Products, nil
}

// Клиентская цена иногда врёт, сервер должен её игнорировать
func randomCart(products []product) *cart.Cart {
	c := cart.New()
	for range rand.Intn(3) + 1 {
		p := products[rand.Intn(len(products))]
		c.AddItem(cart.Product{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price - int64(rand.Intn(2)*p.Price/2),
			Image:    p.Image,
			Category: p.Category.Name,
		}, rand.Intn(3)+1)
	}
	return c
}

func randomForm() checkout.Form {
	method := checkout.MethodGateway
	if rand.Intn(4) == 0 {
		method = checkout.MethodCOD
	}
	n := rand.Intn(1000)
	return checkout.Form{
		Customer: checkout.Customer{
			FirstName: "Test",
			LastName:  fmt.Sprintf("Shopper%d", n),
			Email:     fmt.Sprintf("shopper%d@example.com", n),
			Phone:     fmt.Sprintf("98%08d", rand.Intn(99999999)),
		},
		ShippingAddress: checkout.Address{
			FullName:     fmt.Sprintf("Test Shopper%d", n),
			AddressLine1: fmt.Sprintf("%d MG Road", rand.Intn(200)+1),
			City:         "Bengaluru",
			State:        "KA",
			PostalCode:   fmt.Sprintf("560%03d", rand.Intn(999)),
			Country:      "IN",
		},
		PaymentMethod: method,
	}
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	widget := checkout.NewSandboxWidget(os.Getenv("RAZORPAY_KEY_SECRET"))
	widget.Decide = func(checkout.Options) checkout.OutcomeKind {
		switch rand.Intn(10) {
		case 0:
			return checkout.OutcomeDismissed
		case 1:
			return checkout.OutcomeLoadFailed
		default:
			return checkout.OutcomeSuccess
		}
	}
	widget.Tamper = func(cb *checkout.Callback) {
		if rand.Intn(10) == 0 {
			cb.Signature = "deadbeef"
		}
	}

	flow := checkout.NewFlow(logger, checkout.NewClient(baseURL), widget, "Glow Skincare")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	products, err := fetchProducts(ctx)
	if err != nil || len(products) == 0 {
		logger.Error("no products to buy", "err", err)
		return
	}

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			res, err := flow.Checkout(ctx, randomCart(products), randomForm())
			if err != nil {
				logger.Warn("checkout failed", "err", err)
				continue
			}
			logger.Info("checkout finished", "status", res.Status, "order", res.OrderNumber, "redirect", res.RedirectURL)
		case <-ctx.Done():
			return
		}
	}
}
