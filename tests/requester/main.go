package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const baseURL = "http://localhost:8080"

// Популярные товары, чтобы нагрузка шла через кэш
var slugs = []string{
	"vitamin-c-serum",
	"night-cream",
	"hyaluronic-toner",
	"spf-50-sunscreen",
}

func main() {
	for {
		var wg sync.WaitGroup
		for range rand.Intn(10) {
			wg.Go(doRequest)
		}
		wg.Wait()
		time.Sleep(20 * time.Millisecond)
	}
}

func randomSlug(length int) string {
	chars := []rune("abcdefghijklmnopqrstuvwxyz-")
	slug := make([]rune, length)
	for i := range slug {
		slug[i] = chars[rand.Intn(len(chars))]
	}
	return string(slug)
}

func doRequest() {
	var target string
	switch rand.Intn(5) {
	case 0:
		target = baseURL + "/products/" + randomSlug(12)
	case 1:
		q := url.Values{"search": {"serum"}, "page": {fmt.Sprint(rand.Intn(3) + 1)}}
		target = baseURL + "/products?" + q.Encode()
	default:
		target = baseURL + "/products/" + slugs[rand.Intn(len(slugs))]
	}

	resp, err := http.Get(target)
	if err != nil {
		fmt.Println("Ошибка запроса:", err)
	} else {
		fmt.Println("GET", target, "->", resp.Status)
		resp.Body.Close()
	}
}
