package catalog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	client, err := NewClient("http://shop.test", WithHTTPClient(&http.Client{Transport: rt}), WithRetry(0, time.Millisecond))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func TestFetchProductsNormalizesMalformedRecords(t *testing.T) {
	body := `[
		{"id": 1, "title": "Caneca", "price": "12.5", "description": "Caneca DEISI", "category": "Merch", "image": "http://img/1.png", "rating": {"rate": 4.5, "count": 10}},
		{"id": 2, "title": "Sticker"},
		{"id": 3, "title": "Caderno", "price": "not-a-number", "image": "", "rating": null},
		"not-an-object"
	]`

	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.String() != "http://shop.test/products/" {
			t.Fatalf("unexpected URL %q", req.URL.String())
		}
		if req.Header.Get("Accept") != "application/json" {
			t.Fatalf("missing accept header")
		}
		return jsonResponse(http.StatusOK, body), nil
	})

	products := client.FetchProducts(context.Background())
	if len(products) != 4 {
		t.Fatalf("expected 4 products, got %d", len(products))
	}

	full := products[0]
	if full.Price != 12.5 || full.Rating.Rate != 4.5 || full.Rating.Count != 10 {
		t.Fatalf("unexpected normalized product %+v", full)
	}

	sparse := products[1]
	if sparse.Price != 0 || sparse.Description != "" || sparse.Category != "" {
		t.Fatalf("missing fields should default, got %+v", sparse)
	}
	if sparse.Image != PlaceholderImage {
		t.Fatalf("expected placeholder image, got %q", sparse.Image)
	}
	if sparse.Rating != (Rating{}) {
		t.Fatalf("missing rating should default to zero, got %+v", sparse.Rating)
	}

	badPrice := products[2]
	if badPrice.Price != 0 {
		t.Fatalf("non-numeric price should default to 0, got %f", badPrice.Price)
	}
	if badPrice.Image != PlaceholderImage {
		t.Fatalf("blank image should fall back to placeholder, got %q", badPrice.Image)
	}

	garbage := products[3]
	if garbage.ID != 0 || garbage.Title != "" || garbage.Image != PlaceholderImage {
		t.Fatalf("non-object record should yield a defaulted product, got %+v", garbage)
	}
}

func TestFetchProductsDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name string
		rt   roundTripFunc
	}{
		{
			name: "transportFailure",
			rt: func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("dial tcp: connection refused")
			},
		},
		{
			name: "serverError",
			rt: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusInternalServerError, `{"detail":"boom"}`), nil
			},
		},
		{
			name: "clientError",
			rt: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusNotFound, `{"detail":"missing"}`), nil
			},
		},
		{
			name: "nonArrayPayload",
			rt: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"products":[]}`), nil
			},
		},
		{
			name: "invalidJSON",
			rt: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `<html>gateway error</html>`), nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.rt)
			products := client.FetchProducts(context.Background())
			if len(products) != 0 {
				t.Fatalf("expected empty result, got %d products", len(products))
			}
		})
	}
}

func TestFetchProductsRetriesTransportFailures(t *testing.T) {
	attempts := 0
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("connection reset")
		}
		return jsonResponse(http.StatusOK, `[{"id":1,"title":"Caneca","price":12.5}]`), nil
	})

	client, err := NewClient("http://shop.test", WithHTTPClient(&http.Client{Transport: rt}), WithRetry(2, time.Millisecond))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	products := client.FetchProducts(context.Background())
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
	if len(products) != 1 || products[0].Title != "Caneca" {
		t.Fatalf("unexpected products %+v", products)
	}
}

func TestFetchProductsDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		attempts++
		return jsonResponse(http.StatusForbidden, `{}`), nil
	})

	client, err := NewClient("http://shop.test", WithHTTPClient(&http.Client{Transport: rt}), WithRetry(3, time.Millisecond))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if products := client.FetchProducts(context.Background()); len(products) != 0 {
		t.Fatalf("expected empty result, got %+v", products)
	}
	if attempts != 1 {
		t.Fatalf("4xx should not be retried, got %d attempts", attempts)
	}
}

func TestFetchCategoriesCoercesAndFilters(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.String() != "http://shop.test/categories/" {
			t.Fatalf("unexpected URL %q", req.URL.String())
		}
		return jsonResponse(http.StatusOK, `["Merch", 3, true, "", null, {"name":"obj"}]`), nil
	})

	categories := client.FetchCategories(context.Background())
	want := []string{"Merch", "3", "true"}
	if len(categories) != len(want) {
		t.Fatalf("expected %v, got %v", want, categories)
	}
	for i := range want {
		if categories[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, categories)
		}
	}
}

func TestFetchCategoriesDegradesToEmpty(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("no route to host")
	})

	if categories := client.FetchCategories(context.Background()); len(categories) != 0 {
		t.Fatalf("expected empty categories, got %v", categories)
	}
}

func TestPing(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `[]`), nil
	})
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("expected healthy ping, got %v", err)
	}

	down := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, ``), nil
	})
	if err := down.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error for 502")
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient("  "); err == nil {
		t.Fatal("expected error for blank base URL")
	}
}
