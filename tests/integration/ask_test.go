//go:build integration

package integration

import (
	"net/http"
	"strings"
	"testing"
)

func TestAsk(t *testing.T) {
	resp := doPost(t, "/api/ask", askRequest{Question: "Which iPhone should I buy?"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeJSON[askResponse](t, resp)
	if body.Answer == "" {
		t.Error("answer is empty")
	}
	if body.Source != "ai" && body.Source != "fallback" {
		t.Errorf("source: got %q, want ai or fallback", body.Source)
	}
	if len(body.Products) == 0 {
		t.Fatal("expected at least one product")
	}
	if body.Products[0].ID != "P001" {
		t.Errorf("top product: got %q, want P001", body.Products[0].ID)
	}
}

func TestAsk_Filtered(t *testing.T) {
	minRating := 4.5
	resp := doPost(t, "/api/ask", askRequest{
		Question: "best laptop",
		Filters:  &askFilters{Category: "Laptop", MinRating: &minRating},
		Limit:    3,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeJSON[askResponse](t, resp)
	if len(body.Products) == 0 {
		t.Fatal("expected at least one product")
	}
	if len(body.Products) > 3 {
		t.Errorf("limit not applied: got %d products", len(body.Products))
	}
	for _, p := range body.Products {
		if p.Category != "Laptop" {
			t.Errorf("category: got %q, want Laptop", p.Category)
		}
		if p.Rating < minRating {
			t.Errorf("rating: got %v, want >= %v", p.Rating, minRating)
		}
	}
}

func TestAsk_NoMatches(t *testing.T) {
	resp := doPost(t, "/api/ask", askRequest{Question: "zzzznotaproduct"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeJSON[askResponse](t, resp)
	if len(body.Products) != 0 {
		t.Errorf("expected no products, got %d", len(body.Products))
	}
	if body.Answer == "" {
		t.Error("answer is empty")
	}
}

func TestAsk_NegativeLimit(t *testing.T) {
	resp := doPost(t, "/api/ask", askRequest{Question: "phone", Limit: -1})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAsk_MalformedBody(t *testing.T) {
	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/ask", strings.NewReader(`{"question": `))
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
