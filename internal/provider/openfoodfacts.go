package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

const (
	openFoodFactsProductURL = "https://world.openfoodfacts.org/api/v2/product/%s.json"
	openFoodFactsSearchURL  = "https://world.openfoodfacts.org/cgi/search.pl"
	userAgent               = "grub-core/1.0 (nutrition-tracking-service)"

	totalTimeout   = 10 * time.Second
	connectTimeout = 5 * time.Second
)

// OpenFoodFacts is the default FoodLookupProvider implementation: a plain
// net/http client with a required User-Agent header, decoding the Open
// Food Facts product and search JSON shapes.
type OpenFoodFacts struct {
	httpClient *http.Client
}

func NewOpenFoodFacts() *OpenFoodFacts {
	return &OpenFoodFacts{
		httpClient: &http.Client{
			Timeout: totalTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
		},
	}
}

type offProductResponse struct {
	Status  int            `json:"status"`
	Product *offProduct    `json:"product,omitempty"`
}

type offProduct struct {
	ProductName string         `json:"product_name"`
	Brands      string         `json:"brands"`
	Nutriments  offNutriments  `json:"nutriments"`
	Code        string         `json:"code"`
}

type offNutriments struct {
	EnergyKcal100g    float64 `json:"energy-kcal_100g"`
	Proteins100g      float64 `json:"proteins_100g"`
	Carbohydrates100g float64 `json:"carbohydrates_100g"`
	Fat100g           float64 `json:"fat_100g"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}

// LookupBarcode fetches product data from Open Food Facts by barcode.
// A miss is reported as (nil, nil), not an error. The orchestrator
// treats "provider has nothing" as a normal outcome, not a failure.
func (p *OpenFoodFacts) LookupBarcode(code string) (*NewFood, error) {
	if code == "" {
		return nil, fmt.Errorf("barcode cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), totalTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(openFoodFactsProductURL, code), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open food facts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open food facts returned status %d", resp.StatusCode)
	}

	var body offProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode open food facts response: %w", err)
	}
	if body.Status != 1 || body.Product == nil {
		return nil, nil
	}

	return convertProduct(*body.Product, &code), nil
}

// Search queries Open Food Facts by free-text product name.
func (p *OpenFoodFacts) Search(query string) ([]NewFood, error) {
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), totalTimeout)
	defer cancel()

	u := fmt.Sprintf("%s?search_terms=%s&page_size=20&json=true", openFoodFactsSearchURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open food facts search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open food facts returned status %d", resp.StatusCode)
	}

	var body offSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode open food facts response: %w", err)
	}

	results := make([]NewFood, 0, len(body.Products))
	for _, product := range body.Products {
		if product.ProductName == "" {
			continue
		}
		code := product.Code
		var barcode *string
		if code != "" {
			barcode = &code
		}
		results = append(results, *convertProduct(product, barcode))
	}
	return results, nil
}

func convertProduct(product offProduct, barcode *string) *NewFood {
	var brand *string
	if product.Brands != "" {
		brand = &product.Brands
	}
	protein := product.Nutriments.Proteins100g
	carbs := product.Nutriments.Carbohydrates100g
	fat := product.Nutriments.Fat100g
	return &NewFood{
		Name:            product.ProductName,
		Brand:           brand,
		Barcode:         barcode,
		CaloriesPer100g: product.Nutriments.EnergyKcal100g,
		ProteinPer100g:  &protein,
		CarbsPer100g:    &carbs,
		FatPer100g:      &fat,
	}
}
