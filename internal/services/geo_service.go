package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/averahq/avera/internal/models"
)

// CountryResolver maps a client IP to a coarse country code. Lookups
// are best-effort; implementations fall back to the default region
// instead of failing.
type CountryResolver interface {
	ResolveCountry(ctx context.Context, clientIP string) string
}

// IPAPICountryResolver asks ipapi.co for the signup country. Any
// failure, including an empty answer, resolves to the default region.
type IPAPICountryResolver struct {
	httpClient *http.Client
	baseURL    string
}

func NewIPAPICountryResolver(httpClient *http.Client, baseURL string) *IPAPICountryResolver {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	if baseURL == "" {
		baseURL = "https://ipapi.co"
	}
	return &IPAPICountryResolver{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

func (resolver *IPAPICountryResolver) ResolveCountry(ctx context.Context, clientIP string) string {
	endpoint := resolver.baseURL + "/json/"
	if ip := strings.TrimSpace(clientIP); ip != "" {
		endpoint = fmt.Sprintf("%s/%s/json/", resolver.baseURL, ip)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.DefaultCountry
	}

	response, err := resolver.httpClient.Do(request)
	if err != nil {
		return models.DefaultCountry
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return models.DefaultCountry
	}

	payload := struct {
		CountryCode string `json:"country_code"`
	}{}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return models.DefaultCountry
	}

	country := strings.TrimSpace(payload.CountryCode)
	if country == "" {
		return models.DefaultCountry
	}
	return country
}
