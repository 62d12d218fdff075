package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Mark-Bosco/Clear-Meals/models"
)

const (
	fatSecretTokenURL = "https://oauth.fatsecret.com/connect/token"
	fatSecretAPIURL   = "https://platform.fatsecret.com/rest/server.api"
)

// FatSecretService talks to the FatSecret platform API: OAuth2
// client-credentials token, then method-parameterized calls against the
// single REST endpoint. Tokens are requested per call and never cached.
type FatSecretService struct {
	clientID     string
	clientSecret string
	client       *http.Client
}

func NewFatSecretService() *FatSecretService {
	return &FatSecretService{
		clientID:     os.Getenv("FATSECRET_CLIENT_ID"),
		clientSecret: os.Getenv("FATSECRET_CLIENT_SECRET"),
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (s *FatSecretService) accessToken() (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "premier")

	req, err := http.NewRequest("POST", fatSecretTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(s.clientID, s.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call FatSecret token endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fatsecret token error %d: %s", resp.StatusCode, string(body))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("failed to parse token JSON: %w", err)
	}
	return tr.AccessToken, nil
}

// call performs one method invocation against the platform endpoint and
// returns the raw response body.
func (s *FatSecretService) call(params url.Values) ([]byte, error) {
	token, err := s.accessToken()
	if err != nil {
		return nil, err
	}

	params.Set("format", "json")
	req, err := http.NewRequest("POST", fatSecretAPIURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create FatSecret request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call FatSecret API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read FatSecret response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fatsecret API error %d: %s", resp.StatusCode, string(body))
	}

	// The API reports its own failures inside a 200 body.
	var apiErr struct {
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != nil {
		return nil, fmt.Errorf("fatsecret API error %d: %s", apiErr.Error.Code, apiErr.Error.Message)
	}

	return body, nil
}

// FoodSearchPage is one page of foods.search results, numeric fields
// string-typed as the API sends them.
type FoodSearchPage struct {
	MaxResults   string `json:"max_results"`
	TotalResults string `json:"total_results"`
	PageNumber   string `json:"page_number"`
	Results      struct {
		Food []models.ReferenceFood `json:"food"`
	} `json:"results"`
}

type foodSearchResponse struct {
	FoodsSearch FoodSearchPage `json:"foods_search"`
}

// SearchFoods runs a paged foods.search query.
func (s *FatSecretService) SearchFoods(query string, page int) (*FoodSearchPage, error) {
	params := url.Values{}
	params.Set("method", "foods.search.v3")
	params.Set("search_expression", query)
	params.Set("page_number", fmt.Sprintf("%d", page))
	params.Set("include_food_attributes", "false")

	body, err := s.call(params)
	if err != nil {
		return nil, err
	}

	var sr foodSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse foods.search JSON: %w", err)
	}
	return &sr.FoodsSearch, nil
}

type autocompleteResponse struct {
	Suggestions struct {
		Suggestion []string `json:"suggestion"`
	} `json:"suggestions"`
}

// Autocomplete returns search-box suggestions for a partial expression.
func (s *FatSecretService) Autocomplete(expression string) ([]string, error) {
	params := url.Values{}
	params.Set("method", "foods.autocomplete")
	params.Set("expression", expression)

	body, err := s.call(params)
	if err != nil {
		return nil, err
	}

	var ar autocompleteResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return nil, fmt.Errorf("failed to parse autocomplete JSON: %w", err)
	}
	return ar.Suggestions.Suggestion, nil
}

type foodGetResponse struct {
	Food models.ReferenceFood `json:"food"`
}

// GetFood fetches the full serving list for one food id.
func (s *FatSecretService) GetFood(foodID string) (*models.ReferenceFood, error) {
	params := url.Values{}
	params.Set("method", "food.get.v4")
	params.Set("food_id", foodID)

	body, err := s.call(params)
	if err != nil {
		return nil, err
	}

	var fr foodGetResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return nil, fmt.Errorf("failed to parse food.get JSON: %w", err)
	}
	return &fr.Food, nil
}
