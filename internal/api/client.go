package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RequestError is returned for any non-success response. Message is the
// server-supplied explanation when the body carried one, otherwise a
// generic per-operation fallback.
type RequestError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

// errorBody is the JSON error shape used by the API. The recipe
// endpoint uses "message" where the others use "error".
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Client is a stateless client for the external API. The session token
// is passed to each call rather than held on the client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client. baseURL includes the /api prefix.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do issues a request and hands back the response when the status code
// is 2xx. Anything else is turned into a *RequestError using the JSON
// error body when one is present.
func (c *Client) do(ctx context.Context, op, method, path, token string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, requestError(op, resp)
	}
	return resp, nil
}

func requestError(op string, resp *http.Response) *RequestError {
	msg := fallbackMessage(op)
	var eb errorBody
	if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
		if eb.Error != "" {
			msg = eb.Error
		} else if eb.Message != "" {
			msg = eb.Message
		}
	}
	return &RequestError{Op: op, StatusCode: resp.StatusCode, Message: msg}
}

func fallbackMessage(op string) string {
	switch op {
	case "login":
		return "Login failed"
	case "register":
		return "Registration failed"
	case "profile":
		return "Failed to fetch user profile"
	case "fridge":
		return "Failed to fetch fridge contents"
	case "add_item":
		return "Failed to add item to fridge"
	case "set_quantity":
		return "Failed to update item quantity"
	case "remove_item":
		return "Failed to remove item from fridge"
	case "clear_fridge":
		return "Failed to clear fridge"
	case "recipes":
		return "Failed to fetch recipes"
	default:
		return "Request failed"
	}
}

func decodeInto(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Login authenticates with email and password and returns a token plus
// the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	resp, err := c.do(ctx, "login", http.MethodPost, "/login/", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	var out AuthResponse
	if err := decodeInto(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account. name may be empty.
func (c *Client) Register(ctx context.Context, email, password, name string) (*AuthResponse, error) {
	resp, err := c.do(ctx, "register", http.MethodPost, "/register/", "", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	})
	if err != nil {
		return nil, err
	}
	var out AuthResponse
	if err := decodeInto(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile fetches the current user's profile.
func (c *Client) Profile(ctx context.Context, token string) (*User, error) {
	resp, err := c.do(ctx, "profile", http.MethodGet, "/profile/", token, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		User User `json:"user"`
	}
	if err := decodeInto(resp, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Logout invalidates the token server-side. Best-effort: the response
// body is ignored.
func (c *Client) Logout(ctx context.Context, token string) error {
	resp, err := c.do(ctx, "logout", http.MethodPost, "/logout/", token, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Fridge fetches the authoritative inventory.
func (c *Client) Fridge(ctx context.Context, token string) (*Fridge, error) {
	resp, err := c.do(ctx, "fridge", http.MethodGet, "/fridge/", token, nil)
	if err != nil {
		return nil, err
	}
	var out Fridge
	if err := decodeInto(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddItem creates a new inventory item and returns it.
func (c *Client) AddItem(ctx context.Context, token, name string, quantity int) (*FridgeItem, error) {
	resp, err := c.do(ctx, "add_item", http.MethodPost, "/fridge/add/", token, map[string]interface{}{
		"name":     name,
		"quantity": quantity,
	})
	if err != nil {
		return nil, err
	}
	var out FridgeItem
	if err := decodeInto(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetItemQuantity updates an item's quantity. A JSON null response
// means the server removed the item because its quantity reached zero;
// that is reported as (nil, nil).
func (c *Client) SetItemQuantity(ctx context.Context, token string, itemID, quantity int) (*FridgeItem, error) {
	path := fmt.Sprintf("/fridge/item/%d/", itemID)
	resp, err := c.do(ctx, "set_quantity", http.MethodPatch, path, token, map[string]int{
		"quantity": quantity,
	})
	if err != nil {
		return nil, err
	}
	var out *FridgeItem
	if err := decodeInto(resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveItem deletes an item. Idempotent: 200, 204 and 404 all count
// as success, so removing an already-removed item is fine.
func (c *Client) RemoveItem(ctx context.Context, token string, itemID int) error {
	path := fmt.Sprintf("/fridge/item/%d/remove/", itemID)
	resp, err := c.do(ctx, "remove_item", http.MethodDelete, path, token, nil)
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound {
			return nil
		}
		return err
	}
	resp.Body.Close()
	return nil
}

// ClearFridge removes every item from the inventory.
func (c *Client) ClearFridge(ctx context.Context, token string) error {
	resp, err := c.do(ctx, "clear_fridge", http.MethodDelete, "/fridge/clear/", token, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// FindRecipesByIngredients asks the server for recipe suggestions
// based on the current fridge. A 200 response may be either a recipe
// list or an object with a message explaining why no suggestions are
// possible; the latter yields an empty result with that message.
func (c *Client) FindRecipesByIngredients(ctx context.Context, token string) (*RecipeResult, error) {
	resp, err := c.do(ctx, "recipes", http.MethodGet, "/recipes/find-by-ingredients/", token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var recipes []Recipe
	if err := json.Unmarshal(data, &recipes); err == nil {
		return &RecipeResult{Recipes: recipes}, nil
	}

	var eb errorBody
	if err := json.Unmarshal(data, &eb); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &RecipeResult{Message: eb.Message}, nil
}
