// Package apiclient is the HTTP client for the site API, used by novactl.
// It satisfies the chatflow Checker and Registrar interfaces.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"novaition/internal/model"
)

// Collection selects which duplicate-check variant to hit.
type Collection int

const (
	Users Collection = iota
	Orders
)

// APIError is a non-2xx response carrying the server's message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// UserMessage is the text suitable for showing to the end user.
func (e *APIError) UserMessage() string { return e.Message }

// Client calls the site API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// apiResponse covers every endpoint's body; unused fields stay zero.
type apiResponse struct {
	Success  bool   `json:"success"`
	Exists   bool   `json:"exists"`
	Message  string `json:"message"`
	ErrorMsg string `json:"error"`
	UserID   string `json:"userId"`
	ID       string `json:"id"`
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

func (r *apiResponse) failureText() string {
	if r.Message != "" {
		return r.Message
	}
	if r.ErrorMsg != "" {
		return r.ErrorMsg
	}
	return "request failed"
}

// CheckEmail reports whether the email already exists in the collection.
func (c *Client) CheckEmail(ctx context.Context, email string, col Collection) (bool, error) {
	path := "/api/check-email1"
	if col == Orders {
		path = "/api/check-email2"
	}
	resp, err := c.postJSON(ctx, path, map[string]string{"email": email})
	if err != nil {
		return false, err
	}
	return resp.Exists, nil
}

// CheckNIC reports whether the NIC already exists in the collection.
func (c *Client) CheckNIC(ctx context.Context, nic string, col Collection) (bool, error) {
	path := "/api/check-id1"
	if col == Orders {
		path = "/api/check-id2"
	}
	resp, err := c.postJSON(ctx, path, map[string]string{"id": nic})
	if err != nil {
		return false, err
	}
	return resp.Exists, nil
}

// EmailRegistered satisfies chatflow.Checker against the users collection.
func (c *Client) EmailRegistered(ctx context.Context, email string) (bool, error) {
	return c.CheckEmail(ctx, email, Users)
}

// NICRegistered satisfies chatflow.Checker. The chat checks the orders
// collection first, matching the site; the register endpoint still enforces
// users-collection uniqueness itself.
func (c *Client) NICRegistered(ctx context.Context, nic string) (bool, error) {
	return c.CheckNIC(ctx, nic, Orders)
}

// Register submits a registration and returns the new attendee's ID.
func (c *Client) Register(ctx context.Context, a model.Attendee) (string, error) {
	resp, err := c.postJSON(ctx, "/api/register", a)
	if err != nil {
		return "", err
	}
	return resp.UserID, nil
}

// SubmitOrder submits a pre-order and returns the new order's ID.
func (c *Client) SubmitOrder(ctx context.Context, o model.Order) (string, error) {
	resp, err := c.postJSON(ctx, "/api/submit-order", o)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

// Upload sends one receipt image and returns its hosted URL and public ID.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", "", fmt.Errorf("api: create form file failed: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", "", fmt.Errorf("api: read file failed: %w", err)
	}
	w.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/upload", &buf)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return "", "", err
	}
	return resp.URL, resp.PublicID, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (*apiResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*apiResponse, error) {
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	var out apiResponse
	_ = json.Unmarshal(body, &out)

	if res.StatusCode >= 300 {
		return nil, &APIError{Status: res.StatusCode, Message: out.failureText()}
	}
	return &out, nil
}
