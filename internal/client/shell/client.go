// Package shell implements the HTTP client side of the chat shell: typed
// calls for every request the server understands, with the session cookie
// carried in a jar across calls.
package shell

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"os"
	"path/filepath"

	"github.com/mbagrov/chatshell/internal/models"
)

const (
	apiRegister = "/api/register"
	apiLogin    = "/api/login"
	apiView     = "/api/view"
	apiNavigate = "/api/navigate"
	apiChats    = "/api/chats"
	apiSelect   = "/api/chats/select"
	apiMessages = "/api/messages"
	apiUpload   = "/api/upload"
	apiLogout   = "/api/logout"
)

// DayView mirrors the server's sidebar group.
type DayView struct {
	Date     string   `json:"date"`
	Sessions []string `json:"sessions"`
}

// View mirrors the server's rendered state.
type View struct {
	Page     models.PageID    `json:"page"`
	Username string           `json:"username"`
	Session  string           `json:"session"`
	Nonce    int              `json:"nonce"`
	Days     []DayView        `json:"days"`
	Messages []models.Message `json:"messages"`
}

// Client talks to one chat shell server, keeping the session cookie.
type Client struct {
	http    *http.Client
	baseURL string
}

// New creates a Client for the given base URL.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &Client{
		http:    &http.Client{Jar: jar},
		baseURL: baseURL,
	}, nil
}

// post sends a JSON body and decodes the view from the response. A non-2xx
// status is returned as an error carrying the server's message.
func (c *Client) post(path string, body any) (*View, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server: %s", bytes.TrimSpace(msg))
	}
	var view View
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Register creates credentials on the server.
func (c *Client) Register(login, secret string) error {
	payload, err := json.Marshal(map[string]string{"login": login, "secret": secret})
	if err != nil {
		return err
	}
	resp, err := c.http.Post(c.baseURL+apiRegister, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server: %s", bytes.TrimSpace(msg))
	}
	return nil
}

// Login authenticates and returns the first rendered view.
func (c *Client) Login(login, secret string) (*View, error) {
	return c.post(apiLogin, map[string]string{"login": login, "secret": secret})
}

// CurrentView fetches the view without a state transition.
func (c *Client) CurrentView() (*View, error) {
	resp, err := c.http.Get(c.baseURL + apiView)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var view View
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Navigate requests a page switch.
func (c *Client) Navigate(page string) (*View, error) {
	return c.post(apiNavigate, map[string]string{"page": page})
}

// NewChat starts a fresh chat session.
func (c *Client) NewChat() (*View, error) {
	return c.post(apiChats, struct{}{})
}

// Select switches the active chat session.
func (c *Client) Select(label string) (*View, error) {
	return c.post(apiSelect, map[string]string{"label": label})
}

// Send submits one chat message.
func (c *Client) Send(text string) (*View, error) {
	return c.post(apiMessages, map[string]string{"text": text})
}

// Logout resets the server-side session context.
func (c *Client) Logout() (*View, error) {
	return c.post(apiLogout, struct{}{})
}

// Upload sends a local file and returns the server's acknowledgement.
func (c *Client) Upload(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	resp, err := c.http.Post(c.baseURL+apiUpload, mw.FormDataContentType(), &buf)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("server: %s", bytes.TrimSpace(msg))
	}
	var ack struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return "", err
	}
	return ack.Message, nil
}
