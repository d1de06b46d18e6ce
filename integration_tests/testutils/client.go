package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

// Client calls the test server, optionally as a signed-in user.
type Client struct {
	t     *testing.T
	base  string
	token string

	UserID int64
}

func (env *TestEnvironment) Client() *Client {
	return &Client{t: env.T, base: env.Server.URL}
}

// Response is a captured HTTP response.
type Response struct {
	Code int
	Body []byte
}

func (r Response) Text() string { return string(bytes.TrimSpace(r.Body)) }

// Decode unmarshals the body into out and fails the test on error.
func (r Response) Decode(t *testing.T, out any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, out); err != nil {
		t.Fatalf("decode %q: %v", r.Body, err)
	}
}

func (c *Client) Do(method, path string, body any) Response {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		c.t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.t.Fatalf("read body: %v", err)
	}
	return Response{Code: resp.StatusCode, Body: data}
}

// Session is the auth payload returned by Register, Login and Refresh.
type Session struct {
	UserID       int64  `json:"id"`
	UserName     string `json:"userName"`
	RoleName     string `json:"roleName"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Register creates an account and signs the client in as it.
func (c *Client) Register(acct Account) Session {
	c.t.Helper()
	return c.signIn(c.Do(http.MethodPost, "/api/auth/Register", acct))
}

func (c *Client) Login(email, password string) Session {
	c.t.Helper()
	return c.signIn(c.Do(http.MethodPost, "/api/auth/Login", map[string]string{"email": email, "password": password}))
}

func (c *Client) signIn(resp Response) Session {
	c.t.Helper()
	if resp.Code != http.StatusOK {
		c.t.Fatalf("sign in failed: %d %s", resp.Code, resp.Text())
	}
	var s Session
	resp.Decode(c.t, &s)
	c.token = s.AccessToken
	c.UserID = s.UserID
	return s
}
