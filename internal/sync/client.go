package sync

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	gosync "sync"
	"time"
)

// Config holds sync configuration, persisted at ~/.gridplan/sync.json.
type Config struct {
	ServerURL     string `json:"server_url"`
	Token         string `json:"token"`
	UserID        string `json:"user_id"`
	LastVersion   int64  `json:"last_version"`
	EncryptionKey string `json:"encryption_key,omitempty"` // Base64, derived at key setup
	Salt          string `json:"salt,omitempty"`           // Base64 PBKDF2 salt
}

// Client talks to the gridplan sync server. The config is shared between
// the debounced-push and poll goroutines, so all access goes through mu.
type Client struct {
	mu         gosync.Mutex
	config     *Config
	configPath string
	httpClient *http.Client
}

// NewClient creates a new sync client
func NewClient() (*Client, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	c := &Client{
		configPath: filepath.Join(home, ".gridplan", "sync.json"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	c.loadConfig()
	return c, nil
}

func (c *Client) loadConfig() {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		c.config = &Config{ServerURL: "http://localhost:8080"}
		return
	}

	c.config = &Config{}
	json.Unmarshal(data, c.config)
}

// saveConfig writes the config to disk. Callers hold mu.
func (c *Client) saveConfig() error {
	dir := filepath.Dir(c.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c.config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.configPath, data, 0600)
}

// SetServer sets the sync server URL
func (c *Client) SetServer(url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.ServerURL = url
	return c.saveConfig()
}

// IsLoggedIn returns true if user is logged in
func (c *Client) IsLoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config.Token != ""
}

// GetStatus returns the server URL, user id, and last applied version.
func (c *Client) GetStatus() (string, string, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config.ServerURL, c.config.UserID, c.config.LastVersion
}

// LastVersion returns the last server version applied locally.
func (c *Client) LastVersion() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config.LastVersion
}

func (c *Client) setLastVersion(v int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.LastVersion = v
	_ = c.saveConfig()
}

// session returns the server URL and bearer token for a request.
func (c *Client) session() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config.ServerURL, c.config.Token
}

// Register creates a new account
func (c *Client) Register(username, email, password string) error {
	return c.authenticate("/api/v1/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
}

// Login authenticates with username and password
func (c *Client) Login(username, password string) error {
	return c.authenticate("/api/v1/login", map[string]string{
		"username": username,
		"password": password,
	})
}

func (c *Client) authenticate(path string, payload map[string]string) error {
	body, _ := json.Marshal(payload)
	serverURL, _ := c.session()

	resp, err := c.httpClient.Post(serverURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("auth failed: %s", string(respBody))
	}

	var result struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.Token = result.Token
	c.config.UserID = result.UserID
	return c.saveConfig()
}

// RequestMagicLink asks the server to issue a passwordless login token.
// The server returns the token directly in development builds.
func (c *Client) RequestMagicLink(email string) (string, error) {
	body, _ := json.Marshal(map[string]string{"email": email})
	serverURL, _ := c.session()

	resp, err := c.httpClient.Post(serverURL+"/api/v1/magic-link", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("magic link request failed: %s", string(respBody))
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Token, nil
}

// VerifyMagicLink exchanges a magic link token for a session.
func (c *Client) VerifyMagicLink(token string) error {
	serverURL, _ := c.session()
	resp, err := c.httpClient.Get(serverURL + "/api/v1/magic-link/" + token)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("magic link verification failed: %s", string(respBody))
	}

	var result struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.Token = result.Token
	c.config.UserID = result.UserID
	return c.saveConfig()
}

// Logout clears the session
func (c *Client) Logout() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.Token = ""
	c.config.UserID = ""
	c.config.LastVersion = 0
	return c.saveConfig()
}

// SetupEncryption derives and stores an encryption key from a password so
// background pushes can seal payloads unattended.
func (c *Client) SetupEncryption(password string) (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}

	key := DeriveKey(password, salt)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.Salt = base64.StdEncoding.EncodeToString(salt)
	c.config.EncryptionKey = base64.StdEncoding.EncodeToString(key)

	if err := c.saveConfig(); err != nil {
		return "", err
	}
	return c.config.EncryptionKey[:16], nil
}

// HasEncryptionKey reports whether payload encryption has been set up.
func (c *Client) HasEncryptionKey() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config.EncryptionKey != ""
}

// Crypto returns the payload cipher, or nil when encryption is not set up.
func (c *Client) Crypto() (*Crypto, error) {
	c.mu.Lock()
	encoded := c.config.EncryptionKey
	c.mu.Unlock()

	if encoded == "" {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("corrupt encryption key: %w", err)
	}
	return NewCrypto(key), nil
}
