package sync

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/existflow/gridplan/internal/logger"
	"github.com/existflow/gridplan/internal/model"
	"github.com/existflow/gridplan/internal/store"
)

// Record is one project or item document. Payload is base64 of the JSON
// document, AES-GCM sealed when the push was encrypted.
type Record struct {
	ClientID string `json:"client_id"`
	Payload  string `json:"payload"`
}

// PushRequest mirrors the full local state to the server. Sync is a
// wholesale replace: records absent from a push are removed server-side.
type PushRequest struct {
	Projects  []Record `json:"projects"`
	Items     []Record `json:"items"`
	Encrypted bool     `json:"encrypted"`
}

// PushResponse carries the server state version after the push.
type PushResponse struct {
	Version int64 `json:"version"`
}

// PullResponse is the complete remote document set.
type PullResponse struct {
	Projects  []Record `json:"projects"`
	Items     []Record `json:"items"`
	Encrypted bool     `json:"encrypted"`
	Version   int64    `json:"version"`
}

// Push mirrors a state snapshot to the server and returns the new server
// version.
func (c *Client) Push(st store.State) (int64, error) {
	if !c.IsLoggedIn() {
		return 0, fmt.Errorf("not logged in")
	}

	crypto, err := c.Crypto()
	if err != nil {
		return 0, err
	}

	req := PushRequest{Encrypted: crypto != nil}
	for _, p := range st.Projects {
		payload, err := sealDocument(p, crypto)
		if err != nil {
			return 0, err
		}
		req.Projects = append(req.Projects, Record{ClientID: p.ID, Payload: payload})
	}
	for _, it := range st.Items {
		payload, err := sealDocument(it, crypto)
		if err != nil {
			return 0, err
		}
		req.Items = append(req.Items, Record{ClientID: it.ID, Payload: payload})
	}

	body, _ := json.Marshal(req)
	serverURL, token := c.session()
	url := serverURL + "/api/v1/sync"
	logger.Debug("Pushing planner state",
		logger.F("projects", len(req.Projects)),
		logger.F("items", len(req.Items)),
		logger.F("bodySize", len(body)))

	httpReq, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Error("Push request failed", logger.F("error", err), logger.F("url", url))
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		logger.Error("Push rejected",
			logger.F("status", resp.StatusCode),
			logger.F("response", string(respBody)))
		return 0, fmt.Errorf("server error: %s", string(respBody))
	}

	var result PushResponse
	_ = json.NewDecoder(resp.Body).Decode(&result)

	c.setLastVersion(result.Version)

	logger.Info("Push completed", logger.F("version", result.Version))
	return result.Version, nil
}

// Pull fetches the full remote document set and decodes it.
func (c *Client) Pull() ([]model.Project, []model.PlannerItem, int64, error) {
	if !c.IsLoggedIn() {
		return nil, nil, 0, fmt.Errorf("not logged in")
	}

	serverURL, token := c.session()
	url := serverURL + "/api/v1/sync"
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Pull request failed", logger.F("error", err), logger.F("url", url))
		return nil, nil, 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		logger.Error("Pull rejected",
			logger.F("status", resp.StatusCode),
			logger.F("response", string(respBody)))
		return nil, nil, 0, fmt.Errorf("server error: %s", string(respBody))
	}

	var result PullResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, nil, 0, err
	}

	var crypto *Crypto
	if result.Encrypted {
		crypto, err = c.Crypto()
		if err != nil {
			return nil, nil, 0, err
		}
		if crypto == nil {
			return nil, nil, 0, fmt.Errorf("remote data is encrypted, run 'gridplan sync key' first")
		}
	}

	projects := make([]model.Project, 0, len(result.Projects))
	for _, rec := range result.Projects {
		var p model.Project
		if err := openDocument(rec.Payload, crypto, &p); err != nil {
			logger.Warn("Skipping unreadable project record", logger.F("clientID", rec.ClientID), logger.F("error", err))
			continue
		}
		projects = append(projects, p)
	}

	items := make([]model.PlannerItem, 0, len(result.Items))
	for _, rec := range result.Items {
		var it model.PlannerItem
		if err := openDocument(rec.Payload, crypto, &it); err != nil {
			logger.Warn("Skipping unreadable item record", logger.F("clientID", rec.ClientID), logger.F("error", err))
			continue
		}
		items = append(items, it)
	}

	logger.Info("Pull completed",
		logger.F("projects", len(projects)),
		logger.F("items", len(items)),
		logger.F("version", result.Version))
	return projects, items, result.Version, nil
}

func sealDocument(doc interface{}, crypto *Crypto) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	if crypto != nil {
		return crypto.Encrypt(raw)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func openDocument(payload string, crypto *Crypto, out interface{}) error {
	var raw []byte
	var err error
	if crypto != nil {
		raw, err = crypto.Decrypt(payload)
	} else {
		raw, err = base64.StdEncoding.DecodeString(payload)
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
