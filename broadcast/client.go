package broadcast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/rlackeyseattle/vynl-pro/model"
)

const HostTokenHeader = "X-Host-Token"

// Client talks to the sync endpoints of a stage server.
type Client struct {
	BaseURL   string
	Session   string
	HostToken string
	HTTP      *http.Client
}

func NewClient(baseURL string, session string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Session: session,
		HTTP:    http.DefaultClient,
	}
}

func (c *Client) statePath() string {
	return fmt.Sprintf("%s/sessions/%s/state", c.BaseURL, url.PathEscape(c.Session))
}

// CreateSession opens a new session on the server and makes this client
// its host.
func (c *Client) CreateSession(ctx context.Context) (model.SessionInfo, error) {
	var info model.SessionInfo
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/sessions", nil)
	if err != nil {
		return info, errors.Wrap(err, "create session")
	}
	if err := c.do(req, &info); err != nil {
		return info, errors.Wrap(err, "create session")
	}
	c.Session = info.SessionId
	c.HostToken = info.HostToken
	return info, nil
}

func (c *Client) Fetch(ctx context.Context) (model.PlaybackState, error) {
	var state model.PlaybackState
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.statePath(), nil)
	if err != nil {
		return state, errors.Wrap(err, "fetch state")
	}
	if err := c.do(req, &state); err != nil {
		return state, errors.Wrap(err, "fetch state")
	}
	return state, nil
}

func (c *Client) Publish(ctx context.Context, p model.StatePatch) error {
	body, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "publish state")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.statePath(), bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "publish state")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.HostToken != "" {
		req.Header.Set(HostTokenHeader, c.HostToken)
	}
	var res model.PublishResponse
	return errors.Wrap(c.do(req, &res), "publish state")
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		var e model.ErrorResponse
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return errors.Errorf("%s: %s", resp.Status, e.Error)
		}
		return errors.New(resp.Status)
	}
	return json.Unmarshal(data, out)
}
