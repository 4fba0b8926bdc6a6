package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/rlackeyseattle/vynl-pro/model"
)

// Remote reads the catalog a stage server exposes over HTTP.
type Remote struct {
	BaseURL string
	HTTP    *http.Client
}

func NewRemote(baseURL string) *Remote {
	return &Remote{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: http.DefaultClient}
}

func (r *Remote) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := r.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return errors.Wrap(ErrNotFound, path)
	}
	if resp.StatusCode >= 300 {
		return errors.Errorf("GET %v: %v", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (r *Remote) Songs(ctx context.Context) ([]model.Song, error) {
	var res []model.Song
	err := r.get(ctx, "/songs", &res)
	return res, errors.Wrap(err, "fetch songs")
}

func (r *Remote) Setlists(ctx context.Context) ([]model.SetlistSummary, error) {
	var res []model.SetlistSummary
	err := r.get(ctx, "/setlists", &res)
	return res, errors.Wrap(err, "fetch setlists")
}

func (r *Remote) Setlist(ctx context.Context, id string) (model.Setlist, error) {
	var res model.Setlist
	err := r.get(ctx, "/setlists/"+url.PathEscape(id), &res)
	return res, errors.Wrap(err, "fetch setlist")
}
