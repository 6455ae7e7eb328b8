package profileregistry

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"capital-engine/internal/simulation"
)

// Registry resolves risk profiles by name. Without a base URL it serves the
// built-in presets only. With one, remote definitions take precedence and
// are cached for the registry's lifetime.
type Registry struct {
	baseURL string
	client  *http.Client
	cache   sync.Map
	log     zerolog.Logger
}

func New(baseURL string, log zerolog.Logger) *Registry {
	r := &Registry{
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
	if r.baseURL != "" {
		r.client = &http.Client{
			Timeout: 2 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return r
}

type profileResponse struct {
	Name   string   `json:"name"`
	Mean   *float64 `json:"mean"`
	StdDev *float64 `json:"std_dev"`
}

// Lookup returns the named profile. Remote failures fall back to the
// built-in preset of the same name.
func (r *Registry) Lookup(ctx context.Context, name string) (simulation.RiskProfile, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return simulation.RiskProfile{}, false
	}
	if r.baseURL == "" {
		return simulation.ProfileByName(key)
	}

	if cached, ok := r.cache.Load(key); ok {
		return cached.(simulation.RiskProfile), true
	}

	rp, err := r.fetch(ctx, key)
	if err != nil {
		r.log.Warn().Err(err).Str("profile", key).Msg("Profile registry unavailable, using built-in preset")
		return simulation.ProfileByName(key)
	}
	r.cache.Store(key, rp)
	return rp, true
}

func (r *Registry) fetch(ctx context.Context, name string) (simulation.RiskProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/profiles/"+url.PathEscape(name), nil)
	if err != nil {
		return simulation.RiskProfile{}, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return simulation.RiskProfile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return simulation.RiskProfile{}, &StatusError{Code: resp.StatusCode}
	}

	var pr profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return simulation.RiskProfile{}, err
	}
	if pr.Mean == nil || pr.StdDev == nil || *pr.StdDev < 0 {
		return simulation.RiskProfile{}, ErrIncompleteProfile
	}
	return simulation.RiskProfile{Name: name, AnnualReturnMean: *pr.Mean, AnnualReturnStdDev: *pr.StdDev}, nil
}
