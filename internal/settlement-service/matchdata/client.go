package matchdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/radieske/bet-settlement-poc/pkg/contracts/provider"
)

// Client consulta o provedor de dados de partida por HTTP.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: 3 * time.Second},
	}
}

// GetMatch busca o estado atual de uma partida.
func (c *Client) GetMatch(ctx context.Context, matchID string) (*provider.Match, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/matches/"+matchID, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("match %s not found", matchID)
	}
	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("provider http %d", res.StatusCode)
	}
	var m provider.Match
	if err := json.NewDecoder(res.Body).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}
