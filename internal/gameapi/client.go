package gameapi

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"camp-map-tracker/internal/metrics"
)

// playerAPIUser is fixed by the game server's admin API; only the password
// is operator-configured.
const playerAPIUser = "admin"

type Client struct {
	httpClient     *http.Client
	playerURL      string
	playerPassword string
	guildURL       string
	guildToken     string
}

func NewClient(playerURL, playerPassword, guildURL, guildToken string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		playerURL:      playerURL,
		playerPassword: playerPassword,
		guildURL:       guildURL,
		guildToken:     guildToken,
	}
}

// GetPlayers fetches the live player feed. A missing endpoint or credential
// is an error for this call only; the caller retries next cycle.
func (c *Client) GetPlayers() ([]Player, error) {
	if c.playerURL == "" {
		return nil, fmt.Errorf("PLAYER_API_URL is not configured")
	}
	if c.playerPassword == "" {
		return nil, fmt.Errorf("PLAYER_API_PASSWORD is not configured")
	}

	req, err := http.NewRequest(http.MethodGet, c.playerURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create player request: %w", err)
	}
	req.SetBasicAuth(playerAPIUser, c.playerPassword)

	body, err := c.do(req, "players")
	if err != nil {
		return nil, err
	}

	players, err := decodePlayers(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode player feed: %w", err)
	}
	return players, nil
}

// GetGuilds fetches the guild/camp feed.
func (c *Client) GetGuilds() ([]Guild, error) {
	if c.guildURL == "" {
		return nil, fmt.Errorf("GUILD_API_URL is not configured")
	}
	if c.guildToken == "" {
		return nil, fmt.Errorf("GUILD_API_TOKEN is not configured")
	}

	req, err := http.NewRequest(http.MethodGet, c.guildURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create guild request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.guildToken)

	body, err := c.do(req, "guilds")
	if err != nil {
		return nil, err
	}

	guilds, err := decodeGuilds(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode guild feed: %w", err)
	}
	return guilds, nil
}

func (c *Client) do(req *http.Request, endpoint string) ([]byte, error) {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		duration := time.Since(start).Seconds()
		metrics.GameAPIRequestDuration.WithLabelValues(endpoint, "error").Observe(duration)
		metrics.GameAPIRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	status := fmt.Sprintf("%d", resp.StatusCode)
	duration := time.Since(start).Seconds()
	metrics.GameAPIRequestDuration.WithLabelValues(endpoint, status).Observe(duration)
	metrics.GameAPIRequests.WithLabelValues(endpoint, status).Inc()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from %s feed: %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}
	return body, nil
}
