package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"gamedeals_backend/internal/feature/etl/adapters/igdb/dto"
)

// tokenExpiryBuffer は期限切れ直前のトークンを使わないための余裕時間です。
const tokenExpiryBuffer = 60 * time.Second

// Metadata はIGDBから取得したゲームのメタデータです。
type Metadata struct {
	Name        string
	Genres      []string
	CoverURL    string
	Rating      *float64
	ReleaseDate string // ISO形式（YYYY-MM-DD）、不明なら空
}

// Client はIGDB APIのクライアントです。
// Twitch OAuthのアクセストークンをインメモリにキャッシュし、
// 有効期限の60秒前までは再利用します。
type Client struct {
	cfg    Config
	client *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// accessToken はキャッシュ済みトークンを返すか、必要なら新規取得します。
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.expiresAt.Add(-tokenExpiryBuffer)) {
		return c.token, nil
	}

	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("client_secret", c.cfg.ClientSecret)
	q.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OAuthURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("igdb oauth: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode >= 400 {
		return "", fmt.Errorf("igdb oauth: http %d", res.StatusCode)
	}

	var body dto.TokenResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("igdb oauth: decode: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("igdb oauth: response missing access_token")
	}

	expiresIn := body.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 3600
	}
	c.token = body.AccessToken
	c.expiresAt = time.Now().Add(time.Duration(expiresIn) * time.Second)
	return c.token, nil
}

// SearchGame はタイトルでゲームを検索し、先頭1件のメタデータを返します。
// 見つからなければnilを返します。
func (c *Client) SearchGame(ctx context.Context, title string) (*Metadata, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	// IGDBはApicalypseクエリをリクエストボディで受け取る
	query := fmt.Sprintf(`search %q; fields name,rating,first_release_date,genres.name,cover.url; limit 1;`, title)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/games", strings.NewReader(query))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Client-ID", c.cfg.ClientID)
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("igdb games: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("igdb games: http %d", res.StatusCode)
	}

	var games []dto.Game
	if err := json.NewDecoder(res.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("igdb games: decode: %w", err)
	}
	if len(games) == 0 {
		return nil, nil
	}
	return toMetadata(games[0]), nil
}

func toMetadata(g dto.Game) *Metadata {
	md := &Metadata{
		Name:   g.Name,
		Rating: g.Rating,
	}
	for _, genre := range g.Genres {
		if genre.Name != "" {
			md.Genres = append(md.Genres, genre.Name)
		}
	}
	if g.Cover != nil {
		md.CoverURL = normalizeCoverURL(g.Cover.URL)
	}
	if g.FirstReleaseDate > 0 {
		md.ReleaseDate = time.Unix(g.FirstReleaseDate, 0).UTC().Format("2006-01-02")
	}
	return md
}

// normalizeCoverURL はプロトコル相対URLを完全なHTTPS URLに正規化します。
func normalizeCoverURL(u string) string {
	switch {
	case u == "":
		return ""
	case strings.HasPrefix(u, "//"):
		return "https:" + u
	case strings.HasPrefix(u, "http://"), strings.HasPrefix(u, "https://"):
		return u
	default:
		return "https://" + u
	}
}
