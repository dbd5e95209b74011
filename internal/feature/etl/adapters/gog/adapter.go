package gog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gamedeals_backend/internal/feature/etl/adapters/gog/dto"
	"gamedeals_backend/internal/feature/etl/domain/entity"
	"gamedeals_backend/internal/feature/etl/usecase"
)

// Adapter はGOGの埋め込みストアAPIから出品データを取得するStoreAdapter実装です。
type Adapter struct {
	cfg    Config
	client *http.Client
}

// AdapterがStoreAdapterを実装していることをコンパイル時に検証します。
var _ usecase.StoreAdapter = (*Adapter)(nil)

// NewAdapter は指定された設定とHTTPクライアントでAdapterの新しいインスタンスを生成します。
func NewAdapter(cfg Config, client *http.Client) *Adapter {
	return &Adapter{cfg: cfg, client: client}
}

// StoreID はこのアダプターのストアキーを返します。
func (a *Adapter) StoreID() string {
	return "gog"
}

// Fetch はカタログ検索でペアの商品を取得します。
// タイトルが一致する商品がなければErrListingNotFoundを返します。
func (a *Adapter) Fetch(ctx context.Context, pair entity.Pair) (entity.RawListing, error) {
	var zero entity.RawListing

	q := url.Values{}
	q.Set("mediaType", "game")
	q.Set("search", pair.LookupKey)
	u := fmt.Sprintf("%s/games/ajax/filtered?%s", a.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", usecase.ErrSourceUnavailable, err)
	}

	res, err := a.client.Do(req)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", usecase.ErrSourceUnavailable, err)
	}
	defer func() { _ = res.Body.Close() }()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return zero, fmt.Errorf("%w: no product for %q", usecase.ErrListingNotFound, pair.LookupKey)
	case res.StatusCode >= 400:
		return zero, fmt.Errorf("%w: gog http %d", usecase.ErrSourceUnavailable, res.StatusCode)
	}

	var body dto.CatalogResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return zero, fmt.Errorf("%w: decode catalog: %v", usecase.ErrParse, err)
	}

	product, ok := matchProduct(body.Products, pair.LookupKey)
	if !ok {
		return zero, fmt.Errorf("%w: no product for %q", usecase.ErrListingNotFound, pair.LookupKey)
	}

	currency := product.Price.Currency
	if currency == "" {
		currency = "USD"
	}
	return entity.RawListing{
		GameID:          pair.GameID,
		StoreID:         a.StoreID(),
		Title:           product.Title,
		Price:           product.Price.Amount,
		NormalPrice:     product.Price.BaseAmount,
		Currency:        currency,
		DiscountPercent: product.Price.DiscountPercentage,
		URL:             productURL(product),
		Available:       product.Buyable,
		FetchedAt:       time.Now().UTC(),
	}, nil
}

// matchProduct は検索結果からタイトルの一致する商品を選びます。
// 完全一致（大文字小文字無視）を優先し、なければ先頭の結果を使います。
func matchProduct(products []dto.Product, lookupKey string) (dto.Product, bool) {
	if len(products) == 0 {
		return dto.Product{}, false
	}
	for _, p := range products {
		if strings.EqualFold(strings.TrimSpace(p.Title), strings.TrimSpace(lookupKey)) {
			return p, true
		}
	}
	return products[0], true
}

func productURL(p dto.Product) string {
	if p.URL == "" {
		return ""
	}
	if strings.HasPrefix(p.URL, "http") {
		return p.URL
	}
	return "https://www.gog.com" + p.URL
}
