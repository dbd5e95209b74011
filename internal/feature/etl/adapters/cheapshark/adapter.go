package cheapshark

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gamedeals_backend/internal/feature/etl/adapters/cheapshark/dto"
	"gamedeals_backend/internal/feature/etl/domain/entity"
	"gamedeals_backend/internal/feature/etl/usecase"
)

// Adapter はCheapShark APIから出品データを取得するStoreAdapter実装です。
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
	return "cheapshark"
}

// Fetch はタイトル検索でペアの取引を取得します。
// 一致する取引がなければErrListingNotFound、HTTP障害はErrSourceUnavailable、
// レスポンスの形状異常はErrParseを返します。
func (a *Adapter) Fetch(ctx context.Context, pair entity.Pair) (entity.RawListing, error) {
	var zero entity.RawListing

	q := url.Values{}
	q.Set("title", pair.LookupKey)
	q.Set("pageSize", "5")
	u := fmt.Sprintf("%s/deals?%s", a.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", usecase.ErrSourceUnavailable, err)
	}

	res, err := a.client.Do(req)
	if err != nil {
		// タイムアウト・接続障害は一時的エラーとして扱う
		return zero, fmt.Errorf("%w: %v", usecase.ErrSourceUnavailable, err)
	}
	defer func() { _ = res.Body.Close() }()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return zero, fmt.Errorf("%w: no deals for %q", usecase.ErrListingNotFound, pair.LookupKey)
	case res.StatusCode >= 400:
		return zero, fmt.Errorf("%w: cheapshark http %d", usecase.ErrSourceUnavailable, res.StatusCode)
	}

	var deals []dto.Deal
	if err := json.NewDecoder(res.Body).Decode(&deals); err != nil {
		return zero, fmt.Errorf("%w: decode deals: %v", usecase.ErrParse, err)
	}
	if len(deals) == 0 {
		return zero, fmt.Errorf("%w: no deals for %q", usecase.ErrListingNotFound, pair.LookupKey)
	}

	deal := deals[0]
	return entity.RawListing{
		GameID:          pair.GameID,
		StoreID:         a.StoreID(),
		Title:           deal.Title,
		Price:           deal.SalePrice,
		NormalPrice:     deal.NormalPrice,
		Currency:        "USD", // CheapSharkは常にUSD建て
		DiscountPercent: discountPercent(deal),
		URL:             fmt.Sprintf("https://www.cheapshark.com/redirect?dealID=%s", deal.DealID),
		Available:       true, // 取引が返る時点で購入可能
		FetchedAt:       time.Now().UTC(),
	}, nil
}

// discountPercent は取引の割引率を算出します。
// savingsフィールドを優先し、なければnormal/saleから計算します。結果は0..100に収めます。
func discountPercent(deal dto.Deal) float64 {
	if deal.Savings != "" {
		if d, err := strconv.ParseFloat(deal.Savings, 64); err == nil {
			return clamp(d)
		}
	}

	normal, err1 := strconv.ParseFloat(deal.NormalPrice, 64)
	sale, err2 := strconv.ParseFloat(deal.SalePrice, 64)
	if err1 != nil || err2 != nil || normal <= 0 {
		return 0
	}
	return clamp((1 - sale/normal) * 100)
}

func clamp(d float64) float64 {
	if d < 0 {
		return 0
	}
	if d > 100 {
		return 100
	}
	return d
}

// StoreName はCheapSharkのストアIDを表示名に変換します。
// 未知のIDは "Store <id>" になります。
func StoreName(storeID string) string {
	names := map[string]string{
		"1":  "Steam",
		"2":  "GamersGate",
		"3":  "GreenManGaming",
		"7":  "GOG",
		"8":  "Origin",
		"11": "Humble Store",
		"13": "Uplay",
		"25": "Epic Games",
	}
	if name, ok := names[storeID]; ok {
		return name
	}
	return "Store " + storeID
}
