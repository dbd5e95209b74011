// Package usecase はetlフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"fmt"
	"strconv"
	"strings"

	etlentity "gamedeals_backend/internal/feature/etl/domain/entity"
	pricesentity "gamedeals_backend/internal/feature/prices/domain/entity"
)

// Normalizer はアダプターの生データを正規化済みの価格観測に変換します。
// 純粋関数として実装されており、同一入力は常に同一出力を返します。
type Normalizer struct {
	baseCurrency string
	rates        map[string]float64 // 1単位あたりの基準通貨への換算レート
}

// NewNormalizer は指定された基準通貨と換算テーブルでNormalizerを生成します。
// 基準通貨自身のレートは常に1として扱われます。
func NewNormalizer(baseCurrency string, rates map[string]float64) *Normalizer {
	if baseCurrency == "" {
		baseCurrency = "USD"
	}
	return &Normalizer{baseCurrency: baseCurrency, rates: rates}
}

// Normalize は生の出品データを基準通貨の価格観測に変換します。
// 価格・通貨が欠落または不正な場合はErrParseを返します。
// 観測時刻には取得時刻をそのまま使うため、同一入力からは同一の観測が得られます。
func (n *Normalizer) Normalize(raw etlentity.RawListing) (pricesentity.PriceRecord, error) {
	var zero pricesentity.PriceRecord

	price, err := parseAmount(raw.Price)
	if err != nil {
		return zero, fmt.Errorf("%w: price %q", ErrParse, raw.Price)
	}

	currency := strings.ToUpper(strings.TrimSpace(raw.Currency))
	if currency == "" {
		return zero, fmt.Errorf("%w: missing currency", ErrParse)
	}
	rate, err := n.rate(currency)
	if err != nil {
		return zero, err
	}

	// 割引前価格は任意項目。欠落時は販売価格を流用する。
	normalPrice := price
	if strings.TrimSpace(raw.NormalPrice) != "" {
		normalPrice, err = parseAmount(raw.NormalPrice)
		if err != nil {
			return zero, fmt.Errorf("%w: normal price %q", ErrParse, raw.NormalPrice)
		}
	}

	discount := raw.DiscountPercent
	if discount == 0 && normalPrice > 0 && price < normalPrice {
		discount = (1 - price/normalPrice) * 100
	}
	if discount < 0 {
		discount = 0
	}
	if discount > 100 {
		discount = 100
	}

	return pricesentity.PriceRecord{
		GameID:          raw.GameID,
		StoreID:         raw.StoreID,
		Price:           round2(price * rate),
		NormalPrice:     round2(normalPrice * rate),
		Currency:        n.baseCurrency,
		DiscountPercent: round2(discount),
		URL:             raw.URL,
		Available:       raw.Available,
		ObservedAt:      raw.FetchedAt,
	}, nil
}

// rate は通貨コードの基準通貨への換算レートを返します。
// 未知の通貨コードはErrParseです。
func (n *Normalizer) rate(currency string) (float64, error) {
	if currency == n.baseCurrency {
		return 1, nil
	}
	r, ok := n.rates[currency]
	if !ok || r <= 0 {
		return 0, fmt.Errorf("%w: unknown currency %q", ErrParse, currency)
	}
	return r, nil
}

func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, strconv.ErrRange
	}
	return v, nil
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
