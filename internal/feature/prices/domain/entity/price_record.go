// Package entity はpricesフィーチャーのドメインモデルを定義します。
package entity

import "time"

// PriceRecord は1つの(game, store)ペアに対する価格観測を表します。
// 価格履歴は追記専用で、過去の観測が書き換えられることはありません。
type PriceRecord struct {
	GameID          string    // ゲームID（例: "cs_12345"）
	StoreID         string    // 価格取得元ストアのアダプターキー
	Price           float64   // 基準通貨に換算済みの販売価格
	NormalPrice     float64   // 割引前価格（基準通貨、不明は0）
	Currency        string    // 基準通貨コード（例: "USD"）
	DiscountPercent float64   // 割引率（0-100）
	URL             string    // 購入ページへのリンク
	Available       bool      // 観測時点で購入可能だったか
	ObservedAt      time.Time // 観測時刻
}
