// Package entity はwishlistフィーチャーのドメインモデルを定義します。
package entity

import "time"

// WishlistItem はウィッシュリストの1エントリを表します。
// 同じユーザーが同じゲームを二重に登録することはできません。
// 価格情報は追加時点のスナップショットです。
type WishlistItem struct {
	ID              uint
	UserID          uint
	GameID          string
	GameTitle       string
	GameImageURL    string
	Price           float64
	OriginalPrice   float64
	DiscountPercent float64
	StoreID         string
	DealID          string
	AddedAt         time.Time
}
