// Package entity はpurchasesフィーチャーのドメインモデルを定義します。
package entity

import "time"

// Purchase は購入1件を表します。
// ゲーム情報は購入時点のスナップショットとして保持し、
// 後からカタログ側が変わっても履歴は変わりません。
type Purchase struct {
	ID           uint
	UserID       uint
	GameID       string
	GameTitle    string
	GameImageURL string
	GameGenre    string
	Price        float64
	StoreID      string
	PurchaseDate time.Time
}
