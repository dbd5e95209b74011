// Package entity はreviewsフィーチャーのドメインモデルを定義します。
package entity

import "time"

// Review はゲームに対するユーザーのレビューです。
type Review struct {
	ID        uint
	GameID    string
	UserID    uint
	Comment   string // 1〜200文字
	Star      int    // 1〜5
	CreatedAt time.Time
}
