// Package entity はcatalogフィーチャーのドメインモデルを定義します。
package entity

import (
	"strings"
	"time"
)

// Game はカタログに登録されたゲームを表します。
// 管理者のCRUD操作、またはETLの新規発見によって作成されます。
type Game struct {
	ID          string   // ソース接頭辞付きID（例: "cs_12345"）
	Title       string   // ゲームタイトル
	Genre       string   // カンマ区切りのジャンル名（空は未分類）
	ImageURL    string   // カバー画像URL
	Rating      *float64 // 評価（0-100、未取得はnil）
	ReleaseDate string   // 発売日（YYYY-MM-DD、未取得は空）
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Genres はカンマ区切りのGenreフィールドをスライスに分解して返します。
func (g Game) Genres() []string {
	if g.Genre == "" {
		return nil
	}
	parts := strings.Split(g.Genre, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
