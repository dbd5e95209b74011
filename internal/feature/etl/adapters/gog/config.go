// Package gog はGOG埋め込みストアAPIのストアアダプターを提供します。
package gog

import (
	"os"
	"time"
)

// Config はGOG APIクライアントの設定を保持します。
type Config struct {
	BaseURL string        // APIのベースURL（例: "https://embed.gog.com"）
	Timeout time.Duration // HTTPリクエストタイムアウト
}

// LoadConfig は環境変数からGOGの設定を読み込みます。
func LoadConfig() Config {
	base := os.Getenv("GOG_BASE_URL")
	if base == "" {
		base = "https://embed.gog.com"
	}
	return Config{
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}
