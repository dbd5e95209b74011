// Package cheapshark はCheapShark価格APIのストアアダプターを提供します。
package cheapshark

import (
	"os"
	"time"
)

// Config はCheapShark APIクライアントの設定を保持します。
// APIキーは不要です。
type Config struct {
	BaseURL string        // APIのベースURL（例: "https://www.cheapshark.com/api/1.0"）
	Timeout time.Duration // HTTPリクエストタイムアウト
}

// LoadConfig は環境変数からCheapSharkの設定を読み込みます。
func LoadConfig() Config {
	base := os.Getenv("CHEAPSHARK_BASE_URL")
	if base == "" {
		base = "https://www.cheapshark.com/api/1.0"
	}
	return Config{
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}
