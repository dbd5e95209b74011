// Package igdb はIGDBメタデータAPI（Twitch OAuth認証）のクライアントを提供します。
package igdb

import (
	"os"
	"time"
)

// Config はIGDB APIクライアントの設定を保持します。
type Config struct {
	ClientID     string        // Twitch開発者ポータルのクライアントID
	ClientSecret string        // Twitch開発者ポータルのクライアントシークレット
	BaseURL      string        // APIのベースURL（例: "https://api.igdb.com/v4"）
	OAuthURL     string        // トークン発行エンドポイント
	Timeout      time.Duration // HTTPリクエストタイムアウト
}

// LoadConfig は環境変数からIGDBの設定を読み込みます。
func LoadConfig() Config {
	base := os.Getenv("IGDB_BASE_URL")
	if base == "" {
		base = "https://api.igdb.com/v4"
	}
	oauth := os.Getenv("IGDB_OAUTH_URL")
	if oauth == "" {
		oauth = "https://id.twitch.tv/oauth2/token"
	}
	return Config{
		ClientID:     os.Getenv("IGDB_CLIENT_ID"),
		ClientSecret: os.Getenv("IGDB_CLIENT_SECRET"),
		BaseURL:      base,
		OAuthURL:     oauth,
		Timeout:      5 * time.Second,
	}
}

// Enabled は認証情報が構成されているかを返します。
func (c Config) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}
