// Package dto はIGDB APIのレスポンス型を定義します。
package dto

// TokenResponse はTwitch OAuthのclient_credentialsフローのレスポンスです。
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// Game は /games エンドポイントが返す1件のゲームです。
type Game struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Rating           *float64 `json:"rating"`
	FirstReleaseDate int64    `json:"first_release_date"`
	Genres           []Genre  `json:"genres"`
	Cover            *Cover   `json:"cover"`
}

// Genre はジャンル参照です。
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Cover はカバー画像参照です。URLはプロトコル相対で返ることがあります。
type Cover struct {
	URL string `json:"url"`
}
