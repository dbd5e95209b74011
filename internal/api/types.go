// Package api はHTTPトランスポート層で共有されるリクエスト/レスポンス型を定義します。
package api

// ErrorResponse はエラー時の共通レスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は成功メッセージのみを返す共通レスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse はログイン成功時にJWTトークンを返すレスポンスです。
type TokenResponse struct {
	Token string `json:"token"`
}

// SignupRequest は /signup エンドポイントのリクエストボディです。
// Ginのbindingタグでバリデーションを行います（必須・メール形式・パスワード長）。
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest は /login エンドポイントのリクエストボディです。
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RunAcceptedResponse はETL実行トリガー受理時のレスポンスです。
type RunAcceptedResponse struct {
	RunID string `json:"run_id"`
}

// OutcomeResponse はETL実行における1つの(game, store)ペアの結果です。
type OutcomeResponse struct {
	GameID  string `json:"game_id"`
	StoreID string `json:"store_id"`
	Status  string `json:"status"`
	Reason  string `json:"reason,omitempty"`
}

// RunStatusResponse はETL実行の状態レスポンスです。
type RunStatusResponse struct {
	RunID        string            `json:"run_id"`
	Status       string            `json:"status"`
	StartedAt    string            `json:"started_at"`
	FinishedAt   string            `json:"finished_at,omitempty"`
	ErrorSummary string            `json:"error_summary,omitempty"`
	Outcomes     []OutcomeResponse `json:"outcomes"`
}

// GameResponse はゲーム情報のレスポンスDTOです。
// Pricesにはストア別の最新価格が入ります（観測がなければ空）。
type GameResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Genres      []string        `json:"genres,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Rating      *float64        `json:"rating,omitempty"`
	ReleaseDate string          `json:"release_date,omitempty"`
	Prices      []PriceResponse `json:"prices"`
}

// PriceResponse は価格観測1件のレスポンスDTOです。
type PriceResponse struct {
	GameID          string  `json:"game_id"`
	StoreID         string  `json:"store_id"`
	Price           float64 `json:"price"`
	NormalPrice     float64 `json:"normal_price,omitempty"`
	Currency        string  `json:"currency"`
	DiscountPercent float64 `json:"discount_percent"`
	URL             string  `json:"url,omitempty"`
	ObservedAt      string  `json:"observed_at"`
}
