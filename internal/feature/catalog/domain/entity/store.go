package entity

// Store は価格取得元の外部ストアを表す静的な参照データです。
// IDはETLアダプターの登録キーとして使用されます。
type Store struct {
	ID      string // アダプターキー（例: "cheapshark", "gog"）
	Name    string // 表示名
	BaseURL string // APIベースURL
}
