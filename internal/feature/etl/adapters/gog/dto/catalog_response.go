// Package dto はGOG埋め込みストアAPIのレスポンス型を定義します。
package dto

// CatalogResponse は /games/ajax/filtered エンドポイントのレスポンスです。
type CatalogResponse struct {
	Products []Product `json:"products"`
}

// Product は検索結果の1商品です。
type Product struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Buyable bool    `json:"buyable"`
	Price   Price   `json:"price"`
}

// Price は商品の価格ブロックです。金額は10進文字列で返されます。
type Price struct {
	Amount             string  `json:"amount"`
	BaseAmount         string  `json:"baseAmount"`
	DiscountPercentage float64 `json:"discountPercentage"`
	Currency           string  `json:"currency"`
	IsDiscounted       bool    `json:"isDiscounted"`
}
