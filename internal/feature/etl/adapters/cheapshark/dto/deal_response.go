// Package dto はCheapShark APIのレスポンス型を定義します。
package dto

// Deal は /deals エンドポイントが返す1件の取引です。
// CheapSharkは数値をすべて文字列で返します。
type Deal struct {
	Title       string `json:"title"`
	DealID      string `json:"dealID"`
	GameID      string `json:"gameID"`
	StoreID     string `json:"storeID"`
	SalePrice   string `json:"salePrice"`
	NormalPrice string `json:"normalPrice"`
	Savings     string `json:"savings"`
	Thumb       string `json:"thumb"`
	IsOnSale    string `json:"isOnSale"`
}
