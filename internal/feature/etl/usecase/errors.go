package usecase

import "errors"

// ETLパイプラインのエラー分類です。
// アダプターはこれらのセンチネルエラーをラップして返し、オーケストレーターが
// errors.Isで分類してペアごとの結果に記録します。
var (
	// ErrSourceUnavailable はネットワーク障害やタイムアウトなど一時的な
	// 取得失敗を表します。リトライ対象です。
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrListingNotFound は該当ストアにゲームの出品が存在しないことを表します。
	// 恒久的な失敗でありリトライしません。
	ErrListingNotFound = errors.New("listing not found")

	// ErrParse はレスポンスの形状変化や必須フィールドの欠落を表します。
	// 恒久的な失敗でありリトライしません。
	ErrParse = errors.New("parse error")

	// ErrAlreadyRunning は実行中に再トリガーされた場合に返されます。
	// 実行はキューイングされず、状態は変化しません。
	ErrAlreadyRunning = errors.New("etl run already in progress")

	// ErrNoActiveRun は停止・参照対象の実行が存在しない場合に返されます。
	ErrNoActiveRun = errors.New("no etl run")
)

// IsTransient はリトライで回復しうるエラーかどうかを判定します。
// リトライポリシーのRetryable述語として使います。
func IsTransient(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}
