// Package entity はetlフィーチャーのドメインモデルを定義します。
package entity

import "time"

// RunStatus はETL実行の状態です。
type RunStatus string

const (
	RunStatusRunning        RunStatus = "running"
	RunStatusSucceeded      RunStatus = "succeeded"
	RunStatusPartialFailure RunStatus = "partial_failure"
	RunStatusFailed         RunStatus = "failed"
)

// OutcomeStatus は1つの(game, store)ペアの処理結果の分類です。
type OutcomeStatus string

const (
	OutcomeSucceeded OutcomeStatus = "succeeded"
	OutcomeSkipped   OutcomeStatus = "skipped"
	OutcomeFailed    OutcomeStatus = "failed"
	OutcomeCancelled OutcomeStatus = "cancelled"
)

// 失敗・スキップ理由の分類です。ステータスエンドポイントでそのまま公開されます。
const (
	ReasonNotFound               = "NotFound"
	ReasonSourceUnavailable      = "SourceUnavailable"
	ReasonParseError             = "ParseError"
	ReasonRepositoryWriteFailure = "RepositoryWriteFailure"
	ReasonRunStopped             = "RunStopped"
	ReasonNoSourcesConfigured    = "NoSourcesConfigured"
)

// Outcome は実行内における1つの(game, store)ペアの結果です。
type Outcome struct {
	GameID  string
	StoreID string
	Status  OutcomeStatus
	Reason  string // 失敗・スキップ時の理由分類（成功時は空）
}

// Run は全ペアに対するETLパイプラインの1回の実行を表します。
// 終端状態に達した後は不変です。
type Run struct {
	ID           string
	Status       RunStatus
	StartedAt    time.Time
	FinishedAt   *time.Time
	ErrorSummary string
	Outcomes     []Outcome
}

// Finalized は実行が終端状態に達しているかを返します。
func (r *Run) Finalized() bool {
	return r.Status != RunStatusRunning
}

// Pair は1回の実行で処理される(game, store)の組み合わせです。
// LookupKeyはストア側での検索キー（通常はゲームタイトル）です。
type Pair struct {
	GameID    string
	StoreID   string
	LookupKey string
}

// RawListing はストアアダプターが返す未正規化の価格データです。
// 価格は取得元の表現のまま文字列で保持し、正規化はNormalizerが行います。
type RawListing struct {
	GameID          string
	StoreID         string
	Title           string
	Price           string // 販売価格（取得元の生の10進文字列）
	NormalPrice     string // 割引前価格（不明なら空）
	Currency        string // 取得元の通貨コード
	DiscountPercent float64
	URL             string
	Available       bool
	FetchedAt       time.Time
}
