// Package retry は明示的なリトライポリシー値とその実行ループを提供します。
package retry

import (
	"context"
	"time"
)

// Policy はリトライの振る舞いを値として表現します。
// アドホックなループの代わりに、呼び出し側がポリシーを組み立てて渡します。
type Policy struct {
	// MaxAttempts は初回を含む最大試行回数です。1以下の場合はリトライしません。
	MaxAttempts int

	// Backoff は試行間の待機時間のスケジュールです。
	// 試行回数がスケジュールより多い場合は最後の値を繰り返します。
	Backoff []time.Duration

	// Retryable は一時的エラーかどうかを判定する述語です。
	// nilの場合はすべてのエラーをリトライ対象とみなします。
	Retryable func(error) bool
}

// delay はattempt回目（0始まり）の失敗後に待つ時間を返します。
func (p Policy) delay(attempt int) time.Duration {
	if len(p.Backoff) == 0 {
		return 0
	}
	if attempt >= len(p.Backoff) {
		return p.Backoff[len(p.Backoff)-1]
	}
	return p.Backoff[attempt]
}

// Do はポリシーに従ってfnを実行します。
// 恒久的エラー（Retryableがfalseを返すエラー）は即座に返し、
// 一時的エラーはバックオフを挟んで上限までリトライします。
// コンテキストのキャンセルは待機中にも検知され、ctx.Err()を返します。
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err = fn(ctx)
		if err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}

		// バックオフ待機。キャンセルされたら即座に抜ける。
		select {
		case <-time.After(p.delay(i)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
