package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	etlentity "gamedeals_backend/internal/feature/etl/domain/entity"
	pricesentity "gamedeals_backend/internal/feature/prices/domain/entity"
	"gamedeals_backend/internal/shared/ratelimiter"
	"gamedeals_backend/internal/shared/retry"
)

// StoreAdapter は1つの外部価格ソースから生の出品データを取得します。
// アダプターは呼び出しごとにステートレスです。
type StoreAdapter interface {
	// StoreID はこのアダプターが担当するストアのキーを返します。
	StoreID() string

	// Fetch はペアの出品データを取得します。失敗はErrSourceUnavailable、
	// ErrListingNotFound、ErrParseのいずれかをラップして返します。
	Fetch(ctx context.Context, pair etlentity.Pair) (etlentity.RawListing, error)
}

// PriceWriter は正規化済み観測の追記先を抽象化します。
type PriceWriter interface {
	Insert(ctx context.Context, rec pricesentity.PriceRecord) error
}

// RunRepository は実行レコードの永続化層を抽象化します。
type RunRepository interface {
	// Save は実行開始時のレコードを作成します。
	Save(ctx context.Context, run *etlentity.Run) error

	// Finalize は終端状態・結果一覧を書き込みます。以後レコードは不変です。
	Finalize(ctx context.Context, run *etlentity.Run) error

	// LastRun は直近の実行を返します。存在しなければErrNoActiveRunです。
	LastRun(ctx context.Context) (*etlentity.Run, error)
}

// PairSource は1回の実行で処理すべき(game, store)ペアの一覧を提供します。
type PairSource interface {
	Pairs(ctx context.Context) ([]etlentity.Pair, error)
}

// Enricher はゲームのメタデータ（ジャンル、カバー画像など）を外部ソースから
// 補完します。失敗してもペアの結果には影響しません。
type Enricher interface {
	Enrich(ctx context.Context, gameID, title string) error
}

// Orchestrator はETLパイプラインの実行を統括します。
// 同時に実行できるのは1つだけで、実行中フラグが唯一の共有可変状態です。
type Orchestrator struct {
	adapters    map[string]StoreAdapter
	normalizer  *Normalizer
	prices      PriceWriter
	runs        RunRepository
	pairs       PairSource
	enricher    Enricher // 任意。nilなら補完しない
	rateLimiter ratelimiter.RateLimiterInterface
	policy      retry.Policy
	concurrency int

	mu      sync.Mutex
	current *runState
	last    *etlentity.Run
}

// runState は進行中の実行の可変状態です。
type runState struct {
	mu       sync.Mutex
	run      *etlentity.Run
	outcomes []etlentity.Outcome
	cancel   context.CancelFunc
	done     chan struct{}
}

func (s *runState) record(o etlentity.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes = append(s.outcomes, o)
}

// snapshot は進行中の実行の読み取り用コピーを返します。
func (s *runState) snapshot() *etlentity.Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *s.run
	cp.Outcomes = append([]etlentity.Outcome(nil), s.outcomes...)
	return &cp
}

// NewOrchestrator はOrchestratorの新しいインスタンスを生成します。
// concurrencyが1未満の場合は1に切り上げられます。
func NewOrchestrator(
	adapters []StoreAdapter,
	normalizer *Normalizer,
	prices PriceWriter,
	runs RunRepository,
	pairs PairSource,
	enricher Enricher,
	rateLimiter ratelimiter.RateLimiterInterface,
	policy retry.Policy,
	concurrency int,
) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}
	m := make(map[string]StoreAdapter, len(adapters))
	for _, a := range adapters {
		m[a.StoreID()] = a
	}
	return &Orchestrator{
		adapters:    m,
		normalizer:  normalizer,
		prices:      prices,
		runs:        runs,
		pairs:       pairs,
		enricher:    enricher,
		rateLimiter: rateLimiter,
		policy:      policy,
		concurrency: concurrency,
	}
}

// Trigger は新しい実行を開始し、実行IDを返します。
// 既に実行中の場合はErrAlreadyRunningを返し、状態は変化しません。
// ペアが1つも構成されていない場合、実行レコードはFailedとして即座に
// 確定され、アダプターは一切呼ばれません。
func (o *Orchestrator) Trigger(ctx context.Context) (string, error) {
	o.mu.Lock()
	if o.current != nil {
		o.mu.Unlock()
		return "", ErrAlreadyRunning
	}

	run := &etlentity.Run{
		ID:        uuid.NewString(),
		Status:    etlentity.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	// 実行フラグを先に立ててからロックを手放す。
	// ペア取得中の二重トリガーもAlreadyRunningで弾かれる。
	runCtx, cancel := context.WithCancel(context.Background())
	state := &runState{run: run, cancel: cancel, done: make(chan struct{})}
	o.current = state
	o.mu.Unlock()

	if err := o.runs.Save(ctx, run); err != nil {
		o.clearCurrent(state)
		cancel()
		return "", fmt.Errorf("save run record: %w", err)
	}

	pairs, err := o.pairs.Pairs(ctx)
	if err != nil || len(pairs) == 0 {
		if err != nil {
			slog.Error("failed to list etl pairs", "run_id", run.ID, "error", err)
		}
		o.finalize(state, etlentity.RunStatusFailed, etlentity.ReasonNoSourcesConfigured)
		cancel()
		return run.ID, nil
	}

	slog.Info("etl run started", "run_id", run.ID, "pairs", len(pairs), "concurrency", o.concurrency)
	go o.execute(runCtx, state, pairs)
	return run.ID, nil
}

// Stop は進行中の実行に停止シグナルを送ります。
// 処理中のペアはCancelledとして記録されます。実行中でなければErrNoActiveRunです。
func (o *Orchestrator) Stop(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current == nil {
		return ErrNoActiveRun
	}
	slog.Info("etl run stop requested", "run_id", o.current.run.ID)
	o.current.cancel()
	return nil
}

// Status は進行中の実行、なければ直近の実行を返します。
// プロセス内に実行履歴がない場合は永続化層から直近の実行を読み出します。
func (o *Orchestrator) Status(ctx context.Context) (*etlentity.Run, error) {
	o.mu.Lock()
	current, last := o.current, o.last
	o.mu.Unlock()

	if current != nil {
		return current.snapshot(), nil
	}
	if last != nil {
		return last, nil
	}
	return o.runs.LastRun(ctx)
}

// RunOnce は実行をトリガーし、完了まで待ちます。ワンショット起動用です。
func (o *Orchestrator) RunOnce(ctx context.Context) (*etlentity.Run, error) {
	runID, err := o.Trigger(ctx)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	state := o.current
	o.mu.Unlock()
	if state != nil && state.run.ID == runID {
		select {
		case <-state.done:
		case <-ctx.Done():
			state.cancel()
			<-state.done
		}
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last, nil
}

// execute は全ペアをワーカープールで処理し、実行を終端状態に確定させます。
// ペア間の順序は保証されず、ペア内のfetch→normalize→insertは厳密に逐次です。
func (o *Orchestrator) execute(ctx context.Context, state *runState, pairs []etlentity.Pair) {
	sem := make(chan struct{}, o.concurrency)
	var wg sync.WaitGroup

	for _, pair := range pairs {
		wg.Add(1)
		go func(p etlentity.Pair) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			state.record(o.processPair(ctx, p))
		}(pair)
	}
	wg.Wait()

	status, summary := classifyRun(state)
	o.finalize(state, status, summary)
}

// processPair は1つのペアに対するfetch→normalize→insertのパイプラインです。
// 失敗はここで捕捉して結果に変換し、他のペアには波及させません。
func (o *Orchestrator) processPair(ctx context.Context, pair etlentity.Pair) etlentity.Outcome {
	outcome := etlentity.Outcome{GameID: pair.GameID, StoreID: pair.StoreID}

	if ctx.Err() != nil {
		outcome.Status = etlentity.OutcomeCancelled
		outcome.Reason = etlentity.ReasonRunStopped
		return outcome
	}

	adapter, ok := o.adapters[pair.StoreID]
	if !ok {
		outcome.Status = etlentity.OutcomeFailed
		outcome.Reason = etlentity.ReasonSourceUnavailable
		slog.Error("no adapter registered for store", "store_id", pair.StoreID)
		return outcome
	}

	var raw etlentity.RawListing
	err := retry.Do(ctx, o.policy, func(ctx context.Context) error {
		if o.rateLimiter != nil {
			o.rateLimiter.WaitIfNeeded()
		}
		var ferr error
		raw, ferr = adapter.Fetch(ctx, pair)
		return ferr
	})
	if err != nil {
		return classifyPairError(ctx, outcome, err)
	}

	rec, err := o.normalizer.Normalize(raw)
	if err != nil {
		slog.Warn("failed to normalize listing", "game_id", pair.GameID, "store_id", pair.StoreID, "error", err)
		return classifyPairError(ctx, outcome, err)
	}

	if err := o.prices.Insert(ctx, rec); err != nil {
		slog.Error("failed to insert price record", "game_id", pair.GameID, "store_id", pair.StoreID, "error", err)
		outcome.Status = etlentity.OutcomeFailed
		outcome.Reason = etlentity.ReasonRepositoryWriteFailure
		return outcome
	}

	if o.enricher != nil {
		title := raw.Title
		if title == "" {
			title = pair.LookupKey
		}
		if err := o.enricher.Enrich(ctx, pair.GameID, title); err != nil {
			// メタデータ補完は任意処理。失敗してもペアの成功は変わらない。
			slog.Warn("metadata enrichment failed", "game_id", pair.GameID, "error", err)
		}
	}

	outcome.Status = etlentity.OutcomeSucceeded
	return outcome
}

// classifyPairError はペア処理のエラーを結果分類に変換します。
func classifyPairError(ctx context.Context, outcome etlentity.Outcome, err error) etlentity.Outcome {
	switch {
	case ctx.Err() != nil:
		outcome.Status = etlentity.OutcomeCancelled
		outcome.Reason = etlentity.ReasonRunStopped
	case errors.Is(err, ErrListingNotFound):
		outcome.Status = etlentity.OutcomeSkipped
		outcome.Reason = etlentity.ReasonNotFound
	case errors.Is(err, ErrParse):
		outcome.Status = etlentity.OutcomeFailed
		outcome.Reason = etlentity.ReasonParseError
	default:
		outcome.Status = etlentity.OutcomeFailed
		outcome.Reason = etlentity.ReasonSourceUnavailable
	}
	return outcome
}

// classifyRun は結果一覧から実行の終端状態とエラーサマリーを決めます。
//   - 失敗もキャンセルもなければSucceeded（NotFoundスキップは失敗に数えない）
//   - 成功が1つもなければFailed
//   - それ以外はPartialFailure
func classifyRun(state *runState) (etlentity.RunStatus, string) {
	state.mu.Lock()
	outcomes := state.outcomes
	var succeeded, failed, cancelled int
	for _, oc := range outcomes {
		switch oc.Status {
		case etlentity.OutcomeSucceeded:
			succeeded++
		case etlentity.OutcomeFailed:
			failed++
		case etlentity.OutcomeCancelled:
			cancelled++
		}
	}
	total := len(outcomes)
	state.mu.Unlock()

	switch {
	case failed == 0 && cancelled == 0:
		return etlentity.RunStatusSucceeded, ""
	case succeeded == 0:
		return etlentity.RunStatusFailed, fmt.Sprintf("%d/%d pairs failed", failed+cancelled, total)
	default:
		return etlentity.RunStatusPartialFailure, fmt.Sprintf("%d/%d pairs failed", failed+cancelled, total)
	}
}

// finalize は実行を終端状態に確定し、実行中フラグを下ろします。
func (o *Orchestrator) finalize(state *runState, status etlentity.RunStatus, summary string) {
	state.mu.Lock()
	now := time.Now().UTC()
	state.run.Status = status
	state.run.FinishedAt = &now
	state.run.ErrorSummary = summary
	state.run.Outcomes = append([]etlentity.Outcome(nil), state.outcomes...)
	run := state.run
	state.mu.Unlock()

	// 確定の永続化はベストエフォート。失敗してもインメモリの状態は確定する。
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := o.runs.Finalize(ctx, run); err != nil {
		slog.Error("failed to finalize run record", "run_id", run.ID, "error", err)
	}

	o.mu.Lock()
	o.last = run
	if o.current == state {
		o.current = nil
	}
	o.mu.Unlock()
	close(state.done)

	slog.Info("etl run finished", "run_id", run.ID, "status", string(status), "pairs", len(run.Outcomes))
}

// clearCurrent は開始に失敗した実行のフラグを下ろします。
func (o *Orchestrator) clearCurrent(state *runState) {
	o.mu.Lock()
	if o.current == state {
		o.current = nil
	}
	o.mu.Unlock()
}
