package adapters

import (
	"context"
	"strings"

	catalogentity "gamedeals_backend/internal/feature/catalog/domain/entity"
	"gamedeals_backend/internal/feature/etl/adapters/igdb"
	"gamedeals_backend/internal/feature/etl/usecase"
)

// MetadataUpserter はゲームメタデータの書き込み先を抽象化します。
// 既存の値は上書きせず、欠けているフィールドだけが埋められます。
type MetadataUpserter interface {
	UpsertMetadata(ctx context.Context, game *catalogentity.Game) error
}

// MetadataSearcher はタイトルでメタデータを検索する操作を抽象化します。
type MetadataSearcher interface {
	SearchGame(ctx context.Context, title string) (*igdb.Metadata, error)
}

// igdbEnricher はIGDBの検索結果でカタログのゲームメタデータを補完する
// Enricher実装です。
type igdbEnricher struct {
	searcher MetadataSearcher
	games    MetadataUpserter
}

var _ usecase.Enricher = (*igdbEnricher)(nil)

// NewIGDBEnricher は指定された検索クライアントと書き込み先でEnricherを生成します。
func NewIGDBEnricher(searcher MetadataSearcher, games MetadataUpserter) *igdbEnricher {
	return &igdbEnricher{searcher: searcher, games: games}
}

// Enrich はタイトルでIGDBを検索し、見つかったメタデータでゲームの
// 欠けているフィールドを埋めます。一致がなければ何もしません。
func (e *igdbEnricher) Enrich(ctx context.Context, gameID, title string) error {
	md, err := e.searcher.SearchGame(ctx, title)
	if err != nil {
		return err
	}
	if md == nil {
		return nil
	}

	return e.games.UpsertMetadata(ctx, &catalogentity.Game{
		ID:          gameID,
		Title:       title,
		Genre:       strings.Join(md.Genres, ", "),
		ImageURL:    md.CoverURL,
		Rating:      md.Rating,
		ReleaseDate: md.ReleaseDate,
	})
}
