package middleware

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/coinedu/tradesim/pkg/bus"
	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/data/db/sqlite"
)

// Journal persists closed trades and positions. Inserts run off the router
// goroutine so a slow disk never stalls the tick loop.
type Journal struct {
	db        *sql.DB
	sessionId int64
}

func NewJournal(db *sql.DB, sessionId int64) *Journal {
	return &Journal{
		db:        db,
		sessionId: sessionId,
	}
}

func (j *Journal) WithTrade(handler bus.TradeEventHandler) bus.TradeEventHandler {
	return func(ctx context.Context, trade common.TradeRecord) {
		go func() {
			if err := sqlite.InsertTrade(ctx, j.db, j.sessionId, trade); err != nil {
				slog.Warn("unable to insert trade", "error", err)
			}
		}()
		handler(ctx, trade)
	}
}

func (j *Journal) WithPositionClosed(handler bus.PositionCloseEventHandler) bus.PositionCloseEventHandler {
	return func(ctx context.Context, position common.Position) {
		go func() {
			if err := sqlite.InsertPosition(ctx, j.db, j.sessionId, position); err != nil {
				slog.Warn("unable to insert position", "error", err)
			}
		}()
		handler(ctx, position)
	}
}
