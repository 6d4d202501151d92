// Package sqlite persists the session journal to an embedded database.
package sqlite

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS trades (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			kind TEXT NOT NULL,
			side TEXT NOT NULL,
			price REAL NOT NULL,
			size REAL NOT NULL,
			fee REAL NOT NULL,
			interest REAL NOT NULL,
			pnl REAL NOT NULL,
			comment TEXT,
			created_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS positions (
			position_id INTEGER NOT NULL,
			session_id INTEGER NOT NULL,
			kind TEXT NOT NULL,
			status TEXT NOT NULL,
			side TEXT NOT NULL,
			opened_tick INTEGER NOT NULL,
			closed_tick INTEGER NOT NULL,
			entry_price REAL NOT NULL,
			close_price REAL NOT NULL,
			margin REAL NOT NULL,
			leverage INTEGER NOT NULL,
			gross_profit REAL NOT NULL,
			net_profit REAL NOT NULL,
			PRIMARY KEY (position_id, session_id)
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func InsertTrade(ctx context.Context, db *sql.DB, sessionId int64, trade common.TradeRecord) error {
	query := `
	INSERT INTO trades (
		session_id, tick, kind, side, price, size, fee, interest, pnl, comment, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	_, err := db.ExecContext(
		ctx,
		query,
		sessionId,
		trade.Tick,
		string(trade.Kind),
		trade.Side.String(),
		pointFloat(trade.Price),
		pointFloat(trade.Size),
		pointFloat(trade.Fee),
		pointFloat(trade.Interest),
		pointFloat(trade.Pnl),
		trade.Comment,
		trade.TimeStamp,
	)
	return err
}

func InsertPosition(ctx context.Context, db *sql.DB, sessionId int64, position common.Position) error {
	query := `
	INSERT INTO positions (
		position_id, session_id, kind, status, side, opened_tick, closed_tick,
		entry_price, close_price, margin, leverage, gross_profit, net_profit
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (position_id, session_id) DO NOTHING;
	`

	_, err := db.ExecContext(
		ctx,
		query,
		position.Id,
		sessionId,
		string(position.Kind),
		string(position.Status),
		position.Side.String(),
		position.OpenedTick,
		position.ClosedTick,
		pointFloat(position.EntryPrice),
		pointFloat(position.ClosePrice),
		pointFloat(position.Margin),
		position.Leverage,
		pointFloat(position.GrossProfit),
		pointFloat(position.NetProfit),
	)
	return err
}

func pointFloat(p fixed.Point) float64 {
	f, _ := p.Float64()
	return f
}
