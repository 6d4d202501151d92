package account

import (
	"errors"
	"time"

	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/utility"
	"github.com/coinedu/tradesim/pkg/utility/circular"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

const ledgerComponentName = "account.ledger"

var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	ErrInvalidAmount        = errors.New("amount must be positive")
)

// Ledger tracks cash, base-asset holdings and realized P&L for one session.
// It never reads price; settlement math happens elsewhere and only the
// resulting debits/credits land here.
type Ledger struct {
	initialCash fixed.Point

	cash        fixed.Point
	holdings    fixed.Point
	avgEntry    fixed.Point
	realizedPnl fixed.Point

	trades *circular.Buffer[common.TradeRecord]
}

func NewLedger(initialCash fixed.Point, historyCapacity uint) *Ledger {
	return &Ledger{
		initialCash: initialCash,
		cash:        initialCash,
		holdings:    fixed.Zero,
		avgEntry:    fixed.Zero,
		realizedPnl: fixed.Zero,
		trades:      circular.NewBuffer[common.TradeRecord](historyCapacity),
	}
}

func (l *Ledger) Cash() fixed.Point        { return l.cash }
func (l *Ledger) Holdings() fixed.Point    { return l.holdings }
func (l *Ledger) AvgEntry() fixed.Point    { return l.avgEntry }
func (l *Ledger) RealizedPnl() fixed.Point { return l.realizedPnl }

func (l *Ledger) Credit(amount fixed.Point) error {
	if amount.IsNeg() {
		return ErrInvalidAmount
	}
	l.cash = l.cash.Add(amount)
	return nil
}

func (l *Ledger) Debit(amount fixed.Point) error {
	if amount.IsNeg() {
		return ErrInvalidAmount
	}
	if l.cash.Lt(amount) {
		return ErrInsufficientFunds
	}
	l.cash = l.cash.Sub(amount)
	return nil
}

// AddHoldings books a spot buy at price, keeping the volume-weighted
// average entry price current.
func (l *Ledger) AddHoldings(amount, price fixed.Point) error {
	if amount.IsNeg() || amount.IsZero() {
		return ErrInvalidAmount
	}

	total := l.holdings.Add(amount)
	l.avgEntry = l.avgEntry.Mul(l.holdings).Add(price.Mul(amount)).Div(total)
	l.holdings = total
	return nil
}

func (l *Ledger) RemoveHoldings(amount fixed.Point) error {
	if amount.IsNeg() || amount.IsZero() {
		return ErrInvalidAmount
	}
	if l.holdings.Lt(amount) {
		return ErrInsufficientHoldings
	}

	l.holdings = l.holdings.Sub(amount)
	if l.holdings.IsZero() {
		l.avgEntry = fixed.Zero
	}
	return nil
}

// RecordTrade appends to the bounded history and accumulates realized P&L.
func (l *Ledger) RecordTrade(entry common.TradeRecord) {
	l.trades.Push(entry)
	l.realizedPnl = l.realizedPnl.Add(entry.Pnl)
}

// Trades returns the retained history, oldest first.
func (l *Ledger) Trades() []common.TradeRecord {
	return l.trades.Data()
}

func (l *Ledger) Reset() {
	l.cash = l.initialCash
	l.holdings = fixed.Zero
	l.avgEntry = fixed.Zero
	l.realizedPnl = fixed.Zero
	l.trades.Clear()
}

func (l *Ledger) Snapshot() common.AccountSnapshot {
	return common.AccountSnapshot{
		Cash:          l.cash,
		Holdings:      l.holdings,
		AvgEntryPrice: l.avgEntry,
		RealizedPnl:   l.realizedPnl,
		Source:        ledgerComponentName,
		ExecutionId:   utility.GetExecutionID(),
		TraceID:       utility.CreateTraceID(),
		TimeStamp:     time.Now(),
	}
}
