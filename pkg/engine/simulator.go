// Package engine owns every piece of mutable session state. All mutation
// happens inside bus handlers on the router goroutine, so no state here is
// guarded by locks; orders and controls posted from other goroutines are
// serialized by the event queue before they touch anything.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coinedu/tradesim/pkg/account"
	"github.com/coinedu/tradesim/pkg/bus"
	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/market"
	"github.com/coinedu/tradesim/pkg/settle/futures"
	"github.com/coinedu/tradesim/pkg/settle/margin"
	"github.com/coinedu/tradesim/pkg/settle/options"
	"github.com/coinedu/tradesim/pkg/settle/spot"
	"github.com/coinedu/tradesim/pkg/strategy"
	"github.com/coinedu/tradesim/pkg/utility"
	"github.com/coinedu/tradesim/pkg/utility/circular"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

const simulatorComponentName = "engine.simulator"

var (
	ErrPositionAlreadyOpen = errors.New("a position is already open")
	ErrNoOpenPosition      = errors.New("no open position")
	ErrNoSuchContract      = errors.New("no such contract")
	ErrNoMarketPrice       = errors.New("no market price yet")
	ErrInvalidParameter    = errors.New("invalid parameter")
)

// Simulator applies ticks, orders and controls to one trading session.
// Wire its On* methods into a router and feed it through a market source.
type Simulator struct {
	router *bus.Router
	source market.Source
	ledger *account.Ledger
	cfg    configuration

	clock *Clock

	tick      int64
	lastPrice fixed.Point
	prices    *fixed.RingBuffer
	candles   *circular.Buffer[common.Candle]

	nextPositionId int64
	nextContractId int64

	position  *common.Position
	contracts []common.OptionContract
	resting   []common.Order

	strat      strategy.Strategy
	stratName  string
	botEnabled bool
	paused     bool
	speedLevel int
	lastAction string
}

func NewSimulator(router *bus.Router, source market.Source, opts ...Option) *Simulator {
	cfg := defaultConfiguration()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Simulator{
		router:  router,
		source:  source,
		ledger:  account.NewLedger(cfg.initialCash, cfg.historyCapacity),
		cfg:     cfg,
		prices:  fixed.NewRingBuffer(cfg.windowSize),
		candles: circular.NewBuffer[common.Candle](uint(cfg.windowSize)),
	}
}

// AttachClock links the realtime clock so pause/speed controls reach it.
// Fast-forward runs leave the clock nil.
func (s *Simulator) AttachClock(c *Clock) {
	s.clock = c
}

func (s *Simulator) Ledger() *account.Ledger { return s.ledger }

func (s *Simulator) ClockSpeeds() []time.Duration { return s.cfg.speeds }

// OnCandle only maintains the candle window; the matching price dispatch
// runs the tick logic.
func (s *Simulator) OnCandle(_ context.Context, candle common.Candle) {
	s.candles.Push(candle)
}

func (s *Simulator) OnPrice(_ context.Context, point common.PricePoint) {
	s.tick = point.Tick
	s.lastPrice = point.Price
	s.prices.Add(point.Price)

	s.fillRestingOrders(point.Price)
	s.checkPosition(point.Price)
	s.settleExpired(point.Price)
	s.stepBot(point)

	s.publishState()
}

func (s *Simulator) OnOrder(_ context.Context, order common.Order) {
	var err error
	switch order.Command {
	case common.OrderCommandSpotTrade:
		err = s.handleSpotOrder(order)
	case common.OrderCommandPositionOpen:
		err = s.openPosition(order)
	case common.OrderCommandPositionClose:
		err = s.closePosition()
	case common.OrderCommandOptionTrade:
		err = s.openContract(order)
	case common.OrderCommandOptionExercise:
		err = s.exerciseContract(order.ContractId)
	default:
		err = fmt.Errorf("%w: unknown order command %d", ErrInvalidParameter, order.Command)
	}

	if err != nil {
		s.reject(order, err)
		return
	}
	s.accept(order)
	s.publishState()
}

func (s *Simulator) OnControl(_ context.Context, control common.Control) {
	switch control.Command {
	case common.ControlPause:
		s.paused = true
		if s.clock != nil {
			s.clock.Pause()
		}
	case common.ControlResume:
		s.paused = false
		if s.clock != nil {
			s.clock.Resume()
		}
	case common.ControlSetSpeed:
		s.speedLevel = control.SpeedLevel
		if s.clock != nil {
			s.clock.SetSpeed(control.SpeedLevel)
			s.speedLevel = s.clock.Speed()
		}
	case common.ControlSetStrategy:
		strat, err := strategy.New(control.Strategy, control.StrategyParams)
		if err != nil {
			slog.Warn("strategy change refused",
				"component", simulatorComponentName,
				"strategy", control.Strategy,
				"error", err)
			return
		}
		s.strat = strat
		s.stratName = control.Strategy
	case common.ControlToggleBot:
		s.botEnabled = control.BotEnabled
	case common.ControlReset:
		s.reset()
	default:
		slog.Warn("unknown control command",
			"component", simulatorComponentName,
			"command", control.Command)
		return
	}

	s.publishState()
}

// Snapshot builds the current read model. Only safe before the router loop
// starts or from within a handler; concurrent readers use SnapshotEvent.
func (s *Simulator) Snapshot() common.StateSnapshot {
	return s.buildSnapshot()
}

func (s *Simulator) handleSpotOrder(order common.Order) error {
	if !s.lastPrice.IsPos() {
		return ErrNoMarketPrice
	}
	if !order.Amount.IsPos() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidParameter)
	}

	if order.Type == common.OrderTypeLimit {
		if !order.LimitPrice.IsPos() {
			return fmt.Errorf("%w: limit price must be positive", ErrInvalidParameter)
		}
		s.resting = append(s.resting, order)
		return nil
	}

	return s.executeSpot(order.Side, order.Amount, s.lastPrice, "manual")
}

// fillRestingOrders walks the book once per tick. Buys fill when price
// trades at or through the limit from above, sells from below; fills execute
// at the limit price. A fill that can no longer be funded is rejected and
// dropped rather than left resting.
func (s *Simulator) fillRestingOrders(price fixed.Point) {
	if len(s.resting) == 0 {
		return
	}

	var still []common.Order
	for _, order := range s.resting {
		triggered := (order.Side == common.TradeSideBuy && price.Lte(order.LimitPrice)) ||
			(order.Side == common.TradeSideSell && price.Gte(order.LimitPrice))
		if !triggered {
			still = append(still, order)
			continue
		}
		if err := s.executeSpot(order.Side, order.Amount, order.LimitPrice, "limit fill"); err != nil {
			s.reject(order, err)
		}
	}
	s.resting = still
}

func (s *Simulator) executeSpot(side common.TradeSide, amount, price fixed.Point, comment string) error {
	fee := spot.Fee(price, amount, s.cfg.feeRate)

	var pnl fixed.Point
	if side == common.TradeSideBuy {
		if err := s.ledger.Debit(spot.BuyCost(price, amount, s.cfg.feeRate)); err != nil {
			return err
		}
		if err := s.ledger.AddHoldings(amount, price); err != nil {
			return err
		}
	} else {
		if s.ledger.Holdings().Lt(amount) {
			return account.ErrInsufficientHoldings
		}
		pnl = spot.RealizedPnl(s.ledger.AvgEntry(), price, amount).Sub(fee)
		if err := s.ledger.RemoveHoldings(amount); err != nil {
			return err
		}
		if err := s.ledger.Credit(spot.SellProceeds(price, amount, s.cfg.feeRate)); err != nil {
			return err
		}
	}

	s.recordTrade(common.TradeRecord{
		Kind:    common.InstrumentSpot,
		Side:    side,
		Price:   price,
		Size:    amount,
		Fee:     fee,
		Pnl:     pnl,
		Tick:    s.tick,
		Comment: comment,
	})
	return nil
}

func (s *Simulator) openPosition(order common.Order) error {
	if s.position != nil {
		return ErrPositionAlreadyOpen
	}
	if !s.lastPrice.IsPos() {
		return ErrNoMarketPrice
	}
	if !order.Margin.IsPos() {
		return fmt.Errorf("%w: margin must be positive", ErrInvalidParameter)
	}

	entry := s.lastPrice
	pos := common.Position{
		Id:          s.nextPositionId,
		Kind:        order.Kind,
		Status:      common.PositionStatusOpen,
		Side:        order.Side.PositionSide(),
		Leverage:    order.Leverage,
		EntryPrice:  entry,
		Margin:      order.Margin,
		OpenedTick:  s.tick,
		Source:      simulatorComponentName,
		ExecutionId: utility.GetExecutionID(),
		TraceID:     utility.CreateTraceID(),
		TimeStamp:   time.Now(),
	}

	switch order.Kind {
	case common.InstrumentFutures:
		if order.Leverage < 1 {
			return fmt.Errorf("%w: leverage must be at least 1", ErrInvalidParameter)
		}
		pos.MaintenanceRate = s.cfg.maintenanceRate
		pos.Size = futures.ContractValue(order.Margin, order.Leverage).Div(entry)
		pos.LiquidationPrice = futures.LiquidationPrice(entry, pos.Side, order.Leverage, s.cfg.maintenanceRate)
	case common.InstrumentMargin:
		if order.Leverage < 2 {
			return fmt.Errorf("%w: margin ratio must be at least 2", ErrInvalidParameter)
		}
		pos.Borrowed = margin.Borrowed(order.Margin, order.Leverage)
		pos.Size = order.Margin.MulInt64(order.Leverage).Div(entry)
		pos.MarginCallPrice = margin.CallPrice(entry, pos.Side, order.Leverage)
		pos.LiquidationPrice = margin.LiquidationPrice(entry, pos.Side, order.Leverage)
	default:
		return fmt.Errorf("%w: instrument %q cannot open a position", ErrInvalidParameter, order.Kind)
	}

	if err := s.ledger.Debit(order.Margin); err != nil {
		return err
	}

	s.nextPositionId++
	s.position = &pos
	s.post(bus.PositionOpenEvent, pos)
	return nil
}

func (s *Simulator) closePosition() error {
	if s.position == nil {
		return ErrNoOpenPosition
	}
	if !s.lastPrice.IsPos() {
		return ErrNoMarketPrice
	}

	pos := s.position
	price := s.lastPrice

	var pnl, interest, payout fixed.Point
	switch pos.Kind {
	case common.InstrumentFutures:
		value := futures.ContractValue(pos.Margin, pos.Leverage)
		pnl = futures.ClosePnl(pos.EntryPrice, price, pos.Side, value)
		payout = futures.CloseReturn(pos.Margin, pnl)
	case common.InstrumentMargin:
		interest = margin.Interest(pos.Borrowed, s.cfg.hourlyInterest, s.tick-pos.OpenedTick)
		pnl = margin.ClosePnl(pos.EntryPrice, price, pos.Side, pos.Margin, pos.Leverage)
		payout = margin.CloseReturn(pos.Margin, pnl, interest)
	}

	if err := s.ledger.Credit(payout); err != nil {
		return err
	}
	s.finishPosition(pos, price, common.PositionStatusClosed, pnl, interest, "closed")
	return nil
}

func (s *Simulator) checkPosition(price fixed.Point) {
	if s.position == nil {
		return
	}
	pos := s.position

	switch pos.Kind {
	case common.InstrumentFutures:
		if futures.Breached(pos.Side, price, pos.LiquidationPrice) {
			s.liquidate(price)
		}
	case common.InstrumentMargin:
		if margin.Breached(pos.Side, price, pos.LiquidationPrice) {
			s.liquidate(price)
			return
		}
		if pos.Status == common.PositionStatusOpen && margin.Called(pos.Side, price, pos.MarginCallPrice) {
			pos.Status = common.PositionStatusMarginCalled
			s.alert(common.RiskAlert{
				Kind:     common.RiskAlertMarginCall,
				Price:    price,
				Position: pos,
				Message: fmt.Sprintf("margin call: price %s crossed %s, liquidation at %s",
					price, pos.MarginCallPrice, pos.LiquidationPrice),
			})
			s.post(bus.PositionUpdateEvent, *pos)
		}
	}
}

// liquidate forfeits the entire escrow. Nothing is credited back; margin
// positions still book the interest accrued up to the trigger tick.
func (s *Simulator) liquidate(price fixed.Point) {
	pos := s.position

	var interest fixed.Point
	if pos.Kind == common.InstrumentMargin {
		interest = margin.Interest(pos.Borrowed, s.cfg.hourlyInterest, s.tick-pos.OpenedTick)
	}
	pnl := pos.Margin.Neg()

	s.alert(common.RiskAlert{
		Kind:     common.RiskAlertLiquidation,
		Price:    price,
		Position: pos,
		Message: fmt.Sprintf("%s position liquidated at %s, margin %s forfeited",
			pos.Kind, price, pos.Margin),
	})
	s.finishPosition(pos, price, common.PositionStatusLiquidated, pnl, interest, "liquidated")
}

func (s *Simulator) finishPosition(pos *common.Position, price fixed.Point, status common.PositionStatus, pnl, interest fixed.Point, comment string) {
	pos.Status = status
	pos.ClosePrice = price
	pos.ClosedTick = s.tick
	pos.Interest = interest
	pos.GrossProfit = pnl
	pos.NetProfit = pnl.Sub(interest)

	side := common.TradeSideSell
	if pos.Side == common.PositionSideShort {
		side = common.TradeSideBuy
	}
	s.recordTrade(common.TradeRecord{
		Kind:     pos.Kind,
		Side:     side,
		Price:    price,
		Size:     pos.Size,
		Interest: interest,
		Pnl:      pos.NetProfit,
		Tick:     s.tick,
		Comment:  comment,
	})

	s.post(bus.PositionCloseEvent, *pos)
	s.position = nil
}

func (s *Simulator) openContract(order common.Order) error {
	if !s.lastPrice.IsPos() {
		return ErrNoMarketPrice
	}
	if !order.Strike.IsPos() {
		return fmt.Errorf("%w: strike must be positive", ErrInvalidParameter)
	}
	if order.ExpiryTicks <= 0 {
		return fmt.Errorf("%w: expiry must be in the future", ErrInvalidParameter)
	}
	if !order.Contracts.IsPos() {
		return fmt.Errorf("%w: contract count must be positive", ErrInvalidParameter)
	}

	spotF, _ := s.lastPrice.Float64()
	strikeF, _ := order.Strike.Float64()
	t := float64(order.ExpiryTicks) / float64(s.cfg.ticksPerYear)
	premium := options.Price(order.OptionType, spotF, strikeF, t, s.cfg.riskFreeRate, s.cfg.annualVol)

	premiumP := fixed.FromFloat64(premium)
	cost := premiumP.Mul(order.Contracts).Mul(s.cfg.optionUnitSize)
	if order.OptionAction == common.OptionActionBuy {
		if err := s.ledger.Debit(cost); err != nil {
			return err
		}
	} else {
		if err := s.ledger.Credit(cost); err != nil {
			return err
		}
	}

	contract := common.OptionContract{
		Id:                s.nextContractId,
		Type:              order.OptionType,
		Action:            order.OptionAction,
		Strike:            order.Strike,
		Premium:           premiumP,
		Contracts:         order.Contracts,
		UnderlyingAtEntry: s.lastPrice,
		OpenedTick:        s.tick,
		ExpiryTick:        s.tick + order.ExpiryTicks,
		Source:            simulatorComponentName,
		ExecutionId:       utility.GetExecutionID(),
		TraceID:           utility.CreateTraceID(),
		TimeStamp:         time.Now(),
	}
	s.nextContractId++
	s.contracts = append(s.contracts, contract)
	return nil
}

func (s *Simulator) exerciseContract(id common.OptionContractId) error {
	if !s.lastPrice.IsPos() {
		return ErrNoMarketPrice
	}
	for i := range s.contracts {
		if s.contracts[i].Id != id {
			continue
		}
		contract := s.contracts[i]
		s.contracts = append(s.contracts[:i], s.contracts[i+1:]...)
		s.settleContract(contract, s.lastPrice, "exercised", false)
		return nil
	}
	return ErrNoSuchContract
}

func (s *Simulator) settleExpired(price fixed.Point) {
	if len(s.contracts) == 0 {
		return
	}

	var live []common.OptionContract
	for _, contract := range s.contracts {
		if s.tick < contract.ExpiryTick {
			live = append(live, contract)
			continue
		}
		s.settleContract(contract, price, "expired", true)
	}
	s.contracts = live
}

// settleContract cash-settles at intrinsic value. A short settlement can owe
// more than the account holds; the debit is capped at available cash so the
// balance never goes negative, matching the liquidation forfeiture rule.
func (s *Simulator) settleContract(contract common.OptionContract, price fixed.Point, comment string, expiry bool) {
	spotF, _ := price.Float64()
	strikeF, _ := contract.Strike.Float64()
	premiumF, _ := contract.Premium.Float64()
	qtyF, _ := contract.Contracts.Float64()
	unitF, _ := s.cfg.optionUnitSize.Float64()

	intrinsic := options.Intrinsic(contract.Type, spotF, strikeF)
	pnl := fixed.FromFloat64(options.SettlePnl(contract.Action, intrinsic, premiumF, qtyF, unitF))

	payout := fixed.FromFloat64(intrinsic).Mul(contract.Contracts).Mul(s.cfg.optionUnitSize)
	if contract.Action == common.OptionActionBuy {
		if err := s.ledger.Credit(payout); err != nil {
			slog.Warn("option settlement credit failed",
				"component", simulatorComponentName, "error", err)
		}
	} else if err := s.ledger.Debit(fixed.Min(payout, s.ledger.Cash())); err != nil {
		slog.Warn("option settlement debit failed",
			"component", simulatorComponentName, "error", err)
	}

	side := common.TradeSideSell
	if contract.Action == common.OptionActionSell {
		side = common.TradeSideBuy
	}
	s.recordTrade(common.TradeRecord{
		Kind:    common.InstrumentOption,
		Side:    side,
		Price:   price,
		Size:    contract.Contracts,
		Pnl:     pnl,
		Tick:    s.tick,
		Comment: fmt.Sprintf("%s %s %s", contract.Type, contract.Action, comment),
	})

	if expiry {
		s.alert(common.RiskAlert{
			Kind:     common.RiskAlertOptionExpiry,
			Price:    price,
			Contract: &contract,
			Message: fmt.Sprintf("%s option expired at %s, strike %s",
				contract.Type, price, contract.Strike),
		})
	}
}

func (s *Simulator) stepBot(point common.PricePoint) {
	if !s.botEnabled || s.strat == nil {
		return
	}

	instruction := s.strat.Decide(strategy.Snapshot{
		Tick:     point.Tick,
		Price:    point.Price,
		Prices:   s.prices.ToSliceFifo(),
		Cash:     s.ledger.Cash(),
		Holdings: s.ledger.Holdings(),
		Position: s.position,
		FeeRate:  s.cfg.feeRate,
	})
	if instruction == nil {
		return
	}

	amount := instruction.Notional.Div(point.Price)
	if instruction.Side == common.TradeSideSell {
		amount = fixed.Min(amount, s.ledger.Holdings())
	}
	if !amount.IsPos() {
		return
	}

	if err := s.executeSpot(instruction.Side, amount, point.Price, instruction.Comment); err != nil {
		slog.Debug("bot instruction skipped",
			"component", simulatorComponentName,
			"strategy", s.stratName,
			"error", err)
		return
	}

	s.lastAction = fmt.Sprintf("%s %s %s @ %s",
		s.stratName, instruction.Side, instruction.Notional, point.Price)
	s.post(bus.BotActionEvent, common.BotAction{
		Strategy:    s.stratName,
		Side:        instruction.Side,
		Notional:    instruction.Notional,
		Price:       point.Price,
		Tick:        point.Tick,
		Comment:     instruction.Comment,
		Source:      simulatorComponentName,
		ExecutionId: utility.GetExecutionID(),
		TraceID:     utility.CreateTraceID(),
		TimeStamp:   time.Now(),
	})
}

// reset rebuilds the session inside a single dispatch, so no partially reset
// state is ever observable. With a clock attached the source is fed from the
// clock goroutine, so its reset is handed over there instead of touched here.
func (s *Simulator) reset() {
	s.ledger.Reset()
	if s.clock != nil {
		s.clock.Defer(s.source.Reset)
	} else {
		s.source.Reset()
	}
	s.prices.Clear()
	s.candles.Clear()
	s.position = nil
	s.contracts = nil
	s.resting = nil
	s.tick = 0
	s.lastPrice = fixed.Zero
	s.lastAction = ""
	if s.strat != nil {
		s.strat.Reset()
	}
}

// Equity marks everything to the given price: cash, holdings, the open
// position's close-out value and the live option book.
func (s *Simulator) Equity(price fixed.Point) fixed.Point {
	equity := s.ledger.Cash()
	if price.IsPos() {
		equity = equity.Add(s.ledger.Holdings().Mul(price))
	}

	if pos := s.position; pos != nil && price.IsPos() {
		switch pos.Kind {
		case common.InstrumentFutures:
			value := futures.ContractValue(pos.Margin, pos.Leverage)
			pnl := futures.ClosePnl(pos.EntryPrice, price, pos.Side, value)
			equity = equity.Add(futures.CloseReturn(pos.Margin, pnl))
		case common.InstrumentMargin:
			interest := margin.Interest(pos.Borrowed, s.cfg.hourlyInterest, s.tick-pos.OpenedTick)
			pnl := margin.ClosePnl(pos.EntryPrice, price, pos.Side, pos.Margin, pos.Leverage)
			equity = equity.Add(margin.CloseReturn(pos.Margin, pnl, interest))
		}
	}

	if len(s.contracts) > 0 && price.IsPos() {
		spotF, _ := price.Float64()
		for _, contract := range s.contracts {
			strikeF, _ := contract.Strike.Float64()
			t := float64(contract.ExpiryTick-s.tick) / float64(s.cfg.ticksPerYear)
			mark := fixed.FromFloat64(options.Price(contract.Type, spotF, strikeF, t, s.cfg.riskFreeRate, s.cfg.annualVol)).
				Mul(contract.Contracts).Mul(s.cfg.optionUnitSize)
			if contract.Action == common.OptionActionBuy {
				equity = equity.Add(mark)
			} else {
				equity = equity.Sub(mark)
			}
		}
	}

	return equity
}

func (s *Simulator) publishState() {
	s.post(bus.AccountEvent, s.ledger.Snapshot())
	s.post(bus.EquityEvent, common.Equity{
		Value:       s.Equity(s.lastPrice),
		Source:      simulatorComponentName,
		ExecutionId: utility.GetExecutionID(),
		TraceID:     utility.CreateTraceID(),
		TimeStamp:   time.Now(),
	})
	s.post(bus.SnapshotEvent, s.buildSnapshot())
}

func (s *Simulator) buildSnapshot() common.StateSnapshot {
	snapshot := common.StateSnapshot{
		Tick:        s.tick,
		Price:       s.lastPrice,
		Account:     s.ledger.Snapshot(),
		Equity:      s.Equity(s.lastPrice),
		BotEnabled:  s.botEnabled,
		Strategy:    s.stratName,
		Paused:      s.paused,
		SpeedLevel:  s.speedLevel,
		LastAction:  s.lastAction,
		Source:      simulatorComponentName,
		ExecutionId: utility.GetExecutionID(),
		TraceID:     utility.CreateTraceID(),
		TimeStamp:   time.Now(),
	}
	if s.position != nil {
		pos := *s.position
		snapshot.Position = &pos
	}
	if len(s.contracts) > 0 {
		snapshot.Options = append([]common.OptionContract(nil), s.contracts...)
	}
	return snapshot
}

func (s *Simulator) recordTrade(trade common.TradeRecord) {
	trade.Source = simulatorComponentName
	trade.ExecutionId = utility.GetExecutionID()
	trade.TraceID = utility.CreateTraceID()
	trade.TimeStamp = time.Now()

	s.ledger.RecordTrade(trade)
	s.post(bus.TradeEvent, trade)
}

func (s *Simulator) alert(a common.RiskAlert) {
	a.Source = simulatorComponentName
	a.ExecutionId = utility.GetExecutionID()
	a.TraceID = utility.CreateTraceID()
	a.TimeStamp = time.Now()
	s.post(bus.RiskAlertEvent, a)
}

func (s *Simulator) accept(order common.Order) {
	s.post(bus.OrderAcceptedEvent, common.OrderAccepted{
		OriginalOrder: order,
		Source:        simulatorComponentName,
		ExecutionId:   utility.GetExecutionID(),
		TraceID:       utility.CreateTraceID(),
		TimeStamp:     time.Now(),
	})
}

func (s *Simulator) reject(order common.Order, err error) {
	slog.Warn("order rejected",
		"component", simulatorComponentName,
		"command", order.Command,
		"reason", err)
	s.post(bus.OrderRejectedEvent, common.OrderRejected{
		OriginalOrder: order,
		Reason:        err.Error(),
		Source:        simulatorComponentName,
		ExecutionId:   utility.GetExecutionID(),
		TraceID:       utility.CreateTraceID(),
		TimeStamp:     time.Now(),
	})
}

func (s *Simulator) post(id bus.EventId, data interface{}) {
	if err := s.router.Post(id, data); err != nil {
		slog.Warn("event post failed",
			"component", simulatorComponentName,
			"event", id,
			"error", err)
	}
}
