// Package swap owns the in-progress swap selection: the asset pair, the
// amount being typed and the asset picker lifecycle.
//
// A Session is meant to be driven from a single UI event loop and is not
// safe for concurrent use.
package swap

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/storm-trade/swap-quote/quote"
	"github.com/storm-trade/swap-quote/types"
)

var (
	ErrNotIdle       = errors.New("picker is not idle")
	ErrNotPicking    = errors.New("picker is not open")
	ErrPickerOpen    = errors.New("picker is already open")
	ErrPickerClosing = errors.New("picker is still closing")
)

type Session struct {
	state  types.SwapState
	phase  types.Phase
	target types.SelectionTarget

	closeTransition bool
	logger          zerolog.Logger
}

type Opt func(s *Session)

// WithAmount sets the initial amount text verbatim.
func WithAmount(amount string) Opt {
	return func(s *Session) {
		s.state.Amount = amount
	}
}

// WithCloseTransition makes every picker close pass through Closing until
// FinishClose is called by the presentation layer.
func WithCloseTransition() Opt {
	return func(s *Session) {
		s.closeTransition = true
	}
}

func WithLogger(logger zerolog.Logger) Opt {
	return func(s *Session) {
		s.logger = logger
	}
}

func New(source, destination types.Asset, opt ...Opt) *Session {
	s := &Session{
		state: types.SwapState{
			Source:      source,
			Destination: destination,
		},
		phase:  types.Idle,
		logger: log.Logger,
	}

	for _, o := range opt {
		o(s)
	}

	return s
}

func (s *Session) State() types.SwapState {
	return s.state
}

func (s *Session) Phase() types.Phase {
	return s.phase
}

// Target is meaningful only while the picker is open.
func (s *Session) Target() types.SelectionTarget {
	return s.target
}

// SetAmount applies a keystroke to the amount text and returns the accepted value.
func (s *Session) SetAmount(text string) string {
	next := quote.Sanitize(text, s.state.Amount)
	if next == s.state.Amount && text != next {
		s.logger.Debug().Str("input", text).Str("kept", next).Msg("Amount input rejected")
	}
	s.state.Amount = next
	return next
}

// SetMax copies the source balance into the amount without sanitizing it.
func (s *Session) SetMax() error {
	if s.phase != types.Idle {
		return errors.Wrap(ErrNotIdle, "set max")
	}
	s.state.Amount = s.state.Source.Balance
	return nil
}

// Flip swaps source and destination and carries the pre-flip quote over as
// the new amount. On a quote error nothing changes.
func (s *Session) Flip() error {
	if s.phase != types.Idle {
		return errors.Wrap(ErrNotIdle, "flip")
	}

	amount, err := quote.DestinationAmount(s.state.Amount, s.state.Source, s.state.Destination)
	if err != nil {
		return errors.Wrap(err, "flip")
	}

	s.state.Source, s.state.Destination = s.state.Destination, s.state.Source
	s.state.Amount = amount

	s.logger.Debug().
		Str("source", s.state.Source.Symbol).
		Str("destination", s.state.Destination.Symbol).
		Str("amount", amount).
		Msg("Pair flipped")

	return nil
}

func (s *Session) OpenPicker(target types.SelectionTarget) error {
	switch s.phase {
	case types.Picking:
		return errors.Wrapf(ErrPickerOpen, "open %s picker", target)
	case types.Closing:
		s.logger.Debug().Stringer("target", target).Msg("Picker open ignored while closing")
		return errors.Wrapf(ErrPickerClosing, "open %s picker", target)
	}

	s.phase = types.Picking
	s.target = target

	s.logger.Debug().Stringer("target", target).Msg("Picker opened")

	return nil
}

// ConfirmSelection writes asset into the side the picker was opened for.
// Changing the source clears the amount.
func (s *Session) ConfirmSelection(asset types.Asset) error {
	if s.phase != types.Picking {
		return errors.Wrap(ErrNotPicking, "confirm selection")
	}

	switch s.target {
	case types.Source:
		s.state.Source = asset
		s.state.Amount = ""
	case types.Destination:
		s.state.Destination = asset
	}

	s.logger.Debug().Stringer("target", s.target).Str("symbol", asset.Symbol).Msg("Asset selected")

	s.close()
	return nil
}

func (s *Session) CancelPicker() error {
	if s.phase != types.Picking {
		return errors.Wrap(ErrNotPicking, "cancel picker")
	}

	s.close()
	return nil
}

// FinishClose is called when the picker's close transition has ended.
func (s *Session) FinishClose() {
	if s.phase == types.Closing {
		s.phase = types.Idle
	}
}

func (s *Session) close() {
	if s.closeTransition {
		s.phase = types.Closing
		return
	}
	s.phase = types.Idle
}

// DestinationAmount is derived from the current state on every call.
func (s *Session) DestinationAmount() (string, error) {
	return quote.DestinationAmount(s.state.Amount, s.state.Source, s.state.Destination)
}

func (s *Session) ExchangeRateLabel() (string, error) {
	return quote.ExchangeRateLabel(s.state.Source, s.state.Destination)
}

func (s *Session) SubmissionEnabled() bool {
	return quote.IsSubmissionEnabled(s.state.Amount, s.state.Source)
}

func (s *Session) ActionLabel() string {
	return quote.ActionLabel(s.SubmissionEnabled())
}
