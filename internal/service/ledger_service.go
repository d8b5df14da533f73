package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitfriends/internal/auth"
	"github.com/mmynk/splitfriends/internal/ledger"
	"github.com/mmynk/splitfriends/internal/metrics"
	"github.com/mmynk/splitfriends/internal/middleware"
	"github.com/mmynk/splitfriends/internal/money"
	"github.com/mmynk/splitfriends/internal/storage"
	"github.com/mmynk/splitfriends/pkg/api"
	"github.com/mmynk/splitfriends/pkg/api/ledgerconnect"
)

// Options configures a LedgerService.
type Options struct {
	// Currency is the ISO code used to describe balances. Defaults to USD.
	Currency string
	// NextID generates friend ids. Defaults to ledger.UUIDGenerator.
	NextID ledger.IDGenerator
	// NoSeed starts every session with an empty ledger.
	NoSeed bool
	// Metrics records transitions when set.
	Metrics *metrics.Metrics
}

// LedgerService implements the Connect LedgerService.
type LedgerService struct {
	ledgerconnect.UnimplementedLedgerServiceHandler
	store    storage.SessionStore
	sessions *auth.SessionManager
	reducer  *ledger.Reducer
	nextID   ledger.IDGenerator
	currency string
	noSeed   bool
	metrics  *metrics.Metrics

	// mu serializes load-apply-save so each transition resolves before the next.
	mu sync.Mutex
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.SessionStore, sessions *auth.SessionManager, opts Options) *LedgerService {
	if opts.Currency == "" {
		opts.Currency = money.DefaultCurrency
	}
	if opts.NextID == nil {
		opts.NextID = ledger.UUIDGenerator
	}
	return &LedgerService{
		store:    store,
		sessions: sessions,
		reducer:  ledger.NewReducer(opts.NextID),
		nextID:   opts.NextID,
		currency: opts.Currency,
		noSeed:   opts.NoSeed,
		metrics:  opts.Metrics,
	}
}

// CreateSession starts a new ledger and returns the token that addresses it.
func (s *LedgerService) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error) {
	state := ledger.NewState(nil)
	if !req.Msg.SkipSeed && !s.noSeed {
		state = ledger.NewState(ledger.Seed(s.nextID))
	}

	session := &storage.Session{State: state}
	if err := s.store.CreateSession(ctx, session); err != nil {
		slog.Error("CreateSession failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.sessions.Generate(session.ID)
	if err != nil {
		slog.Error("Failed to generate session token", "session_id", session.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Session created", "session_id", session.ID, "friends_count", len(state.Friends))

	return connect.NewResponse(&api.CreateSessionResponse{
		Token: token,
		State: toAPIState(session.State, s.currency),
	}), nil
}

// GetState returns the current ledger of the caller's session.
func (s *LedgerService) GetState(ctx context.Context, req *connect.Request[api.GetStateRequest]) (*connect.Response[api.StateResponse], error) {
	sessionID, err := requireSessionID(ctx)
	if err != nil {
		return nil, err
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.StateResponse{State: toAPIState(session.State, s.currency)}), nil
}

// AddFriend appends a friend with a zero balance.
func (s *LedgerService) AddFriend(ctx context.Context, req *connect.Request[api.AddFriendRequest]) (*connect.Response[api.StateResponse], error) {
	return s.apply(ctx, ledger.AddFriend{Name: req.Msg.Name, Image: req.Msg.Image})
}

// ToggleAddForm shows or hides the add-friend form.
func (s *LedgerService) ToggleAddForm(ctx context.Context, req *connect.Request[api.ToggleAddFormRequest]) (*connect.Response[api.StateResponse], error) {
	return s.apply(ctx, ledger.ToggleAddForm{})
}

// UpdateAddForm stores the add-friend form draft so it survives closing the
// form or switching clients.
func (s *LedgerService) UpdateAddForm(ctx context.Context, req *connect.Request[api.UpdateAddFormRequest]) (*connect.Response[api.StateResponse], error) {
	return s.apply(ctx, ledger.EditAddForm{Name: req.Msg.Name, Image: req.Msg.Image})
}

// SelectFriend selects a friend, or deselects it if already selected.
func (s *LedgerService) SelectFriend(ctx context.Context, req *connect.Request[api.SelectFriendRequest]) (*connect.Response[api.StateResponse], error) {
	if req.Msg.FriendID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("friend_id required"))
	}
	return s.apply(ctx, ledger.SelectFriend{ID: req.Msg.FriendID})
}

// SplitBill records a bill split with the selected friend.
func (s *LedgerService) SplitBill(ctx context.Context, req *connect.Request[api.SplitBillRequest]) (*connect.Response[api.StateResponse], error) {
	action, err := toSplitBill(req.Msg)
	if err != nil {
		slog.Debug("SplitBill rejected", "error", err)
		s.metrics.ObserveTransition(ledger.SplitBill{}.Kind(), metrics.OutcomeRejected)
		return nil, toConnectError(err)
	}

	slog.Debug("Processing split",
		"payer_is_user", action.PayerIsUser,
		"bill", action.Bill,
		"user_expense", action.UserExpense,
		"delta", action.Delta(),
	)
	return s.apply(ctx, action)
}

// EndSession discards the caller's session.
func (s *LedgerService) EndSession(ctx context.Context, req *connect.Request[api.EndSessionRequest]) (*connect.Response[api.EndSessionResponse], error) {
	sessionID, err := requireSessionID(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Session ended", "session_id", sessionID)
	return connect.NewResponse(&api.EndSessionResponse{}), nil
}

// apply loads the caller's session, applies the action and saves the result.
func (s *LedgerService) apply(ctx context.Context, action ledger.Action) (*connect.Response[api.StateResponse], error) {
	sessionID, err := requireSessionID(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	next, err := s.reducer.Apply(session.State, action)
	if err != nil {
		slog.Debug("Transition rejected", "session_id", sessionID, "action", action.Kind(), "error", err)
		s.metrics.ObserveTransition(action.Kind(), outcomeOf(err))
		return nil, toConnectError(err)
	}

	session.State = next
	if err := s.store.SaveSession(ctx, session); err != nil {
		slog.Error("Failed to save session", "session_id", sessionID, "action", action.Kind(), "error", err)
		s.metrics.ObserveTransition(action.Kind(), metrics.OutcomeFailed)
		return nil, toConnectError(err)
	}

	s.metrics.ObserveTransition(action.Kind(), metrics.OutcomeApplied)
	slog.Debug("Transition applied", "session_id", sessionID, "action", action.Kind())

	return connect.NewResponse(&api.StateResponse{State: toAPIState(next, s.currency)}), nil
}

func requireSessionID(ctx context.Context) (string, error) {
	sessionID := middleware.GetSessionID(ctx)
	if sessionID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return sessionID, nil
}

// toSplitBill parses the wire request into a ledger action.
func toSplitBill(msg *api.SplitBillRequest) (ledger.SplitBill, error) {
	var action ledger.SplitBill

	switch msg.Payer {
	case "", api.PayerUser:
		action.PayerIsUser = true
	case api.PayerFriend:
		action.PayerIsUser = false
	default:
		return action, &ledger.ValidationError{Field: "payer", Reason: fmt.Sprintf("must be %q or %q", api.PayerUser, api.PayerFriend)}
	}

	var err error
	if action.Bill, err = parseAmount("bill", msg.Bill); err != nil {
		return action, err
	}
	if action.UserExpense, err = parseAmount("user_expense", msg.UserExpense); err != nil {
		return action, err
	}
	return action, nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	d, err := money.Parse(raw)
	if err != nil {
		return decimal.Zero, &ledger.ValidationError{Field: field, Reason: err.Error()}
	}
	return d, nil
}

func outcomeOf(err error) string {
	if ledger.IsValidation(err) || errors.Is(err, ledger.ErrNoSelection) || errors.Is(err, ledger.ErrUnknownFriend) {
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeFailed
}

// toConnectError maps domain and storage errors to Connect codes.
func toConnectError(err error) error {
	switch {
	case ledger.IsValidation(err):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ledger.ErrNoSelection):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, ledger.ErrUnknownFriend), errors.Is(err, storage.ErrSessionNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ledger.ErrDuplicateFriend):
		return connect.NewError(connect.CodeAborted, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
