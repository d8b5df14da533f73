// Package ledgerconnect wires the splitfriends.v1.LedgerService messages to
// Connect handlers and clients. It follows the shape of protoc-gen-connect-go
// output so the service can later move to protobuf messages unchanged.
package ledgerconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitfriends/pkg/api"
)

// This is a compile-time assertion to ensure that this file and the
// connect package are compatible.
const _ = connect.IsAtLeastVersion1_13_0

const (
	// LedgerServiceName is the fully-qualified name of the LedgerService service.
	LedgerServiceName = "splitfriends.v1.LedgerService"
)

// These constants are the fully-qualified names of the RPCs defined in this
// package. They're exposed at runtime as Spec.Procedure and as the final two
// segments of the HTTP route.
const (
	LedgerServiceCreateSessionProcedure = "/splitfriends.v1.LedgerService/CreateSession"
	LedgerServiceGetStateProcedure      = "/splitfriends.v1.LedgerService/GetState"
	LedgerServiceAddFriendProcedure     = "/splitfriends.v1.LedgerService/AddFriend"
	LedgerServiceToggleAddFormProcedure = "/splitfriends.v1.LedgerService/ToggleAddForm"
	LedgerServiceUpdateAddFormProcedure = "/splitfriends.v1.LedgerService/UpdateAddForm"
	LedgerServiceSelectFriendProcedure  = "/splitfriends.v1.LedgerService/SelectFriend"
	LedgerServiceSplitBillProcedure     = "/splitfriends.v1.LedgerService/SplitBill"
	LedgerServiceEndSessionProcedure    = "/splitfriends.v1.LedgerService/EndSession"
)

// LedgerServiceClient is a client for the splitfriends.v1.LedgerService service.
type LedgerServiceClient interface {
	CreateSession(context.Context, *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error)
	GetState(context.Context, *connect.Request[api.GetStateRequest]) (*connect.Response[api.StateResponse], error)
	AddFriend(context.Context, *connect.Request[api.AddFriendRequest]) (*connect.Response[api.StateResponse], error)
	ToggleAddForm(context.Context, *connect.Request[api.ToggleAddFormRequest]) (*connect.Response[api.StateResponse], error)
	UpdateAddForm(context.Context, *connect.Request[api.UpdateAddFormRequest]) (*connect.Response[api.StateResponse], error)
	SelectFriend(context.Context, *connect.Request[api.SelectFriendRequest]) (*connect.Response[api.StateResponse], error)
	SplitBill(context.Context, *connect.Request[api.SplitBillRequest]) (*connect.Response[api.StateResponse], error)
	EndSession(context.Context, *connect.Request[api.EndSessionRequest]) (*connect.Response[api.EndSessionResponse], error)
}

// NewLedgerServiceClient constructs a client for the splitfriends.v1.LedgerService
// service. Requests use the JSON codec from package api.
//
// The URL supplied here should be the base URL for the Connect or gRPC server
// (for example, http://api.acme.com or https://acme.com/grpc).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &ledgerServiceClient{
		createSession: connect.NewClient[api.CreateSessionRequest, api.CreateSessionResponse](
			httpClient, baseURL+LedgerServiceCreateSessionProcedure, opts...,
		),
		getState: connect.NewClient[api.GetStateRequest, api.StateResponse](
			httpClient, baseURL+LedgerServiceGetStateProcedure, opts...,
		),
		addFriend: connect.NewClient[api.AddFriendRequest, api.StateResponse](
			httpClient, baseURL+LedgerServiceAddFriendProcedure, opts...,
		),
		toggleAddForm: connect.NewClient[api.ToggleAddFormRequest, api.StateResponse](
			httpClient, baseURL+LedgerServiceToggleAddFormProcedure, opts...,
		),
		updateAddForm: connect.NewClient[api.UpdateAddFormRequest, api.StateResponse](
			httpClient, baseURL+LedgerServiceUpdateAddFormProcedure, opts...,
		),
		selectFriend: connect.NewClient[api.SelectFriendRequest, api.StateResponse](
			httpClient, baseURL+LedgerServiceSelectFriendProcedure, opts...,
		),
		splitBill: connect.NewClient[api.SplitBillRequest, api.StateResponse](
			httpClient, baseURL+LedgerServiceSplitBillProcedure, opts...,
		),
		endSession: connect.NewClient[api.EndSessionRequest, api.EndSessionResponse](
			httpClient, baseURL+LedgerServiceEndSessionProcedure, opts...,
		),
	}
}

// ledgerServiceClient implements LedgerServiceClient.
type ledgerServiceClient struct {
	createSession *connect.Client[api.CreateSessionRequest, api.CreateSessionResponse]
	getState      *connect.Client[api.GetStateRequest, api.StateResponse]
	addFriend     *connect.Client[api.AddFriendRequest, api.StateResponse]
	toggleAddForm *connect.Client[api.ToggleAddFormRequest, api.StateResponse]
	updateAddForm *connect.Client[api.UpdateAddFormRequest, api.StateResponse]
	selectFriend  *connect.Client[api.SelectFriendRequest, api.StateResponse]
	splitBill     *connect.Client[api.SplitBillRequest, api.StateResponse]
	endSession    *connect.Client[api.EndSessionRequest, api.EndSessionResponse]
}

// CreateSession calls splitfriends.v1.LedgerService.CreateSession.
func (c *ledgerServiceClient) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error) {
	return c.createSession.CallUnary(ctx, req)
}

// GetState calls splitfriends.v1.LedgerService.GetState.
func (c *ledgerServiceClient) GetState(ctx context.Context, req *connect.Request[api.GetStateRequest]) (*connect.Response[api.StateResponse], error) {
	return c.getState.CallUnary(ctx, req)
}

// AddFriend calls splitfriends.v1.LedgerService.AddFriend.
func (c *ledgerServiceClient) AddFriend(ctx context.Context, req *connect.Request[api.AddFriendRequest]) (*connect.Response[api.StateResponse], error) {
	return c.addFriend.CallUnary(ctx, req)
}

// ToggleAddForm calls splitfriends.v1.LedgerService.ToggleAddForm.
func (c *ledgerServiceClient) ToggleAddForm(ctx context.Context, req *connect.Request[api.ToggleAddFormRequest]) (*connect.Response[api.StateResponse], error) {
	return c.toggleAddForm.CallUnary(ctx, req)
}

// UpdateAddForm calls splitfriends.v1.LedgerService.UpdateAddForm.
func (c *ledgerServiceClient) UpdateAddForm(ctx context.Context, req *connect.Request[api.UpdateAddFormRequest]) (*connect.Response[api.StateResponse], error) {
	return c.updateAddForm.CallUnary(ctx, req)
}

// SelectFriend calls splitfriends.v1.LedgerService.SelectFriend.
func (c *ledgerServiceClient) SelectFriend(ctx context.Context, req *connect.Request[api.SelectFriendRequest]) (*connect.Response[api.StateResponse], error) {
	return c.selectFriend.CallUnary(ctx, req)
}

// SplitBill calls splitfriends.v1.LedgerService.SplitBill.
func (c *ledgerServiceClient) SplitBill(ctx context.Context, req *connect.Request[api.SplitBillRequest]) (*connect.Response[api.StateResponse], error) {
	return c.splitBill.CallUnary(ctx, req)
}

// EndSession calls splitfriends.v1.LedgerService.EndSession.
func (c *ledgerServiceClient) EndSession(ctx context.Context, req *connect.Request[api.EndSessionRequest]) (*connect.Response[api.EndSessionResponse], error) {
	return c.endSession.CallUnary(ctx, req)
}

// LedgerServiceHandler is an implementation of the splitfriends.v1.LedgerService service.
type LedgerServiceHandler interface {
	CreateSession(context.Context, *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error)
	GetState(context.Context, *connect.Request[api.GetStateRequest]) (*connect.Response[api.StateResponse], error)
	AddFriend(context.Context, *connect.Request[api.AddFriendRequest]) (*connect.Response[api.StateResponse], error)
	ToggleAddForm(context.Context, *connect.Request[api.ToggleAddFormRequest]) (*connect.Response[api.StateResponse], error)
	UpdateAddForm(context.Context, *connect.Request[api.UpdateAddFormRequest]) (*connect.Response[api.StateResponse], error)
	SelectFriend(context.Context, *connect.Request[api.SelectFriendRequest]) (*connect.Response[api.StateResponse], error)
	SplitBill(context.Context, *connect.Request[api.SplitBillRequest]) (*connect.Response[api.StateResponse], error)
	EndSession(context.Context, *connect.Request[api.EndSessionRequest]) (*connect.Response[api.EndSessionResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
//
// By default, handlers support the Connect, gRPC, and gRPC-Web protocols with
// the JSON codec from package api.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	createSession := connect.NewUnaryHandler(LedgerServiceCreateSessionProcedure, svc.CreateSession, opts...)
	getState := connect.NewUnaryHandler(LedgerServiceGetStateProcedure, svc.GetState, opts...)
	addFriend := connect.NewUnaryHandler(LedgerServiceAddFriendProcedure, svc.AddFriend, opts...)
	toggleAddForm := connect.NewUnaryHandler(LedgerServiceToggleAddFormProcedure, svc.ToggleAddForm, opts...)
	updateAddForm := connect.NewUnaryHandler(LedgerServiceUpdateAddFormProcedure, svc.UpdateAddForm, opts...)
	selectFriend := connect.NewUnaryHandler(LedgerServiceSelectFriendProcedure, svc.SelectFriend, opts...)
	splitBill := connect.NewUnaryHandler(LedgerServiceSplitBillProcedure, svc.SplitBill, opts...)
	endSession := connect.NewUnaryHandler(LedgerServiceEndSessionProcedure, svc.EndSession, opts...)
	return "/splitfriends.v1.LedgerService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceCreateSessionProcedure:
			createSession.ServeHTTP(w, r)
		case LedgerServiceGetStateProcedure:
			getState.ServeHTTP(w, r)
		case LedgerServiceAddFriendProcedure:
			addFriend.ServeHTTP(w, r)
		case LedgerServiceToggleAddFormProcedure:
			toggleAddForm.ServeHTTP(w, r)
		case LedgerServiceUpdateAddFormProcedure:
			updateAddForm.ServeHTTP(w, r)
		case LedgerServiceSelectFriendProcedure:
			selectFriend.ServeHTTP(w, r)
		case LedgerServiceSplitBillProcedure:
			splitBill.ServeHTTP(w, r)
		case LedgerServiceEndSessionProcedure:
			endSession.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func (UnimplementedLedgerServiceHandler) CreateSession(context.Context, *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitfriends.v1.LedgerService.CreateSession is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetState(context.Context, *connect.Request[api.GetStateRequest]) (*connect.Response[api.StateResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitfriends.v1.LedgerService.GetState is not implemented"))
}

func (UnimplementedLedgerServiceHandler) AddFriend(context.Context, *connect.Request[api.AddFriendRequest]) (*connect.Response[api.StateResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitfriends.v1.LedgerService.AddFriend is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ToggleAddForm(context.Context, *connect.Request[api.ToggleAddFormRequest]) (*connect.Response[api.StateResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitfriends.v1.LedgerService.ToggleAddForm is not implemented"))
}

func (UnimplementedLedgerServiceHandler) UpdateAddForm(context.Context, *connect.Request[api.UpdateAddFormRequest]) (*connect.Response[api.StateResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitfriends.v1.LedgerService.UpdateAddForm is not implemented"))
}

func (UnimplementedLedgerServiceHandler) SelectFriend(context.Context, *connect.Request[api.SelectFriendRequest]) (*connect.Response[api.StateResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitfriends.v1.LedgerService.SelectFriend is not implemented"))
}

func (UnimplementedLedgerServiceHandler) SplitBill(context.Context, *connect.Request[api.SplitBillRequest]) (*connect.Response[api.StateResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitfriends.v1.LedgerService.SplitBill is not implemented"))
}

func (UnimplementedLedgerServiceHandler) EndSession(context.Context, *connect.Request[api.EndSessionRequest]) (*connect.Response[api.EndSessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitfriends.v1.LedgerService.EndSession is not implemented"))
}
