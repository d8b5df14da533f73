// Package tui is a terminal client for the ledger service: a friend list,
// an add-friend form and a split-bill form for the selected friend.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"connectrpc.com/connect"
	"github.com/rivo/tview"

	"github.com/mmynk/splitfriends/internal/middleware"
	"github.com/mmynk/splitfriends/pkg/api"
	"github.com/mmynk/splitfriends/pkg/api/ledgerconnect"
)

const callTimeout = 5 * time.Second

// App wraps the widgets and the session they render.
type App struct {
	client ledgerconnect.LedgerServiceClient
	tv     *tview.Application

	header    *tview.TextView
	footer    *tview.TextView
	list      *tview.List
	addForm   *tview.Form
	splitForm *tview.Form
	preview   *tview.InputField
	left      *tview.Flex
	right     *tview.Flex

	tokenMu sync.RWMutex
	token   string

	// Everything below is owned by the UI goroutine.
	state       *api.LedgerState
	addShown    bool
	addName     string
	addImage    string
	splitFor    string
	bill        string
	userExpense string
	payer       int
	status      string
}

// New creates the application talking to the ledger service at baseURL.
func New(httpClient connect.HTTPClient, baseURL string) *App {
	a := &App{tv: tview.NewApplication()}
	a.client = ledgerconnect.NewLedgerServiceClient(httpClient, baseURL,
		connect.WithInterceptors(middleware.BearerToken(a.currentToken)),
	)

	SetupTheme()

	a.header = tview.NewTextView().SetDynamicColors(true)
	a.header.SetBorder(true)
	a.footer = tview.NewTextView().SetDynamicColors(true)
	a.footer.SetBorder(true)

	a.list = tview.NewList().ShowSecondaryText(true)
	a.list.SetBorder(true).SetTitle(" Friends ")
	a.list.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		a.selectFriend(index)
	})

	a.left = tview.NewFlex().SetDirection(tview.FlexRow)
	a.right = tview.NewFlex().SetDirection(tview.FlexRow)

	body := tview.NewFlex().
		AddItem(a.left, 0, 1, true).
		AddItem(a.right, 0, 1, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.header, 3, 0, false).
		AddItem(body, 0, 1, true).
		AddItem(a.footer, 3, 0, false)

	a.tv.SetRoot(root, true).SetFocus(a.list)
	SetupKeyBindings(a)
	a.render()

	return a
}

// Run opens a session, runs the UI until the user quits and then ends the
// session.
func (a *App) Run(ctx context.Context) error {
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	resp, err := a.client.CreateSession(callCtx, connect.NewRequest(&api.CreateSessionRequest{}))
	cancel()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	a.setToken(resp.Msg.Token)
	a.state = resp.Msg.State
	a.render()

	go func() {
		<-ctx.Done()
		a.tv.Stop()
	}()

	if err := a.tv.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}

	endCtx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	if _, err := a.client.EndSession(endCtx, connect.NewRequest(&api.EndSessionRequest{})); err != nil {
		slog.Warn("Failed to end session", "error", err)
	}
	return nil
}

func (a *App) currentToken() string {
	a.tokenMu.RLock()
	defer a.tokenMu.RUnlock()
	return a.token
}

func (a *App) setToken(token string) {
	a.tokenMu.Lock()
	a.token = token
	a.tokenMu.Unlock()
}

// dispatch runs call off the UI goroutine and renders its result.
func (a *App) dispatch(action string, call func(ctx context.Context) (*api.LedgerState, error), after func()) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		state, err := call(ctx)
		a.tv.QueueUpdateDraw(func() {
			if err != nil {
				slog.Warn("Action failed", "action", action, "error", err)
				a.status = errorStatus(err)
				a.render()
				return
			}
			a.status = ""
			a.state = state
			if after != nil {
				after()
			}
			a.render()
		})
	}()
}

func (a *App) selectFriend(index int) {
	if a.state == nil || index < 0 || index >= len(a.state.Friends) {
		return
	}
	id := a.state.Friends[index].ID
	a.dispatch("select_friend", func(ctx context.Context) (*api.LedgerState, error) {
		resp, err := a.client.SelectFriend(ctx, connect.NewRequest(&api.SelectFriendRequest{FriendID: id}))
		if err != nil {
			return nil, err
		}
		return resp.Msg.State, nil
	}, nil)
}

func (a *App) toggleAddForm() {
	a.dispatch("toggle_add_form", func(ctx context.Context) (*api.LedgerState, error) {
		resp, err := a.client.ToggleAddForm(ctx, connect.NewRequest(&api.ToggleAddFormRequest{}))
		if err != nil {
			return nil, err
		}
		return resp.Msg.State, nil
	}, nil)
}

// closeAddForm keeps the typed draft in the session, then hides the form.
func (a *App) closeAddForm() {
	draft := a.addFormDraft()
	a.dispatch("close_add_form", func(ctx context.Context) (*api.LedgerState, error) {
		if _, err := a.client.UpdateAddForm(ctx, connect.NewRequest(draft)); err != nil {
			return nil, err
		}
		resp, err := a.client.ToggleAddForm(ctx, connect.NewRequest(&api.ToggleAddFormRequest{}))
		if err != nil {
			return nil, err
		}
		return resp.Msg.State, nil
	}, nil)
}

// addFormDraft builds the request that stores the add form draft.
func (a *App) addFormDraft() *api.UpdateAddFormRequest {
	return &api.UpdateAddFormRequest{Name: a.addName, Image: a.addImage}
}

func (a *App) submitAddFriend() {
	req := &api.AddFriendRequest{Name: a.addName, Image: a.addImage}
	a.dispatch("add_friend", func(ctx context.Context) (*api.LedgerState, error) {
		resp, err := a.client.AddFriend(ctx, connect.NewRequest(req))
		if err != nil {
			return nil, err
		}
		return resp.Msg.State, nil
	}, func() {
		// the server reset the form draft; rebuild the form from it
		a.addShown = false
	})
}

func (a *App) submitSplit() {
	req := a.splitRequest()
	a.dispatch("split_bill", func(ctx context.Context) (*api.LedgerState, error) {
		resp, err := a.client.SplitBill(ctx, connect.NewRequest(req))
		if err != nil {
			return nil, err
		}
		return resp.Msg.State, nil
	}, func() {
		a.tv.SetFocus(a.list)
	})
}

// splitRequest builds the request from the split form draft.
func (a *App) splitRequest() *api.SplitBillRequest {
	return &api.SplitBillRequest{
		Payer:       payerValue(a.payer),
		Bill:        a.bill,
		UserExpense: a.userExpense,
	}
}

// render syncs every widget with a.state. It must run on the UI goroutine.
func (a *App) render() {
	a.header.SetText(headerText(a.state))
	if a.status != "" {
		a.footer.SetText(fmt.Sprintf("[red]%s[-]", tview.Escape(a.status)))
	} else {
		a.footer.SetText(footerHelp)
	}

	if a.state == nil {
		return
	}

	current := a.list.GetCurrentItem()
	a.list.Clear()
	for _, f := range a.state.Friends {
		main, secondary := friendText(f)
		a.list.AddItem(main, secondary, 0, nil)
	}
	if current >= 0 && current < a.list.GetItemCount() {
		a.list.SetCurrentItem(current)
	}

	a.renderLeft()
	a.renderRight()
}

func (a *App) renderLeft() {
	a.left.Clear()
	a.left.AddItem(a.list, 0, 1, true)

	if !a.state.AddFormVisible {
		a.addShown = false
		if a.addForm != nil && a.addForm.HasFocus() {
			a.tv.SetFocus(a.list)
		}
		return
	}

	if !a.addShown {
		a.addName, a.addImage = "", ""
		if a.state.Form != nil {
			a.addName, a.addImage = a.state.Form.Name, a.state.Form.Image
		}
		a.addForm = a.buildAddForm()
		a.addShown = true
	}
	a.left.AddItem(a.addForm, 9, 0, false)
}

func (a *App) buildAddForm() *tview.Form {
	form := tview.NewForm().
		AddInputField("Friend name", a.addName, 30, nil, func(text string) { a.addName = text }).
		AddInputField("Image URL", a.addImage, 40, nil, func(text string) { a.addImage = text }).
		AddButton("Add", a.submitAddFriend).
		AddButton("Close", a.closeAddForm)
	form.SetBorder(true).SetTitle(" Add friend ")
	return form
}

func (a *App) renderRight() {
	a.right.Clear()

	sel := a.state.SelectedFriend()
	if sel == nil {
		a.splitFor = ""
		if a.splitForm != nil && a.splitForm.HasFocus() {
			a.tv.SetFocus(a.list)
		}
		hint := tview.NewTextView().SetDynamicColors(true).SetText("\n  Select a friend to split a bill.")
		hint.SetBorder(true)
		a.right.AddItem(hint, 0, 1, false)
		return
	}

	// a fresh form per selected friend, like keying the form on its id
	if a.splitFor != sel.ID {
		a.bill, a.userExpense, a.payer = "", "", 0
		a.splitForm = a.buildSplitForm(sel)
		a.splitFor = sel.ID
		a.tv.SetFocus(a.splitForm)
	}
	a.right.AddItem(a.splitForm, 0, 1, false)
}

func (a *App) buildSplitForm(sel *api.Friend) *tview.Form {
	name := tview.Escape(sel.Name)

	a.preview = tview.NewInputField().
		SetLabel(name + "'s expense").
		SetFieldWidth(12)
	a.preview.SetDisabled(true)

	form := tview.NewForm().
		AddInputField("Bill", "", 12, tview.InputFieldFloat, func(text string) {
			a.bill = text
			a.preview.SetText(friendExpensePreview(a.bill, a.userExpense))
		}).
		AddInputField("Your expense", "", 12, tview.InputFieldFloat, func(text string) {
			a.userExpense = text
			a.preview.SetText(friendExpensePreview(a.bill, a.userExpense))
		}).
		AddFormItem(a.preview).
		AddDropDown("Who's paying the bill", payerOptions(name), 0, func(_ string, index int) {
			a.payer = index
		}).
		AddButton("Split bill", a.submitSplit)
	form.SetBorder(true).SetTitle(fmt.Sprintf(" Split bill with %s ", name))
	return form
}

// errorStatus turns an RPC error into a one-line message for the footer.
func errorStatus(err error) string {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		switch connectErr.Code() {
		case connect.CodeInvalidArgument:
			return "Check the form: " + connectErr.Message()
		case connect.CodeFailedPrecondition:
			return "Select a friend first"
		case connect.CodeNotFound, connect.CodeUnauthenticated:
			return "Session expired; restart to begin a new one"
		}
		return connectErr.Message()
	}
	return err.Error()
}
