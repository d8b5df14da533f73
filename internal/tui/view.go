package tui

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/mmynk/splitfriends/internal/ledger"
	"github.com/mmynk/splitfriends/internal/money"
	"github.com/mmynk/splitfriends/pkg/api"
)

const footerHelp = "[::b]Enter[::-] select/close  [::b]a[::-] add friend  [::b]Tab[::-] next field  [::b]Esc[::-] back to list  [::b]q[::-] quit"

// friendText returns the main and secondary list lines for a friend.
func friendText(f *api.Friend) (string, string) {
	main := tview.Escape(f.Name)
	if f.Selected {
		main = "▶ " + main
	}

	desc := tview.Escape(f.Description)
	switch f.Standing {
	case ledger.UserOwes.String():
		desc = fmt.Sprintf("[%s]%s[-]", owingColor, desc)
	case ledger.FriendOwes.String():
		desc = fmt.Sprintf("[%s]%s[-]", owedColor, desc)
	}
	return main, "  " + desc
}

// friendExpensePreview shows the friend's derived portion for the current
// form inputs, or "" while the bill is empty or unparsable.
func friendExpensePreview(bill, userExpense string) string {
	b, err := money.Parse(bill)
	if err != nil || b.IsZero() {
		return ""
	}
	u, err := money.Parse(userExpense)
	if err != nil {
		return ""
	}
	return ledger.FriendExpense(b, u).String()
}

// payerOptions lists the choices of the "Who's paying" drop-down; index 0
// is the user.
func payerOptions(friendName string) []string {
	return []string{"You", friendName}
}

// payerValue maps a drop-down index to a SplitBillRequest payer.
func payerValue(index int) string {
	if index == 1 {
		return api.PayerFriend
	}
	return api.PayerUser
}

// headerText summarizes the ledger for the header bar.
func headerText(s *api.LedgerState) string {
	if s == nil {
		return "[::b]Eat-'n-Split[::-]  connecting..."
	}
	if sel := s.SelectedFriend(); sel != nil {
		return fmt.Sprintf("[::b]Eat-'n-Split[::-]  %d friends  |  splitting with %s", len(s.Friends), tview.Escape(sel.Name))
	}
	return fmt.Sprintf("[::b]Eat-'n-Split[::-]  %d friends", len(s.Friends))
}
