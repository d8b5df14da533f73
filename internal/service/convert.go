package service

import (
	"github.com/mmynk/splitfriends/internal/ledger"
	"github.com/mmynk/splitfriends/pkg/api"
)

// toAPIState builds the client view of a ledger state. Standings and
// descriptions are derived here on every call and never stored.
func toAPIState(s ledger.State, currency string) *api.LedgerState {
	out := &api.LedgerState{
		Friends:        make([]*api.Friend, len(s.Friends)),
		AddFormVisible: s.AddFormVisible,
		Form: &api.AddFriendForm{
			Name:  s.Form.Name,
			Image: s.Form.Image,
		},
		Currency: currency,
	}

	for i, f := range s.Friends {
		out.Friends[i] = &api.Friend{
			ID:          f.ID,
			Name:        f.Name,
			Image:       f.Image,
			Balance:     f.Balance.String(),
			Standing:    ledger.Classify(f.Balance).String(),
			Description: ledger.Describe(f, currency),
			Selected:    s.IsSelected(f.ID),
		}
	}

	if selected, ok := s.Selected(); ok {
		out.SelectedFriendID = selected.ID
		out.SelectedFriendName = selected.Name
	}

	return out
}
