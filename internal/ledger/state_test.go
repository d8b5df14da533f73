package ledger

import (
	"fmt"
	"testing"

	"github.com/mmynk/splitfriends/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequentialIDs returns a generator yielding "f1", "f2", ...
func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("f%d", n)
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func clarkOnly() State {
	return NewState([]models.Friend{
		{ID: "clark", Name: "Clark", Image: "https://i.pravatar.cc/48?u=118836", Balance: dec("-7")},
	})
}

func TestAddFriend(t *testing.T) {
	r := NewReducer(sequentialIDs())

	t.Run("appends friends with zero balance and unique ids", func(t *testing.T) {
		s := NewState(nil)
		seen := map[string]bool{}
		for i := 1; i <= 5; i++ {
			var err error
			s, err = r.Apply(s, AddFriend{Name: fmt.Sprintf("Friend %d", i), Image: models.DefaultAvatarURL})
			require.NoError(t, err)
			require.Len(t, s.Friends, i)

			added := s.Friends[i-1]
			assert.True(t, added.Balance.IsZero())
			assert.False(t, seen[added.ID], "duplicate id %s", added.ID)
			seen[added.ID] = true
		}
	})

	t.Run("image gets cache-busting suffix from the id", func(t *testing.T) {
		s, err := NewReducer(func() string { return "abc" }).Apply(NewState(nil), AddFriend{Name: "Zoe", Image: "https://i.pravatar.cc/48"})
		require.NoError(t, err)
		assert.Equal(t, "https://i.pravatar.cc/48?=abc", s.Friends[0].Image)
	})

	t.Run("resets the form draft", func(t *testing.T) {
		s := NewState(nil)
		s.Form = models.AddFriendForm{Name: "typed", Image: "https://example.com/a.png"}
		s, err := r.Apply(s, AddFriend{Name: "Zoe", Image: "https://example.com/a.png"})
		require.NoError(t, err)
		assert.Equal(t, models.NewAddFriendForm(), s.Form)
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		s := clarkOnly()
		s, err := r.Apply(s, AddFriend{Name: "Zoe", Image: models.DefaultAvatarURL})
		require.NoError(t, err)
		assert.Equal(t, "Clark", s.Friends[0].Name)
		assert.Equal(t, "Zoe", s.Friends[1].Name)
	})

	tests := []struct {
		name  string
		add   AddFriend
		field string
	}{
		{name: "empty name", add: AddFriend{Image: models.DefaultAvatarURL}, field: "name"},
		{name: "empty image", add: AddFriend{Name: "Zoe"}, field: "image"},
		{name: "both empty", add: AddFriend{}, field: "name"},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			before := clarkOnly()
			after, err := r.Apply(before, tt.add)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, before, after)
		})
	}

	t.Run("rejects colliding ids", func(t *testing.T) {
		before := clarkOnly()
		after, err := NewReducer(func() string { return "clark" }).Apply(before, AddFriend{Name: "Clone", Image: models.DefaultAvatarURL})
		require.ErrorIs(t, err, ErrDuplicateFriend)
		assert.Len(t, after.Friends, 1)
	})

	t.Run("does not mutate the input state", func(t *testing.T) {
		// built literally so the spare capacity reaches Apply
		before := State{Friends: make([]models.Friend, 1, 8), Form: models.NewAddFriendForm()}
		before.Friends[0] = models.Friend{ID: "x", Name: "X", Image: "i"}
		_, err := r.Apply(before, AddFriend{Name: "Y", Image: "i"})
		require.NoError(t, err)
		assert.Len(t, before.Friends, 1)
		assert.Equal(t, "", before.Friends[:2][1].ID, "spare capacity must stay untouched")
	})
}

func TestToggleAddForm(t *testing.T) {
	r := NewReducer(sequentialIDs())
	s := NewState(nil)

	s, err := r.Apply(s, ToggleAddForm{})
	require.NoError(t, err)
	assert.True(t, s.AddFormVisible)

	s, err = r.Apply(s, ToggleAddForm{})
	require.NoError(t, err)
	assert.False(t, s.AddFormVisible)
}

func TestEditAddForm(t *testing.T) {
	r := NewReducer(sequentialIDs())

	s, err := r.Apply(clarkOnly(), EditAddForm{Name: "Zo", Image: "https://example.com/z.png"})
	require.NoError(t, err)
	assert.Equal(t, models.AddFriendForm{Name: "Zo", Image: "https://example.com/z.png"}, s.Form)

	t.Run("accepts an empty draft", func(t *testing.T) {
		cleared, err := r.Apply(s, EditAddForm{})
		require.NoError(t, err)
		assert.Equal(t, models.AddFriendForm{}, cleared.Form)
	})

	t.Run("submitting the draft resets it", func(t *testing.T) {
		added, err := r.Apply(s, AddFriend{Name: s.Form.Name, Image: s.Form.Image})
		require.NoError(t, err)
		assert.Equal(t, "Zo", added.Friends[1].Name)
		assert.Equal(t, models.NewAddFriendForm(), added.Form)
	})
}

func TestSelectFriend(t *testing.T) {
	r := NewReducer(sequentialIDs())

	t.Run("selecting twice clears the selection", func(t *testing.T) {
		s, err := r.Apply(clarkOnly(), SelectFriend{ID: "clark"})
		require.NoError(t, err)
		assert.Equal(t, "clark", s.SelectedID)

		s, err = r.Apply(s, SelectFriend{ID: "clark"})
		require.NoError(t, err)
		assert.Empty(t, s.SelectedID)
		_, ok := s.Selected()
		assert.False(t, ok)
	})

	t.Run("selecting another friend moves the selection", func(t *testing.T) {
		s := NewState(Seed(sequentialIDs()))
		s, err := r.Apply(s, SelectFriend{ID: "f1"})
		require.NoError(t, err)
		s, err = r.Apply(s, SelectFriend{ID: "f2"})
		require.NoError(t, err)

		selected, ok := s.Selected()
		require.True(t, ok)
		assert.Equal(t, "Sarah", selected.Name)
	})

	t.Run("hides the add form", func(t *testing.T) {
		s := clarkOnly()
		s.AddFormVisible = true
		s, err := r.Apply(s, SelectFriend{ID: "clark"})
		require.NoError(t, err)
		assert.False(t, s.AddFormVisible)

		s.AddFormVisible = true
		s, err = r.Apply(s, SelectFriend{ID: "clark"})
		require.NoError(t, err)
		assert.False(t, s.AddFormVisible, "deselecting hides the form too")
	})

	t.Run("unknown friend", func(t *testing.T) {
		before := clarkOnly()
		before.AddFormVisible = true
		after, err := r.Apply(before, SelectFriend{ID: "nobody"})
		require.ErrorIs(t, err, ErrUnknownFriend)
		assert.Equal(t, before, after)
	})
}

func TestSplitBill(t *testing.T) {
	r := NewReducer(sequentialIDs())

	selectedClark := func(t *testing.T) State {
		t.Helper()
		s, err := r.Apply(clarkOnly(), SelectFriend{ID: "clark"})
		require.NoError(t, err)
		return s
	}

	t.Run("user pays", func(t *testing.T) {
		s, err := r.Apply(selectedClark(t), SplitBill{PayerIsUser: true, Bill: dec("50"), UserExpense: dec("20")})
		require.NoError(t, err)
		assert.True(t, s.Friends[0].Balance.Equal(dec("23")), "got %s", s.Friends[0].Balance)
		assert.Empty(t, s.SelectedID)
	})

	t.Run("friend pays", func(t *testing.T) {
		s, err := r.Apply(selectedClark(t), SplitBill{PayerIsUser: false, Bill: dec("50"), UserExpense: dec("20")})
		require.NoError(t, err)
		assert.True(t, s.Friends[0].Balance.Equal(dec("-27")), "got %s", s.Friends[0].Balance)
		assert.Empty(t, s.SelectedID)
	})

	t.Run("exact decimal arithmetic", func(t *testing.T) {
		s, err := r.Apply(selectedClark(t), SplitBill{PayerIsUser: true, Bill: dec("0.3"), UserExpense: dec("0.1")})
		require.NoError(t, err)
		assert.Equal(t, "-6.8", s.Friends[0].Balance.String())
	})

	t.Run("only the selected friend changes", func(t *testing.T) {
		s := NewState(Seed(sequentialIDs()))
		s, err := r.Apply(s, SelectFriend{ID: "f2"})
		require.NoError(t, err)
		s, err = r.Apply(s, SplitBill{PayerIsUser: true, Bill: dec("10"), UserExpense: dec("4")})
		require.NoError(t, err)

		assert.True(t, s.Friends[0].Balance.Equal(dec("-7")))
		assert.True(t, s.Friends[1].Balance.Equal(dec("26")))
		assert.True(t, s.Friends[2].Balance.IsZero())
	})

	t.Run("no selection is a no-op", func(t *testing.T) {
		before := clarkOnly()
		after, err := r.Apply(before, SplitBill{PayerIsUser: true, Bill: dec("50"), UserExpense: dec("20")})
		require.ErrorIs(t, err, ErrNoSelection)
		assert.Equal(t, before, after)
	})

	tests := []struct {
		name  string
		split SplitBill
		field string
	}{
		{name: "zero bill", split: SplitBill{PayerIsUser: true, UserExpense: dec("20")}, field: "bill"},
		{name: "zero user expense", split: SplitBill{PayerIsUser: true, Bill: dec("50")}, field: "user_expense"},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			before := selectedClark(t)
			after, err := r.Apply(before, tt.split)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.True(t, IsValidation(err))
			assert.Equal(t, before, after, "selection and balance stay as they were")
		})
	}

	t.Run("does not mutate the input state", func(t *testing.T) {
		before := selectedClark(t)
		_, err := r.Apply(before, SplitBill{PayerIsUser: true, Bill: dec("50"), UserExpense: dec("20")})
		require.NoError(t, err)
		assert.True(t, before.Friends[0].Balance.Equal(dec("-7")))
		assert.Equal(t, "clark", before.SelectedID)
	})
}

func TestFriendExpense(t *testing.T) {
	assert.True(t, FriendExpense(dec("50"), dec("20")).Equal(dec("30")))
	assert.True(t, SplitBill{PayerIsUser: false, Bill: dec("50"), UserExpense: dec("20")}.Delta().Equal(dec("-20")))
}

type bogusAction struct{}

func (bogusAction) Kind() string { return "bogus" }

func TestApplyUnknownAction(t *testing.T) {
	before := clarkOnly()
	after, err := NewReducer(nil).Apply(before, bogusAction{})
	require.ErrorIs(t, err, ErrUnknownAction)
	assert.Equal(t, before, after)
}

func TestNilGeneratorFallsBackToUUID(t *testing.T) {
	s, err := NewReducer(nil).Apply(NewState(nil), AddFriend{Name: "Zoe", Image: models.DefaultAvatarURL})
	require.NoError(t, err)
	assert.Len(t, s.Friends[0].ID, 36)
}
