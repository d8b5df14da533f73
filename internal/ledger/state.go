// Package ledger implements the balance ledger shared between the user and
// their friends.
//
// State is a plain value. Every user action is applied by Reducer.Apply,
// which returns a new State and never mutates its input, so callers can
// keep the previous state, compare, or discard the result freely.
//
// Transitions are all-or-nothing: when Apply returns an error the state is
// returned unchanged.
package ledger

import (
	"fmt"
	"slices"

	"github.com/mmynk/splitfriends/internal/models"
)

// State is the complete ledger state of one session.
type State struct {
	// Friends in insertion order. Entries are never removed.
	Friends []models.Friend

	// SelectedID is the id of the friend targeted by the next split,
	// or empty when nothing is selected.
	SelectedID string

	// AddFormVisible controls whether the add-friend form is shown.
	AddFormVisible bool

	// Form holds the add-friend form draft. EditAddForm replaces it and a
	// successful AddFriend resets it.
	Form models.AddFriendForm
}

// NewState returns a state holding the given friends, nothing selected and
// the add-friend form hidden with its initial values.
func NewState(friends []models.Friend) State {
	return State{
		Friends: slices.Clone(friends),
		Form:    models.NewAddFriendForm(),
	}
}

// Friend returns the friend with the given id.
func (s State) Friend(id string) (models.Friend, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Friend{}, false
	}
	return s.Friends[i], true
}

// Selected returns the selected friend, if any.
func (s State) Selected() (models.Friend, bool) {
	if s.SelectedID == "" {
		return models.Friend{}, false
	}
	return s.Friend(s.SelectedID)
}

// IsSelected reports whether the friend with the given id is selected.
func (s State) IsSelected(id string) bool {
	return s.SelectedID != "" && s.SelectedID == id
}

func (s State) indexOf(id string) int {
	return slices.IndexFunc(s.Friends, func(f models.Friend) bool { return f.ID == id })
}

// Reducer applies actions to ledger states.
type Reducer struct {
	// NextID generates ids for new friends. UUIDGenerator is used when nil.
	NextID IDGenerator
}

// NewReducer creates a Reducer with the given id generator.
func NewReducer(next IDGenerator) *Reducer {
	return &Reducer{NextID: next}
}

// Apply returns the state that results from applying a to s.
// On error, s is returned unchanged.
func (r *Reducer) Apply(s State, a Action) (State, error) {
	var (
		next State
		err  error
	)
	switch a := a.(type) {
	case AddFriend:
		next, err = r.addFriend(s, a)
	case ToggleAddForm:
		next, err = toggleAddForm(s), nil
	case EditAddForm:
		next, err = editAddForm(s, a), nil
	case SelectFriend:
		next, err = selectFriend(s, a)
	case SplitBill:
		next, err = splitBill(s, a)
	default:
		err = fmt.Errorf("%w: %T", ErrUnknownAction, a)
	}
	if err != nil {
		return s, err
	}
	return next, nil
}

func (r *Reducer) nextID() string {
	if r.NextID == nil {
		return UUIDGenerator()
	}
	return r.NextID()
}

func (r *Reducer) addFriend(s State, a AddFriend) (State, error) {
	if a.Name == "" {
		return s, required("name")
	}
	if a.Image == "" {
		return s, required("image")
	}

	id := r.nextID()
	if id == "" || s.indexOf(id) >= 0 {
		return s, fmt.Errorf("%w: %q", ErrDuplicateFriend, id)
	}

	friends := make([]models.Friend, len(s.Friends), len(s.Friends)+1)
	copy(friends, s.Friends)
	s.Friends = append(friends, models.Friend{
		ID:    id,
		Name:  a.Name,
		Image: fmt.Sprintf("%s?=%s", a.Image, id),
	})
	s.Form = models.NewAddFriendForm()
	return s, nil
}

func toggleAddForm(s State) State {
	s.AddFormVisible = !s.AddFormVisible
	return s
}

func editAddForm(s State, a EditAddForm) State {
	s.Form = models.AddFriendForm{Name: a.Name, Image: a.Image}
	return s
}

func selectFriend(s State, a SelectFriend) (State, error) {
	if s.indexOf(a.ID) < 0 {
		return s, fmt.Errorf("%w: %q", ErrUnknownFriend, a.ID)
	}
	if s.IsSelected(a.ID) {
		s.SelectedID = ""
	} else {
		s.SelectedID = a.ID
	}
	s.AddFormVisible = false
	return s, nil
}

func splitBill(s State, a SplitBill) (State, error) {
	i := -1
	if s.SelectedID != "" {
		i = s.indexOf(s.SelectedID)
	}
	if i < 0 {
		return s, ErrNoSelection
	}
	if a.Bill.IsZero() {
		return s, required("bill")
	}
	if a.UserExpense.IsZero() {
		return s, required("user_expense")
	}

	friends := slices.Clone(s.Friends)
	friends[i].Balance = friends[i].Balance.Add(a.Delta())
	s.Friends = friends
	s.SelectedID = ""
	return s, nil
}
