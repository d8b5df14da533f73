package ledger

import (
	"testing"

	"github.com/mmynk/splitfriends/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		balance string
		want    Standing
	}{
		{"0", Settled},
		{"0.00", Settled},
		{"-5", UserOwes},
		{"5", FriendOwes},
		{"-0.01", UserOwes},
	}
	for _, tt := range tests {
		t.Run(tt.balance, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(dec(tt.balance)))
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		want    string
	}{
		{name: "user owes", balance: "-5", want: "You owe Clark $5.00"},
		{name: "friend owes", balance: "5", want: "Clark owes you $5.00"},
		{name: "settled", balance: "0", want: "You and Clark are even"},
		{name: "owed less than a cent", balance: "0.004", want: "Clark owes you $0.004"},
		{name: "beyond int64 cents", balance: "-100000000000000000", want: "You owe Clark $100,000,000,000,000,000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := models.Friend{ID: "clark", Name: "Clark", Balance: dec(tt.balance)}
			assert.Equal(t, tt.want, Describe(f, "USD"))
		})
	}
}

func TestSeed(t *testing.T) {
	friends := Seed(sequentialIDs())
	assert.Len(t, friends, 3)

	want := map[string]Standing{"Clark": UserOwes, "Sarah": FriendOwes, "Anthony": Settled}
	for _, f := range friends {
		assert.Equal(t, want[f.Name], Classify(f.Balance), f.Name)
		assert.NotEmpty(t, f.ID)
	}
	assert.Equal(t, "You owe Clark $7.00", Describe(friends[0], "USD"))
	assert.Equal(t, "Sarah owes you $20.00", Describe(friends[1], "USD"))
}
