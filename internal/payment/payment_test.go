package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCard() Card {
	return Card{
		Number:     "4242 4242 4242 4242",
		Expiry:     "12/30",
		CVV:        "123",
		HolderName: "Demo User",
	}
}

func TestCardValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Card)
		ok     bool
	}{
		{"valid", func(*Card) {}, true},
		{"short number", func(c *Card) { c.Number = "4242" }, false},
		{"letters in number", func(c *Card) { c.Number = "4242 4242 4242 424a" }, false},
		{"bad expiry format", func(c *Card) { c.Expiry = "1230" }, false},
		{"month 13", func(c *Card) { c.Expiry = "13/30" }, false},
		{"month 00", func(c *Card) { c.Expiry = "00/30" }, false},
		{"short cvv", func(c *Card) { c.CVV = "12" }, false},
		{"empty name", func(c *Card) { c.HolderName = "   " }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			card := validCard()
			tc.mutate(&card)
			err := card.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidCard)
			}
		})
	}
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "4242 4242 4242 4242", FormatCardNumber("4242424242424242"))
	assert.Equal(t, "4242 42", FormatCardNumber("4242-42x"))
	assert.Equal(t, "12/30", FormatExpiry("1230"))
	assert.Equal(t, "12", FormatExpiry("12"))
	assert.Equal(t, "12/30", FormatExpiry("12/30/99"))
}

func TestSimulatorSuccess(t *testing.T) {
	s := NewSimulator(0, 0)
	ref, err := s.Process(context.Background(), 760)
	require.NoError(t, err)
	assert.NotEmpty(t, ref)
}

func TestSimulatorAlwaysDeclines(t *testing.T) {
	s := NewSimulator(0, 1)
	_, err := s.Process(context.Background(), 760)
	assert.ErrorIs(t, err, ErrDeclined)
}

func TestSimulatorZeroAmountDeclined(t *testing.T) {
	s := NewSimulator(0, 0)
	_, err := s.Process(context.Background(), 0)
	assert.ErrorIs(t, err, ErrDeclined)
}

func TestSimulatorHonorsContext(t *testing.T) {
	s := NewSimulator(5*time.Second, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := s.Process(ctx, 100)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
