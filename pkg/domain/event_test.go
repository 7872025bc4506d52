package domain_test

import (
	"testing"

	"github.com/aretw0/tally/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseButton(t *testing.T) {
	cases := []struct {
		label string
		want  domain.Event
	}{
		{"7", domain.Digit("7")},
		{"0", domain.Digit("0")},
		{".", domain.Decimal()},
		{",", domain.Decimal()},
		{"+", domain.Op(domain.OpAdd)},
		{"*", domain.Op(domain.OpMultiply)},
		{"/", domain.Op(domain.OpDivide)},
		{"=", domain.Equals()},
		{"C", domain.Clear()},
		{"AC", domain.Clear()},
		{"±", domain.SignChange()},
		{"+/-", domain.SignChange()},
		{"%", domain.Percent()},
	}

	for _, tc := range cases {
		got, err := domain.ParseButton(tc.label)
		require.NoError(t, err, "label %q", tc.label)
		assert.Equal(t, tc.want, got, "label %q", tc.label)
	}
}

func TestParseButton_Unknown(t *testing.T) {
	_, err := domain.ParseButton("sqrt")
	assert.ErrorIs(t, err, domain.ErrUnknownButton)
}

func TestEventLabel(t *testing.T) {
	assert.Equal(t, "5", domain.Digit("5").Label())
	assert.Equal(t, "×", domain.Op(domain.OpMultiply).Label())
	assert.Equal(t, "=", domain.Equals().Label())
	assert.Equal(t, "±", domain.SignChange().Label())
}

func TestStateLifecycle(t *testing.T) {
	s := domain.NewState()
	assert.Equal(t, "0", s.Display)
	assert.Empty(t, s.Pending)
	assert.True(t, s.AwaitingEntry)

	s.Display = "12.5"
	s.Pending = domain.OpAdd
	s.AwaitingEntry = false

	v, err := s.Value()
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)

	clone := s.Clone()
	clone.Display = "99"
	assert.Equal(t, "12.5", s.Display, "clone must be independent")

	s.Reset()
	assert.Equal(t, "0", s.Display)
	assert.Empty(t, s.Pending)
	assert.True(t, s.AwaitingEntry)
}
