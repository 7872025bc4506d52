package cli_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/tally/internal/cli"
	"github.com/aretw0/tally/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEval(t *testing.T) {
	var out bytes.Buffer
	err := cli.RunEval(&out, "5 + 3 =", false)
	require.NoError(t, err)
	assert.Equal(t, "8\n", out.String())
}

func TestRunEval_CompactTokens(t *testing.T) {
	var out bytes.Buffer
	err := cli.RunEval(&out, "50 %", false)
	require.NoError(t, err)
	assert.Equal(t, "0.5\n", out.String())
}

func TestRunEval_DivisionByZero(t *testing.T) {
	var out bytes.Buffer
	err := cli.RunEval(&out, "6 / 0 =", false)
	assert.ErrorIs(t, err, domain.ErrDivisionByZero)
}

func TestRunEval_UnknownToken(t *testing.T) {
	var out bytes.Buffer
	err := cli.RunEval(&out, "5 sqrt", false)
	assert.ErrorIs(t, err, domain.ErrUnknownButton)
}
