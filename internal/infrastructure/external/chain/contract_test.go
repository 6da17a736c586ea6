package chain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowedContract(t *testing.T) {
	assert.True(t, IsAllowedContract(AllowListedContract))
	assert.True(t, IsAllowedContract(strings.ToUpper(AllowListedContract)), "matching is case-insensitive")
	assert.True(t, IsAllowedContract("  "+AllowListedContract+"  "))

	assert.False(t, IsAllowedContract("0x1234567890123456789012345678901234567890"))
	assert.False(t, IsAllowedContract(""))
}

func TestDeniedAddressNeverAllowed(t *testing.T) {
	assert.True(t, IsDeniedAddress("0x0000000000000000000000000000000000000000"))
	assert.True(t, IsDeniedAddress("0x000000000000000000000000000000000000DEAD"))
	assert.False(t, IsDeniedAddress(AllowListedContract))

	// Deny-list wins even against an otherwise plausible contract string.
	assert.False(t, IsAllowedContract("0x0000000000000000000000000000000000000000"))
}
