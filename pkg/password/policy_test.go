package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPolicy(t *testing.T) *Policy {
	t.Helper()
	p, err := NewPolicyFromNames(
		[]string{"minimum_length", "common", "numeric", "user_attribute_similarity"},
		Options{MinLength: 8},
	)
	require.NoError(t, err)
	return p
}

func TestPolicy_AcceptsStrongPassword(t *testing.T) {
	p := defaultPolicy(t)

	msgs := p.Check("Tr0ub4dor&Horse", Attributes{"email": "jane@example.com", "first_name": "Jane"})
	assert.Empty(t, msgs)
}

func TestPolicy_CollectsEveryFailure(t *testing.T) {
	p := defaultPolicy(t)

	msgs := p.Check("1234", nil)
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[0], "too short")
	assert.Equal(t, "This password is too common.", msgs[1])
	assert.Equal(t, "This password is entirely numeric.", msgs[2])
}

func TestPolicy_CommonIsCaseInsensitive(t *testing.T) {
	p := defaultPolicy(t)

	msgs := p.Check("PassWord123", nil)
	assert.Equal(t, []string{"This password is too common."}, msgs)
}

func TestPolicy_UserAttributeSimilarity(t *testing.T) {
	p := defaultPolicy(t)

	msgs := p.Check("johnathan1", Attributes{"first_name": "Johnathan"})
	require.Len(t, msgs, 1)
	assert.Equal(t, "The password is too similar to the first name.", msgs[0])

	msgs = p.Check("janedoe42", Attributes{"email": "janedoe42@example.com"})
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "email")
}

func TestPolicy_CustomCommonList(t *testing.T) {
	p, err := NewPolicyFromNames([]string{"common"}, Options{CommonList: strings.NewReader("# comment\ncorrecthorse\n")})
	require.NoError(t, err)

	assert.NotEmpty(t, p.Check("CorrectHorse", nil))
	assert.Empty(t, p.Check("password", nil))
}

func TestNewPolicyFromNames_Unknown(t *testing.T) {
	_, err := NewPolicyFromNames([]string{"entropy"}, Options{})
	assert.Error(t, err)
}

func TestHashAndMatches(t *testing.T) {
	hash, err := Hash("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, Matches(hash, "s3cret-pass"))
	assert.False(t, Matches(hash, "other"))
}
