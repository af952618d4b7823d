package validate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupRules() []*Chain {
	return []*Chain{
		Field("email").Required().Email().NormalizeEmail().WithMessage("Please enter a valid email."),
		Field("password").MinLength(8).WithMessage("Password has to be atleast 8 alphanumeric characters"),
	}
}

func TestCheck_Valid(t *testing.T) {
	body := map[string]interface{}{
		"email":    "  John.Doe@Example.COM ",
		"password": "abcdefgh",
	}

	require.NoError(t, Check(body, signupRules()...))
	assert.Equal(t, "john.doe@example.com", body["email"])
}

func TestCheck_CollectsAllViolations(t *testing.T) {
	body := map[string]interface{}{
		"email":    "not-an-email",
		"password": "short",
	}

	err := Check(body, signupRules()...)
	require.Error(t, err)
	assert.Len(t, err.Errors(), 2)

	first, ok := First(err)
	require.True(t, ok)
	assert.Equal(t, "email", first.Field)
	assert.Equal(t, "Please enter a valid email.", first.Message)
}

func TestCheck_MissingField(t *testing.T) {
	err := Check(map[string]interface{}{"password": "abcdefgh"}, signupRules()...)
	require.Error(t, err)

	first, ok := First(err)
	require.True(t, ok)
	assert.Equal(t, "Please enter a valid email.", first.Message)
}

func TestCheck_TrimThenNotEmpty(t *testing.T) {
	body := map[string]interface{}{"owner": "   "}

	err := Check(body, Field("owner").Trim().NotEmpty())
	require.Error(t, err)
	first, _ := First(err)
	assert.Equal(t, "owner must not be empty.", first.Message)

	body = map[string]interface{}{"owner": "  acme "}
	require.NoError(t, Check(body, Field("owner").Trim().NotEmpty()))
	assert.Equal(t, "acme", body["owner"])
}

func TestCheck_Numeric(t *testing.T) {
	rule := func() *Chain { return Field("createdAt").Trim().Numeric() }

	assert.NoError(t, Check(map[string]interface{}{"createdAt": json.Number("1700000000000")}, rule()))
	assert.NoError(t, Check(map[string]interface{}{"createdAt": " 12.5 "}, rule()))
	assert.NoError(t, Check(map[string]interface{}{"createdAt": float64(3)}, rule()))
	assert.Error(t, Check(map[string]interface{}{"createdAt": "yesterday"}, rule()))
	assert.Error(t, Check(map[string]interface{}{}, rule()))
}

func TestCheck_Optional(t *testing.T) {
	rule := func() *Chain { return Field("archive").Optional().Numeric() }

	assert.NoError(t, Check(map[string]interface{}{}, rule()))
	assert.NoError(t, Check(map[string]interface{}{"archive": nil}, rule()))
	assert.Error(t, Check(map[string]interface{}{"archive": "abc"}, rule()))
}

func TestCheck_Object(t *testing.T) {
	rule := func() *Chain { return Field("latlng").Optional().Object() }

	assert.NoError(t, Check(map[string]interface{}{"latlng": map[string]interface{}{"latitude": 1}}, rule()))
	assert.Error(t, Check(map[string]interface{}{"latlng": "10,20"}, rule()))
}

func TestCheck_MinLengthCountsRunes(t *testing.T) {
	rule := Field("password").MinLength(3)
	assert.NoError(t, Check(map[string]interface{}{"password": "äöü"}, rule))
	assert.Error(t, Check(map[string]interface{}{"password": nil}, Field("password").MinLength(3)))
}

func TestCheck_EmailRejectsDisplayName(t *testing.T) {
	err := Check(map[string]interface{}{"email": "John <john@example.com>"}, Field("email").Email())
	assert.Error(t, err)
}

func TestFirst_NoViolation(t *testing.T) {
	_, ok := First(nil)
	assert.False(t, ok)
}
