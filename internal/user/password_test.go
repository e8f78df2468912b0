package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPassword(t *testing.T) {
	assert.NoError(t, CheckPassword("sekret1234"))
	assert.NoError(t, CheckPassword("1234abcd"))

	assert.ErrorIs(t, CheckPassword("ab1"), ErrPasswordTooShort)
	assert.ErrorIs(t, CheckPassword(""), ErrPasswordTooShort)
	assert.ErrorIs(t, CheckPassword("onlyletters"), ErrPasswordNotAlphanumeric)
	assert.ErrorIs(t, CheckPassword("12345678"), ErrPasswordNotAlphanumeric)
}
