package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	encoded, err := svc.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	assert.True(t, svc.Verify("correct horse battery staple", encoded))
	assert.False(t, svc.Verify("wrong password", encoded))
}

func TestPasswordHashIsSalted(t *testing.T) {
	svc := NewPasswordService()

	a, err := svc.Hash("same password")
	require.NoError(t, err)
	b, err := svc.Hash("same password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	assert.True(t, svc.Verify("same password", a))
	assert.True(t, svc.Verify("same password", b))
}

func TestPasswordVerifyRejectsGarbage(t *testing.T) {
	svc := NewPasswordService()

	assert.False(t, svc.Verify("anything", ""))
	assert.False(t, svc.Verify("anything", "plaintext-stored-password"))
	assert.False(t, svc.Verify("anything", "$argon2id$v=19$m=65536,t=3,p=1$notbase64!!$nope"))
}

func TestPasswordEmptyRejected(t *testing.T) {
	_, err := NewPasswordService().Hash("")
	assert.Error(t, err)
}
