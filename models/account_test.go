package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAccountSecretsNeverSerialize(t *testing.T) {
	a := Account{
		Name:         "prod-vpn",
		Type:         "vpn",
		Username:     "svc-user",
		Password:     "hunter2-plaintext",
		APIKey:       "ak-12345-secret",
		AccessToken:  "at-abcde-secret",
		RefreshToken: "rt-fghij-secret",
	}

	out, err := json.Marshal(a)
	require.NoError(t, err)
	s := string(out)

	assert.NotContains(t, s, "hunter2-plaintext")
	assert.NotContains(t, s, "ak-12345-secret")
	assert.NotContains(t, s, "at-abcde-secret")
	assert.NotContains(t, s, "rt-fghij-secret")
	assert.Contains(t, s, "svc-user")
}

func TestAccountNormalize(t *testing.T) {
	a := Account{Name: "x", Type: "cloud", Username: "u"}
	a.Normalize()
	assert.Equal(t, AssignmentStatusAvailable, a.AssignmentStatus)
	assert.Equal(t, AccountStatusActive, a.Status)

	id := primitive.NewObjectID()
	a.AssignedTo = &id
	a.Normalize()
	assert.Equal(t, AssignmentStatusAssigned, a.AssignmentStatus)

	a.AssignedTo = nil
	a.Normalize()
	assert.Equal(t, AssignmentStatusAvailable, a.AssignmentStatus)
}

func TestAccountValidate(t *testing.T) {
	a := Account{Type: "cloud", Username: "u"}
	assert.Error(t, a.Validate())

	a = Account{Name: "x", Type: "cloud", Username: "u", Status: "archived"}
	assert.Error(t, a.Validate())

	a = Account{Name: "x", Type: "cloud", Username: "u", SecurityLevel: "extreme"}
	assert.Error(t, a.Validate())

	a = Account{Name: "x", Type: "cloud", Username: "u", SecurityLevel: SecurityLevelHigh}
	assert.NoError(t, a.Validate())
}
