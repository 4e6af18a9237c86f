package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warden-authz/warden/model"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    model.Level
		wantErr bool
	}{
		{"user", model.LevelUser, false},
		{"GROUP", model.LevelGroup, false},
		{" organization ", model.LevelOrganization, false},
		{"tenant", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := model.ParseLevel(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
		} else {
			assert.NoError(t, err, "input %q", tc.in)
			assert.Equal(t, tc.want, got)
		}
	}
}

func TestLevelValid(t *testing.T) {
	assert.True(t, model.LevelUser.Valid())
	assert.True(t, model.LevelGroup.Valid())
	assert.True(t, model.LevelOrganization.Valid())
	assert.False(t, model.Level("root").Valid())
}

func TestMatchesObject(t *testing.T) {
	exact := model.Policy{Level: model.LevelGroup, Object: "group1"}
	assert.True(t, exact.MatchesObject("group1"))
	assert.False(t, exact.MatchesObject("group2"))

	wildcard := model.Policy{Level: model.LevelGroup, Object: model.ObjectWildcard}
	assert.True(t, wildcard.MatchesObject("group1"))
	assert.True(t, wildcard.MatchesObject("anything"))
}
