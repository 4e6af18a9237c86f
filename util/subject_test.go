package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warden-authz/warden/util"
)

func TestNormalizeSubject(t *testing.T) {
	assert.Equal(t, "foo@bar.com", util.NormalizeSubject("Foo@Bar.com"))
	assert.Equal(t, "foo@bar.com", util.NormalizeSubject("  FOO@BAR.COM  "))
	assert.Equal(t, "foo@bar.com", util.NormalizeSubject("foo@bar.com"))
}

func TestSubjectHashCaseInsensitive(t *testing.T) {
	a := util.SubjectHash("Foo@Bar.com")
	b := util.SubjectHash("foo@BAR.com")
	c := util.SubjectHash("someone@else.com")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
