package pointer

import (
	"testing"

	"github.com/shoenig/test/must"
)

func Test_Of(t *testing.T) {
	s := "hello"
	sPtr := Of(s)

	must.Eq(t, s, *sPtr)

	b := "bye"
	sPtr = &b
	must.NotEq(t, s, *sPtr)
}

func Test_Copy(t *testing.T) {
	orig := Of(42)
	dup := Copy(orig)

	must.Eq(t, *orig, *dup)
	must.True(t, orig != dup)

	var nilPtr *int
	must.Nil(t, Copy(nilPtr))
}

func Test_Eq(t *testing.T) {
	must.True(t, Eq(Of(1), Of(1)))
	must.False(t, Eq(Of(1), Of(2)))
	must.False(t, Eq(Of(1), nil))

	var a, b *int
	must.True(t, Eq(a, b))
}
