package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type target struct {
	size  int
	label string
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		tg := &target{}
		err := Apply(tg,
			NoError(func(x *target) { x.size = 1 }),
			NoError(func(x *target) { x.size *= 8 }),
			New(func(x *target) error { x.label = "ok"; return nil }),
		)

		require.NoError(t, err)
		require.Equal(t, 8, tg.size)
		require.Equal(t, "ok", tg.label)
	})

	t.Run("stops at first error", func(t *testing.T) {
		boom := errors.New("boom")
		tg := &target{}
		err := Apply(tg,
			New(func(*target) error { return boom }),
			NoError(func(x *target) { x.size = 42 }),
		)

		require.ErrorIs(t, err, boom)
		require.Zero(t, tg.size)
	})

	t.Run("skips nil options", func(t *testing.T) {
		tg := &target{}
		var nilOpt Option[*target]
		require.NoError(t, Apply(tg, nilOpt, NoError(func(x *target) { x.size = 3 })))
		require.Equal(t, 3, tg.size)
	})
}
