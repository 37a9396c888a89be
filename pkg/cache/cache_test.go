package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryCacheExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1000, 0)
	c := NewMemory()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", entry{Name: "ring", Count: 2}, 10*time.Second))

	var got entry
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, entry{Name: "ring", Count: 2}, got)

	now = now.Add(11 * time.Second)
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrMiss)
}

func TestHelperReadsThrough(t *testing.T) {
	ctx := context.Background()
	h := NewHelper[entry](NewMemory())
	calls := 0
	load := func() (entry, error) {
		calls++
		return entry{Name: "pendant", Count: calls}, nil
	}

	first, err := h.Handle(ctx, "p", time.Minute, load)
	require.NoError(t, err)
	second, err := h.Handle(ctx, "p", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestHelperDoesNotStoreErrors(t *testing.T) {
	ctx := context.Background()
	h := NewHelper[entry](NewMemory())
	boom := errors.New("boom")

	_, err := h.Handle(ctx, "x", time.Minute, func() (entry, error) { return entry{}, boom })
	assert.ErrorIs(t, err, boom)

	got, err := h.Handle(ctx, "x", time.Minute, func() (entry, error) { return entry{Name: "ok"}, nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Name)
}

func TestNilHelperCallsThrough(t *testing.T) {
	var h *Helper[entry]
	got, err := h.Handle(context.Background(), "x", time.Minute, func() (entry, error) { return entry{Count: 7}, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, got.Count)
}
