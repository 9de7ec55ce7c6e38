package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oak-village-be/internal/repository/localstore"
)

func newGuestbookFixture(t *testing.T) IGuestbookService {
	t.Helper()
	repo, err := localstore.NewGuestbookRepository(filepath.Join(t.TempDir(), "guestbook.snapshot"))
	require.NoError(t, err)
	return NewGuestbookService(repo)
}

func TestGuestbookSign(t *testing.T) {
	svc := newGuestbookFixture(t)

	resp, err := svc.Sign(context.Background(), "  Mira  ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Mira"}, resp.Signatures)

	resp, err = svc.Sign(context.Background(), "Theo")
	require.NoError(t, err)
	assert.Equal(t, []string{"Mira", "Theo"}, resp.Signatures)
}

func TestGuestbookSignEmptyName(t *testing.T) {
	svc := newGuestbookFixture(t)

	_, err := svc.Sign(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptySignature)

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.Signatures)
}
