package session_test

import (
	"testing"

	"go-tour-booking/internal/catalog"
	"go-tour-booking/internal/model"
	"go-tour-booking/internal/session"
	apperrors "go-tour-booking/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Run("Success - create and get", func(t *testing.T) {
		store := session.NewStore()
		d := model.OrderDraft{DraftID: uuid.New()}

		store.Create(d)
		sess, err := store.Get(d.DraftID)

		require.NoError(t, err)
		got, _ := sess.Snapshot()
		assert.Equal(t, d.DraftID, got.DraftID)
	})

	t.Run("Failed - unknown draft", func(t *testing.T) {
		store := session.NewStore()

		_, err := store.Get(uuid.New())

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrDraftNotFound)
	})

	t.Run("Success - delete discards the session", func(t *testing.T) {
		store := session.NewStore()
		d := model.OrderDraft{DraftID: uuid.New()}
		store.Create(d)

		store.Delete(d.DraftID)
		_, err := store.Get(d.DraftID)

		assert.ErrorIs(t, err, apperrors.ErrDraftNotFound)
	})
}

func TestSessionCatalogLoad(t *testing.T) {
	t.Run("Success - current generation installs the index", func(t *testing.T) {
		store := session.NewStore()
		sess := store.Create(model.OrderDraft{DraftID: uuid.New()})

		gen := sess.BeginCatalogLoad()
		ok := sess.CompleteCatalogLoad(gen, catalog.NewIndex(7, nil))

		assert.True(t, ok)
		_, ix := sess.Snapshot()
		assert.NotNil(t, ix)
	})

	t.Run("Success - superseded load is discarded", func(t *testing.T) {
		store := session.NewStore()
		sess := store.Create(model.OrderDraft{DraftID: uuid.New()})

		gen1 := sess.BeginCatalogLoad()
		gen2 := sess.BeginCatalogLoad()

		ok := sess.CompleteCatalogLoad(gen1, catalog.NewIndex(7, nil))
		assert.False(t, ok, "stale response for a superseded tour must be discarded")

		_, ix := sess.Snapshot()
		assert.Nil(t, ix)

		ok = sess.CompleteCatalogLoad(gen2, catalog.NewIndex(8, nil))
		assert.True(t, ok)
	})

	t.Run("Success - failed load leaves draft lines untouched", func(t *testing.T) {
		store := session.NewStore()
		tourID := 7
		d := model.OrderDraft{
			DraftID: uuid.New(),
			TourID:  &tourID,
			Lines:   []model.LineItem{{LineID: uuid.New(), Quantity: 1}},
		}
		sess := store.Create(d)

		// a load that never completes must not affect the draft itself
		sess.BeginCatalogLoad()

		got, ix := sess.Snapshot()
		assert.Nil(t, ix)
		assert.Len(t, got.Lines, 1)
	})
}
