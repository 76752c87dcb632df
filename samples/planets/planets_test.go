package planets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/weegigs/wee-state-go/stores/memory"
	"github.com/weegigs/wee-state-go/ws"
)

func startsEmpty(t *testing.T) {
	store := NewCatalogueStore()

	state := store.State()
	assert.Empty(t, state.Planets)
	assert.False(t, state.Loading)
	assert.Equal(t, 1, state.Page)
	assert.True(t, state.HasNext)
}

func marksLoading(t *testing.T) {
	store := NewCatalogueStore()

	err := store.Dispatch(context.TODO(), Loading{})

	assert.Nil(t, err)

	state := store.State()
	assert.True(t, state.Loading)
	assert.Empty(t, state.Planets)
	assert.Equal(t, 1, state.Page)
	assert.True(t, state.HasNext)
}

func recordsLoadedPage(t *testing.T) {
	store := NewCatalogueStore()
	ctx := context.TODO()

	if !assert.Nil(t, store.Dispatch(ctx, Loading{})) {
		return
	}

	err := store.Dispatch(ctx, Loaded{
		Planets: []Planet{{Name: "Tatooine"}, {Name: "Alderaan"}},
		HasNext: false,
	})

	assert.Nil(t, err)

	state := store.State()
	assert.False(t, state.Loading)
	assert.Equal(t, []Planet{{Name: "Tatooine"}, {Name: "Alderaan"}}, state.Planets)
	assert.False(t, state.HasNext)
}

func accumulatesPages(t *testing.T) {
	store := NewCatalogueStore()
	ctx := context.TODO()

	if !assert.Nil(t, store.Dispatch(ctx, Loaded{Planets: []Planet{{Name: "Tatooine"}}, HasNext: true})) {
		return
	}

	if !assert.Nil(t, store.Dispatch(ctx, NextPage{})) {
		return
	}

	if !assert.Nil(t, store.Dispatch(ctx, Loaded{Planets: []Planet{{Name: "Alderaan"}}, HasNext: false})) {
		return
	}

	state := store.State()
	assert.Equal(t, 2, state.Page)
	assert.Equal(t, []Planet{{Name: "Tatooine"}, {Name: "Alderaan"}}, state.Planets)
	assert.False(t, state.HasNext)
}

func restoresFromSnapshots(t *testing.T) {
	ctx := context.TODO()

	id := ws.StoreId{Type: "planets", Key: "restores-from-snapshots"}
	snapshots := memory.NewSnapshotStore()

	first, err := NewRestoredStore(ctx, snapshots, id)
	if !assert.Nil(t, err) {
		return
	}

	if !assert.Nil(t, first.Dispatch(ctx, Loaded{Planets: []Planet{{Name: "Tatooine"}}, HasNext: true})) {
		return
	}

	if !assert.Nil(t, first.Dispatch(ctx, NextPage{})) {
		return
	}

	second, err := NewRestoredStore(ctx, snapshots, id)
	if !assert.Nil(t, err) {
		return
	}

	state := second.State()
	assert.Equal(t, []Planet{{Name: "Tatooine"}}, state.Planets)
	assert.Equal(t, 2, state.Page)
	assert.True(t, state.HasNext)
}

func TestCatalogue(t *testing.T) {
	t.Run("starts empty", startsEmpty)
	t.Run("marks loading", marksLoading)
	t.Run("records a loaded page", recordsLoadedPage)
	t.Run("accumulates pages", accumulatesPages)
	t.Run("restores from snapshots", restoresFromSnapshots)
}
