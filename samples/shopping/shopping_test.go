package shopping

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/weegigs/wee-state-go/ws"
)

func addsProduct(t *testing.T) {
	store := NewListStore([]string{"cumin", "curry", "poivre"})

	err := store.Dispatch(context.TODO(), AddProduct{Product: "sel"})

	assert.Nil(t, err)
	assert.Equal(t, []string{"cumin", "curry", "poivre", "sel"}, store.State().Products)
}

func removesProduct(t *testing.T) {
	store := NewListStore([]string{"cumin", "curry", "poivre"})

	if !assert.Nil(t, store.Dispatch(context.TODO(), AddProduct{Product: "sel"})) {
		return
	}

	err := store.Dispatch(context.TODO(), RemoveProduct{Product: "curry"})

	assert.Nil(t, err)
	assert.Equal(t, []string{"cumin", "poivre", "sel"}, store.State().Products)
}

func ignoresAbsentProduct(t *testing.T) {
	store := NewListStore([]string{"cumin", "curry", "poivre"})

	err := store.Dispatch(context.TODO(), RemoveProduct{Product: "safran"})

	assert.Nil(t, err)
	assert.Equal(t, []string{"cumin", "curry", "poivre"}, store.State().Products)
}

func failsOnUnknownAction(t *testing.T) {
	store := NewListStore([]string{"cumin", "curry", "poivre"})

	payload, err := ws.MarshalToData(map[string]string{})
	if !assert.Nil(t, err) {
		return
	}

	err = store.Dispatch(context.TODO(), ws.RemoteAction{Kind: "shopping:clear", Payload: payload})

	var unsupported ws.UnsupportedActionError
	assert.True(t, errors.As(err, &unsupported))
	assert.Equal(t, ws.ActionKind("shopping:clear"), unsupported.Kind)
	assert.Equal(t, []string{"cumin", "curry", "poivre"}, store.State().Products)
}

func leavesPreviousStateUntouched(t *testing.T) {
	store := NewListStore([]string{"cumin"})

	before := store.State()

	if !assert.Nil(t, store.Dispatch(context.TODO(), AddProduct{Product: "sel"})) {
		return
	}

	assert.Equal(t, []string{"cumin"}, before.Products)
	assert.Equal(t, []string{"cumin", "sel"}, store.State().Products)
}

func TestShoppingList(t *testing.T) {
	t.Run("adds a product", addsProduct)
	t.Run("removes a product", removesProduct)
	t.Run("ignores an absent product", ignoresAbsentProduct)
	t.Run("fails on an unknown action", failsOnUnknownAction)
	t.Run("leaves previous state untouched", leavesPreviousStateUntouched)
}
