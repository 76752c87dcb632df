package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type TestProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

func replacesWithValue(t *testing.T) {
	state := TestProfile{Name: "Lois", Email: "lois@example.com"}

	err := Replace[TestProfile]().Reduce(&state, TestProfile{Name: "Marcel"})

	assert.Nil(t, err)
	assert.Equal(t, TestProfile{Name: "Marcel"}, state)
}

func replacesWithRemoteValue(t *testing.T) {
	state := TestProfile{Name: "Lois"}

	payload, err := MarshalToData(TestProfile{Name: "Marcel", Age: 40})
	if !assert.Nil(t, err) {
		return
	}

	err = Replace[TestProfile]().Reduce(&state, RemoteAction{Kind: "test:replace", Payload: payload})

	assert.Nil(t, err)
	assert.Equal(t, TestProfile{Name: "Marcel", Age: 40}, state)
}

func replaceRejectsForeignValue(t *testing.T) {
	state := TestProfile{Name: "Lois"}

	err := Replace[TestProfile]().Reduce(&state, 42)

	assert.NotNil(t, err)
	assert.Equal(t, TestProfile{Name: "Lois"}, state)
}

func mergesPartialValue(t *testing.T) {
	state := TestProfile{Name: "Lois", Email: "lois@example.com", Age: 34}

	err := Merge[TestProfile]().Reduce(&state, TestProfile{Email: "lois@example.org"})

	assert.Nil(t, err)
	assert.Equal(t, TestProfile{Name: "Lois", Email: "lois@example.org", Age: 34}, state)
}

func mergesNamedFields(t *testing.T) {
	state := TestProfile{Name: "Lois", Age: 34}

	err := Merge[TestProfile]().Reduce(&state, map[string]any{"email": "lois@example.org"})

	assert.Nil(t, err)
	assert.Equal(t, TestProfile{Name: "Lois", Email: "lois@example.org", Age: 34}, state)
}

func mergeWithEmptyPartialIsNoop(t *testing.T) {
	state := TestProfile{Name: "Lois", Email: "lois@example.com", Age: 34}
	before := state

	assert.Nil(t, Merge[TestProfile]().Reduce(&state, TestProfile{}))
	assert.Equal(t, before, state)

	assert.Nil(t, Merge[TestProfile]().Reduce(&state, map[string]any{}))
	assert.Equal(t, before, state)
}

func TestVariants(t *testing.T) {
	t.Run("replaces with value", replacesWithValue)
	t.Run("replaces with remote value", replacesWithRemoteValue)
	t.Run("replace rejects foreign value", replaceRejectsForeignValue)
	t.Run("merges partial value", mergesPartialValue)
	t.Run("merges named fields", mergesNamedFields)
	t.Run("merge with empty partial is a noop", mergeWithEmptyPartialIsNoop)
}
