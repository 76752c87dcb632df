package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

func TestStructMerge(t *testing.T) {
	t.Run("copies non-zero fields", func(t *testing.T) {
		dest := profile{Name: "Lois", Email: "lois@example.com", Age: 34}

		err := Struct(&dest, &profile{Email: "lois@example.org"})

		assert.Nil(t, err)
		assert.Equal(t, profile{Name: "Lois", Email: "lois@example.org", Age: 34}, dest)
	})

	t.Run("empty partial changes nothing", func(t *testing.T) {
		dest := profile{Name: "Lois", Age: 34}
		before := dest

		err := Struct(&dest, &profile{})

		assert.Nil(t, err)
		assert.Equal(t, before, dest)
	})

	t.Run("rejects mismatched types", func(t *testing.T) {
		dest := profile{}
		err := Struct(&dest, &struct{ Name string }{Name: "Marcel"})
		assert.NotNil(t, err)
	})

	t.Run("rejects non-pointer destination", func(t *testing.T) {
		err := Struct(profile{}, &profile{})
		assert.NotNil(t, err)
	})
}

func TestMapMerge(t *testing.T) {
	t.Run("matches field names", func(t *testing.T) {
		dest := profile{Name: "Lois"}

		err := Map(&dest, map[string]interface{}{"Age": 35})

		assert.Nil(t, err)
		assert.Equal(t, 35, dest.Age)
	})

	t.Run("matches json tags", func(t *testing.T) {
		dest := profile{Name: "Lois"}

		err := Map(&dest, map[string]interface{}{"email": "lois@example.org"})

		assert.Nil(t, err)
		assert.Equal(t, "lois@example.org", dest.Email)
	})

	t.Run("converts compatible values", func(t *testing.T) {
		dest := profile{}

		err := Map(&dest, map[string]interface{}{"age": float64(35)})

		assert.Nil(t, err)
		assert.Equal(t, 35, dest.Age)
	})

	t.Run("clears with nil", func(t *testing.T) {
		dest := profile{Email: "lois@example.com"}

		err := Map(&dest, map[string]interface{}{"email": nil})

		assert.Nil(t, err)
		assert.Equal(t, "", dest.Email)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		dest := profile{}
		err := Map(&dest, map[string]interface{}{"missing": 1})
		assert.NotNil(t, err)
	})
}
