// Package shopping demonstrates a tagged-action reducer over a simple
// ordered list.
package shopping

type List struct {
	Products []string `json:"products"`
}

func (list *List) Contains(product string) bool {
	for _, p := range list.Products {
		if p == product {
			return true
		}
	}

	return false
}
