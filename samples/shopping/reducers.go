package shopping

import (
	"github.com/weegigs/wee-state-go/ws"
)

func added() ws.Reducer[List] {
	var reducer ws.ReducerFunction[List, AddProduct] = func(list *List, added *AddProduct) error {
		products := make([]string, 0, len(list.Products)+1)
		products = append(products, list.Products...)
		products = append(products, added.Product)

		list.Products = products
		return nil
	}

	return reducer
}

// Removing a product that is not on the list leaves it unchanged.
func removed() ws.Reducer[List] {
	var reducer ws.ReducerFunction[List, RemoveProduct] = func(list *List, removed *RemoveProduct) error {
		products := make([]string, 0, len(list.Products))
		for _, product := range list.Products {
			if product != removed.Product {
				products = append(products, product)
			}
		}

		list.Products = products
		return nil
	}

	return reducer
}

func NewReducer() ws.Reducers[List] {
	return ws.Reducers[List]{
		AddProductAction:    added(),
		RemoveProductAction: removed(),
	}
}

func NewListStore(initial []string, options ...ws.StoreOption[List]) *ws.Store[List] {
	return ws.New(NewReducer(), List{Products: initial}, options...)
}
