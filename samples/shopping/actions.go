package shopping

import (
	"github.com/weegigs/wee-state-go/ws"
)

const AddProductAction = ws.ActionKind("shopping:add-product")

type AddProduct struct {
	Product string `json:"product"`
}

func (AddProduct) ActionKind() ws.ActionKind {
	return AddProductAction
}

const RemoveProductAction = ws.ActionKind("shopping:remove-product")

type RemoveProduct struct {
	Product string `json:"product"`
}

func (RemoveProduct) ActionKind() ws.ActionKind {
	return RemoveProductAction
}
