package planets

import (
	"github.com/weegigs/wee-state-go/ws"
)

const LoadingAction = ws.ActionKind("planets:loading")

type Loading struct{}

func (Loading) ActionKind() ws.ActionKind {
	return LoadingAction
}

const LoadedAction = ws.ActionKind("planets:loaded")

type Loaded struct {
	Planets []Planet `json:"planets"`
	HasNext bool     `json:"hasNext"`
}

func (Loaded) ActionKind() ws.ActionKind {
	return LoadedAction
}

const NextPageAction = ws.ActionKind("planets:next-page")

type NextPage struct{}

func (NextPage) ActionKind() ws.ActionKind {
	return NextPageAction
}
