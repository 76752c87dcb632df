package planets

import (
	"github.com/weegigs/wee-state-go/ws"
)

func loading() ws.Reducer[Catalogue] {
	var reducer ws.ReducerFunction[Catalogue, Loading] = func(catalogue *Catalogue, loading *Loading) error {
		catalogue.Loading = true
		return nil
	}

	return reducer
}

func loaded() ws.Reducer[Catalogue] {
	var reducer ws.ReducerFunction[Catalogue, Loaded] = func(catalogue *Catalogue, loaded *Loaded) error {
		planets := make([]Planet, 0, len(catalogue.Planets)+len(loaded.Planets))
		planets = append(planets, catalogue.Planets...)
		planets = append(planets, loaded.Planets...)

		catalogue.Planets = planets
		catalogue.Loading = false
		catalogue.HasNext = loaded.HasNext
		return nil
	}

	return reducer
}

func nextPage() ws.Reducer[Catalogue] {
	var reducer ws.ReducerFunction[Catalogue, NextPage] = func(catalogue *Catalogue, next *NextPage) error {
		catalogue.Page = catalogue.Page + 1
		return nil
	}

	return reducer
}

func NewReducer() ws.Reducers[Catalogue] {
	return ws.Reducers[Catalogue]{
		LoadingAction:  loading(),
		LoadedAction:   loaded(),
		NextPageAction: nextPage(),
	}
}

func NewCatalogueStore(options ...ws.StoreOption[Catalogue]) *ws.Store[Catalogue] {
	return ws.New(NewReducer(), Initial(), options...)
}
