// Package planets demonstrates a paginated-loader state machine: a
// loading flag, an accumulating result list and a page cursor, driven by
// a closed set of actions.
package planets

type Planet struct {
	Name string `json:"name"`
}

type Catalogue struct {
	Planets []Planet `json:"planets"`
	Loading bool     `json:"loading"`
	Page    int      `json:"page"`
	HasNext bool     `json:"hasNext"`
}

func Initial() Catalogue {
	return Catalogue{
		Planets: nil,
		Loading: false,
		Page:    1,
		HasNext: true,
	}
}
