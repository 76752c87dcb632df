package ws

import (
	"errors"
	"strings"
)

type StoreId struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

type EncodedStoreId string

func (id StoreId) Encode() EncodedStoreId {
	return EncodedStoreId(strings.Join([]string{id.Type, id.Key}, "."))
}

func (id EncodedStoreId) String() string {
	return string(id)
}

func (id EncodedStoreId) Decode() (*StoreId, error) {
	separated := strings.Split(string(id), ".")
	if len(separated) < 2 {
		return nil, errors.New("expected . delimiter in store id")
	}

	return &StoreId{
		Type: separated[0],
		Key:  strings.Join(separated[1:], "."),
	}, nil
}
