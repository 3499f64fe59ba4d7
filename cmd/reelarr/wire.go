//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
)

func initializeApp() (*App, func(), error) {
	wire.Build(providerSet)
	return nil, nil, nil
}
