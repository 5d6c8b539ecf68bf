package cash

import (
	amino "github.com/tendermint/go-amino"
)

// cdc serializes all models of this package.
var cdc = amino.NewCodec()
