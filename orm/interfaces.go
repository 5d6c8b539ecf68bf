package orm

import (
	"github.com/driphq/drip"
)

// Keyed is anything that can identify itself
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// CloneableData is an intelligent Value that can be embedded
// in a concrete Object to handle the data.
// It maintains a copy and knows how to serialize and validate itself.
type CloneableData interface {
	Copy() CloneableData
	Validate() error
	drip.Persistent
}

// Object is what is stored in the bucket.
// Key is joined with the bucket prefix to set the full key.
// Value is the data stored.
type Object interface {
	Keyed
	Validate() error
	Value() CloneableData
}

// Cloneable is an object that can be cloned into an empty copy
// ready to unmarshal stored data. It is used as a prototype
// inside a Bucket.
type Cloneable interface {
	Clone() Object
}

// Reader defines an interface that allows reading objects from the db
type Reader interface {
	Get(db drip.ReadOnlyKVStore, key []byte) (Object, error)
}
