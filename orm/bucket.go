package orm

import (
	"fmt"
	"regexp"

	"github.com/driphq/drip"
	"github.com/driphq/drip/errors"
)

const (
	// SeqID is a constant to use to get a default ID sequence
	SeqID = "id"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a generic holder that stores data as well
// as references to secondary keying structures.
//
// It is a generic building block that should generally
// be embedded in a type-safe wrapper to ensure all data
// is the same type.
type Bucket struct {
	name   string
	prefix []byte
	proto  Cloneable
}

var _ Reader = Bucket{}

// NewBucket creates a bucket to store and retrieve objects that are
// serialized clones of the given prototype.
//
// Bucket name must be a valid bucket name, or this function panics.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the name of the bucket
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including the bucket prefix
func (b Bucket) DBKey(key []byte) []byte {
	// Long story: annoying bug... we can store with one prefix and query
	// with another if we use a shared underlying array.
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get one element
func (b Bucket) Get(db drip.ReadOnlyKVStore, key []byte) (Object, error) {
	dbkey := b.DBKey(key)
	bz, err := db.Get(dbkey)
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Has returns true if an entry is stored under the given key.
func (b Bucket) Has(db drip.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Parse takes a key and value data (weakly typed bytes)
// and will return a fully parsed Object
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrapf(err, "parsing %s content", b.name)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save will write the object, returns error on bad data
func (b Bucket) Save(db drip.KVStore, model Object) error {
	if err := model.Validate(); err != nil {
		return errors.Wrap(err, "invalid object")
	}

	bz, err := model.Value().Marshal()
	if err != nil {
		return err
	}
	return db.Set(b.DBKey(model.Key()), bz)
}

// Delete will remove the value at a key
func (b Bucket) Delete(db drip.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}

// Sequence returns a Sequence by name
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// PrefixScan returns all objects stored under a key starting with given
// prefix, in ascending key order. Pass a nil prefix to walk the whole
// bucket.
func (b Bucket) PrefixScan(db drip.ReadOnlyKVStore, prefix []byte) ([]Object, error) {
	start := b.DBKey(prefix)
	iter, err := db.Iterator(start, prefixRangeEnd(start))
	if err != nil {
		return nil, errors.Wrap(err, "prefix scan")
	}
	defer iter.Close()

	var res []Object
	for iter.Valid() {
		key := append([]byte(nil), iter.Key()[len(b.prefix):]...)
		value := append([]byte(nil), iter.Value()...)
		obj, err := b.Parse(key, value)
		if err != nil {
			return nil, err
		}
		res = append(res, obj)
		if err := iter.Next(); err != nil {
			return nil, errors.Wrap(err, "prefix scan")
		}
	}
	return res, nil
}

// prefixRangeEnd returns the first key that is lexicographically above all
// keys sharing given prefix. It is the exclusive end of a prefix range
// iteration.
func prefixRangeEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	// No upper bound, iterate until the end of the store.
	return nil
}

// Register registers this buckets content to be accessed via queries under
// the given name.
// Two query modes are supported: an empty mod for an exact key lookup and
// a "prefix" mod for a prefix scan.
func (b Bucket) Register(name string, r drip.QueryRouter) {
	if name == "" {
		name = b.name + "s"
	}
	root := "/" + name
	r.Register(root, b)
}

// Query processes given request and returns stored raw models matched by
// the lookup.
func (b Bucket) Query(db drip.ReadOnlyKVStore, mod string, data []byte) ([]drip.Model, error) {
	switch mod {
	case "":
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []drip.Model{{Key: key, Value: value}}, nil
	case "prefix":
		objs, err := b.PrefixScan(db, data)
		if err != nil {
			return nil, err
		}
		models := make([]drip.Model, 0, len(objs))
		for _, obj := range objs {
			value, err := obj.Value().Marshal()
			if err != nil {
				return nil, err
			}
			models = append(models, drip.Model{
				Key:   b.DBKey(obj.Key()),
				Value: value,
			})
		}
		return models, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod: %q", mod)
	}
}
