package driptest

import (
	"github.com/driphq/drip"
	"github.com/driphq/drip/errors"
)

// Tx is a mock implementing drip.Tx interface.
type Tx struct {
	// Msg is the message that this transaction is carrying.
	Msg drip.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ drip.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (drip.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	if tx.Msg == nil {
		return nil, nil
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal([]byte) error {
	if tx.Err != nil {
		return tx.Err
	}
	return errors.Wrap(errors.ErrHuman, "mocked transaction cannot be deserialized")
}

// Msg is a mock implementing drip.Msg interface.
type Msg struct {
	// RoutePath is returned by Path method call.
	RoutePath string
	// Serialized is returned by Marshal method call.
	Serialized []byte
	// Err if set is returned by Marshal, Unmarshal and Validate.
	Err error
}

var _ drip.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Marshal() ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Serialized, nil
}

func (m *Msg) Unmarshal(b []byte) error {
	if m.Err != nil {
		return m.Err
	}
	m.Serialized = b
	return nil
}

func (m *Msg) Validate() error {
	return m.Err
}
