package drip_test

import (
	"encoding/json"
	"testing"

	"github.com/driphq/drip"
	"github.com/driphq/drip/driptest"
	"github.com/driphq/drip/driptest/assert"
	"github.com/driphq/drip/errors"
)

// pingMsg is a minimal message implementation for the tests.
type pingMsg struct {
	Payload string
	Err     error
}

var _ drip.Msg = (*pingMsg)(nil)

func (pingMsg) Path() string { return "test/ping" }

func (m *pingMsg) Validate() error { return m.Err }

func (m *pingMsg) Marshal() ([]byte, error) { return json.Marshal(m) }
func (m *pingMsg) Unmarshal(b []byte) error { return json.Unmarshal(b, m) }

func TestLoadMsg(t *testing.T) {
	tx := &driptest.Tx{Msg: &pingMsg{Payload: "hello"}}

	var msg pingMsg
	assert.Nil(t, drip.LoadMsg(tx, &msg))
	assert.Equal(t, "hello", msg.Payload)
}

func TestLoadMsgWrongType(t *testing.T) {
	tx := &driptest.Tx{Msg: &pingMsg{Payload: "hello"}}

	var msg driptest.Msg
	assert.IsErr(t, errors.ErrType, drip.LoadMsg(tx, &msg))
}

func TestLoadMsgValidates(t *testing.T) {
	tx := &driptest.Tx{Msg: &pingMsg{Err: errors.ErrHuman}}

	var msg pingMsg
	assert.IsErr(t, errors.ErrHuman, drip.LoadMsg(tx, &msg))
}

func TestLoadMsgBrokenTx(t *testing.T) {
	tx := &driptest.Tx{Err: errors.ErrDatabase}

	var msg pingMsg
	assert.IsErr(t, errors.ErrDatabase, drip.LoadMsg(tx, &msg))
}

func TestGetPath(t *testing.T) {
	tx := &driptest.Tx{Msg: &pingMsg{}}
	assert.Equal(t, "test/ping", drip.GetPath(tx))

	broken := &driptest.Tx{Err: errors.ErrDatabase}
	assert.Equal(t, "(missing)", drip.GetPath(broken))
}
