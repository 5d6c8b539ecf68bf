package relay

import (
	"encoding/json"

	"github.com/driphq/drip"
)

// Event is the JSON envelope published for every executed transition.
type Event struct {
	Height int64             `json:"height"`
	Path   string            `json:"path"`
	Tags   map[string]string `json:"tags"`
}

// NewEvent builds the envelope from a delivery result.
func NewEvent(ctx drip.Context, tx drip.Tx, res *drip.DeliverResult) Event {
	height, _ := drip.GetHeight(ctx)
	ev := Event{
		Height: height,
		Path:   drip.GetPath(tx),
		Tags:   make(map[string]string, len(res.Tags)),
	}
	for _, tag := range res.Tags {
		ev.Tags[string(tag.Key)] = string(tag.Value)
	}
	return ev
}

// Key returns the partitioning key of the event. Events of the same vault
// must stay ordered, so the vault tag is used whenever present.
func (e Event) Key() []byte {
	if v, ok := e.Tags["vault"]; ok {
		return []byte(v)
	}
	return []byte(e.Path)
}

// Marshal serializes the envelope for the wire.
func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
