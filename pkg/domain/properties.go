package domain

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ViewSettings is the typed shape of a data-bound view's properties. Only
// the keys a consumer needs are decoded; everything else stays in the open
// Properties bag.
type ViewSettings struct {
	// View is the render subtype (e.g. "table", "barChart", "map").
	View string `mapstructure:"view"`

	// DataKey addresses the upstream data source in the record cache.
	DataKey string `mapstructure:"dataKey"`

	// Filters are applied to the cached records before rows reach the view.
	Filters []Filter `mapstructure:"filters"`

	Title   string `mapstructure:"title"`
	XColumn string `mapstructure:"xColumn"`
	YColumn string `mapstructure:"yColumn"`
}

// DecodeProperties decodes a node's untyped property bag into out, which
// must be a pointer to a struct with mapstructure tags. Unknown keys are
// ignored.
func DecodeProperties(n *Node, out any) error {
	if n == nil {
		return fmt.Errorf("decode properties: nil node")
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("decode properties: %w", err)
	}
	if err := decoder.Decode(n.Properties); err != nil {
		return fmt.Errorf("decode properties of %s: %w", n.ID, err)
	}
	return nil
}

// ViewSettings decodes the node's properties into ViewSettings.
func (n *Node) ViewSettings() (ViewSettings, error) {
	var s ViewSettings
	err := DecodeProperties(n, &s)
	return s, err
}
