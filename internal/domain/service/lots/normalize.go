package lots

import (
	jsoniter "github.com/json-iterator/go"

	"lotdesk/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// The upstream webhook does not keep a stable response envelope, so the
// shape of every payload is probed explicitly before any lot is decoded.
// An unrecognized shape is not an error: it degrades to an empty list,
// the same as a legitimately empty feed.
type shape int

const (
	shapeEmpty shape = iota
	shapeArray
	shapeDataEnvelope
	shapeItemsEnvelope
	shapeLotsEnvelope
	shapeSingle
	shapeUnknown
)

// envelopeKeys is the probe order for object payloads; the first
// array-valued key wins.
var envelopeKeys = []struct { //nolint:gochecknoglobals
	key   string
	shape shape
}{
	{key: "data", shape: shapeDataEnvelope},
	{key: "items", shape: shapeItemsEnvelope},
	{key: "lots", shape: shapeLotsEnvelope},
}

// Normalize converts an already-parsed payload of any accepted shape into
// a flat lot list. It never fails; syntax errors are the caller's concern.
func Normalize(raw any) []entity.Lot {
	sh, elements := detectShape(raw)
	if sh == shapeEmpty || sh == shapeUnknown {
		return []entity.Lot{}
	}

	elements = unwrapped(elements)

	result := make([]entity.Lot, 0, len(elements))

	for _, element := range elements {
		lot, ok := decodeLot(element)
		if !ok {
			continue
		}

		result = append(result, lot)
	}

	return result
}

func detectShape(raw any) (shape, []any) {
	if raw == nil {
		return shapeEmpty, nil
	}

	if elements, ok := raw.([]any); ok {
		return shapeArray, elements
	}

	object, ok := raw.(map[string]any)
	if !ok {
		return shapeUnknown, nil
	}

	for _, envelope := range envelopeKeys {
		if elements, ok := object[envelope.key].([]any); ok {
			return envelope.shape, elements
		}
	}

	if truthy(object["id"]) {
		return shapeSingle, []any{object}
	}

	return shapeUnknown, nil
}

// unwrapped strips the per-element "json" wrapper some sources add.
// As in the upstream feed, the first element decides for the whole batch.
func unwrapped(elements []any) []any {
	if len(elements) == 0 {
		return elements
	}

	first, ok := elements[0].(map[string]any)
	if !ok {
		return elements
	}

	if _, wrapped := first["json"]; !wrapped {
		return elements
	}

	result := make([]any, 0, len(elements))

	for _, element := range elements {
		object, ok := element.(map[string]any)
		if !ok {
			continue
		}

		result = append(result, object["json"])
	}

	return result
}

func decodeLot(element any) (entity.Lot, bool) {
	object, ok := element.(map[string]any)
	if !ok {
		return entity.Lot{}, false
	}

	raw, err := json.Marshal(object)
	if err != nil {
		return entity.Lot{}, false
	}

	var lot entity.Lot
	if err := json.Unmarshal(raw, &lot); err != nil {
		return entity.Lot{}, false
	}

	if lot.Positions == nil {
		lot.Positions = entity.Positions{}
	}

	return lot, true
}

// truthy mirrors the upstream feed's notion of a usable id: zero, empty
// string, false and null all mean "not a lot".
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	default:
		return true
	}
}
