package clipboard

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Entry is one copied block, positioned relative to the selection's
// anchor: RelSignal rows below the topmost copied signal, StartOffset
// cycles after the anchor region's start.
type Entry struct {
	RelSignal   int
	Values      []string
	StartOffset int
}

// Payload is the transferable form of a copied selection: a flat,
// JSON-serializable list of entries.
type Payload []Entry

// Encode serializes the payload as a JSON array for the system clipboard.
func Encode(pl Payload) string {
	out := "[]"
	for i, e := range pl {
		out, _ = sjson.Set(out, fmt.Sprintf("%d.relSignal", i), e.RelSignal)
		out, _ = sjson.Set(out, fmt.Sprintf("%d.startOffset", i), e.StartOffset)
		values := e.Values
		if values == nil {
			values = []string{}
		}
		out, _ = sjson.Set(out, fmt.Sprintf("%d.values", i), values)
	}
	return out
}

// Decode parses clipboard text back into a payload. Foreign or malformed
// content decodes to an empty payload: pasting it is a silent no-op,
// never an error. Entries missing a values array are dropped.
func Decode(raw string) Payload {
	if !gjson.Valid(raw) {
		return nil
	}
	root := gjson.Parse(raw)
	if !root.IsArray() {
		return nil
	}

	var pl Payload
	root.ForEach(func(_, item gjson.Result) bool {
		values := item.Get("values")
		if !values.IsArray() {
			return true // skip foreign entry
		}
		e := Entry{
			RelSignal:   int(item.Get("relSignal").Int()),
			StartOffset: int(item.Get("startOffset").Int()),
		}
		for _, v := range values.Array() {
			e.Values = append(e.Values, v.String())
		}
		pl = append(pl, e)
		return true
	})
	return pl
}
