// Package jsonutil provides JSON helpers for encoded frames: display
// formatting and per-variable diffs between consecutive frames.
package jsonutil

import (
	"errors"
	"sort"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// ErrNotObject is returned by Diff for input that is not a JSON object.
var ErrNotObject = errors.New("not a JSON object")

// Pretty formats JSON with indentation, colored for terminals when color
// is set.
func Pretty(data []byte, color bool) []byte {
	out := pretty.Pretty(data)
	if color {
		out = pretty.Color(out, nil)
	}
	return out
}

// Compact removes insignificant whitespace.
func Compact(data []byte) []byte {
	return pretty.Ugly(data)
}

// Change is one difference between two frames.
type Change struct {
	Path     string `json:"path"`
	Type     string `json:"type"` // "add", "update", "delete"
	OldValue string `json:"old_value,omitempty"`
	NewValue string `json:"new_value,omitempty"`
}

// Diff compares two JSON objects variable by variable. Arrays on both
// sides are compared element-wise with paths like "A.3". An empty input
// counts as an empty object.
func Diff(oldJSON, newJSON []byte) ([]Change, error) {
	oldObj, err := object(oldJSON)
	if err != nil {
		return nil, err
	}
	newObj, err := object(newJSON)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(oldObj)+len(newObj))
	for k := range oldObj {
		keys = append(keys, k)
	}
	for k := range newObj {
		if _, ok := oldObj[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var changes []Change
	for _, k := range keys {
		o, oldOK := oldObj[k]
		n, newOK := newObj[k]
		changes = diffValue(k, o, n, oldOK, newOK, changes)
	}
	return changes, nil
}

func diffValue(path string, o, n gjson.Result, oldOK, newOK bool, changes []Change) []Change {
	// null and absent read the same in a frame.
	oldOK = oldOK && o.Type != gjson.Null
	newOK = newOK && n.Type != gjson.Null

	switch {
	case !oldOK && newOK:
		return append(changes, Change{Path: path, Type: "add", NewValue: n.Raw})
	case oldOK && !newOK:
		return append(changes, Change{Path: path, Type: "delete", OldValue: o.Raw})
	case !oldOK && !newOK:
		return changes
	}

	if o.IsArray() && n.IsArray() {
		oa, na := o.Array(), n.Array()
		for i := 0; i < len(oa) || i < len(na); i++ {
			var ov, nv gjson.Result
			if i < len(oa) {
				ov = oa[i]
			}
			if i < len(na) {
				nv = na[i]
			}
			changes = diffValue(path+"."+strconv.Itoa(i), ov, nv, i < len(oa), i < len(na), changes)
		}
		return changes
	}

	if string(Compact([]byte(o.Raw))) != string(Compact([]byte(n.Raw))) {
		changes = append(changes, Change{Path: path, Type: "update", OldValue: o.Raw, NewValue: n.Raw})
	}
	return changes
}

func object(data []byte) (map[string]gjson.Result, error) {
	if len(data) == 0 {
		return map[string]gjson.Result{}, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrNotObject
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrNotObject
	}
	return root.Map(), nil
}
