package form

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

const formTagKey = "form"

// recordMetadata lists the serializable fields of a struct type in declaration order.
type recordMetadata struct {
	Type   reflect.Type
	Fields []fieldDescriptor
}

// fieldDescriptor stores metadata for an individual struct field.
type fieldDescriptor struct {
	Name      string // Go field name
	FormName  string // name emitted as the pair key
	Index     []int
	OmitEmpty bool
}

var recordMetadataCache sync.Map // map[reflect.Type]*recordMetadata

// getRecordMetadata returns cached metadata for the struct type t.
func getRecordMetadata(t reflect.Type) (*recordMetadata, error) {
	if meta, ok := recordMetadataCache.Load(t); ok {
		return meta.(*recordMetadata), nil
	}

	var candidates []candidateField
	if err := collectFields(&candidates, t, nil, make(map[reflect.Type]struct{})); err != nil {
		return nil, err
	}
	meta := &recordMetadata{Type: t, Fields: dominantFields(candidates)}

	actual, _ := recordMetadataCache.LoadOrStore(t, meta)
	return actual.(*recordMetadata), nil
}

// resetRecordMetadataCache clears computed metadata; used by tests.
func resetRecordMetadataCache() {
	recordMetadataCache = sync.Map{}
}

// candidateField is a field found while flattening, before promotion rules apply.
type candidateField struct {
	fieldDescriptor
	tagged bool
}

func collectFields(fields *[]candidateField, t reflect.Type, parent []int, visiting map[reflect.Type]struct{}) error {
	if _, seen := visiting[t]; seen {
		return fmt.Errorf("form: circular embedding of %s", t)
	}
	visiting[t] = struct{}{}
	defer delete(visiting, t)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		tag := field.Tag.Get(formTagKey)
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		name = strings.TrimSpace(name)

		index := make([]int, len(parent)+1)
		copy(index, parent)
		index[len(parent)] = i

		// Untagged embedded structs are flattened, even when the embedded
		// type itself is unexported.
		if field.Anonymous && name == "" {
			base := field.Type
			if base.Kind() == reflect.Pointer {
				base = base.Elem()
			}
			if base.Kind() == reflect.Struct {
				if err := collectFields(fields, base, index, visiting); err != nil {
					return err
				}
				continue
			}
		}
		if !field.IsExported() {
			continue
		}

		fd := fieldDescriptor{
			Name:     field.Name,
			FormName: field.Name,
			Index:    index,
		}
		if name != "" {
			fd.FormName = name
		}
		for _, opt := range strings.Split(opts, ",") {
			if strings.TrimSpace(opt) == "omitempty" {
				fd.OmitEmpty = true
			}
		}
		*fields = append(*fields, candidateField{fieldDescriptor: fd, tagged: name != ""})
	}

	return nil
}

// dominantFields applies Go's promotion rules to the flattened fields. For each
// form name the shallowest fields win and a tagged field beats untagged ones at
// the same depth. An ambiguous name inside embedded structs is dropped, as Go
// forbids selecting it. Fields declared directly on the record are always kept,
// so explicit duplicate tags still emit one pair each.
func dominantFields(candidates []candidateField) []fieldDescriptor {
	byName := make(map[string][]int)
	for i, c := range candidates {
		byName[c.FormName] = append(byName[c.FormName], i)
	}

	keep := make([]bool, len(candidates))
	for _, group := range byName {
		depth := len(candidates[group[0]].Index)
		for _, i := range group[1:] {
			depth = min(depth, len(candidates[i].Index))
		}

		var shallow, tagged []int
		for _, i := range group {
			if len(candidates[i].Index) != depth {
				continue
			}
			shallow = append(shallow, i)
			if candidates[i].tagged {
				tagged = append(tagged, i)
			}
		}

		switch {
		case depth == 1:
			for _, i := range shallow {
				keep[i] = true
			}
		case len(tagged) == 1:
			keep[tagged[0]] = true
		case len(tagged) == 0 && len(shallow) == 1:
			keep[shallow[0]] = true
		}
	}

	fields := make([]fieldDescriptor, 0, len(candidates))
	for i, c := range candidates {
		if keep[i] {
			fields = append(fields, c.fieldDescriptor)
		}
	}
	return fields
}
