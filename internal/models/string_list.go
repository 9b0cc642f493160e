package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// StringList is a category list that tolerates documents written before
// products supported multiple categories, when the field was a single
// string.
type StringList []string

// UnmarshalBSONValue decodes either a string or an array; a bare string
// becomes a one-element list so old documents keep working.
func (s *StringList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null:
		*s = nil
		return nil
	case bsontype.Array:
		var list []string
		if err := bson.UnmarshalValue(t, data, &list); err != nil {
			return err
		}
		*s = list
		return nil
	case bsontype.String:
		var single string
		if err := bson.UnmarshalValue(t, data, &single); err != nil {
			return err
		}
		single = strings.TrimSpace(single)
		if single == "" {
			*s = []string{}
		} else {
			*s = []string{single}
		}
		return nil
	default:
		return fmt.Errorf("cannot decode %s into StringList", t)
	}
}

// MarshalBSONValue always writes an array, so every update migrates the
// field forward.
func (s StringList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue([]string(s))
}
