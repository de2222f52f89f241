package mongo

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

var uuidType = reflect.TypeOf(uuid.UUID{})

// Registry stores uuid.UUID values as their canonical string form. Binary
// values written by older documents still decode.
func Registry() *bsoncodec.Registry {
	reg := bson.NewRegistry()
	reg.RegisterTypeEncoder(uuidType, bsoncodec.ValueEncoderFunc(encodeUUID))
	reg.RegisterTypeDecoder(uuidType, bsoncodec.ValueDecoderFunc(decodeUUID))
	return reg
}

func encodeUUID(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != uuidType {
		return bsoncodec.ValueEncoderError{Name: "encodeUUID", Types: []reflect.Type{uuidType}, Received: val}
	}
	return vw.WriteString(val.Interface().(uuid.UUID).String())
}

func decodeUUID(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != uuidType {
		return bsoncodec.ValueDecoderError{Name: "decodeUUID", Types: []reflect.Type{uuidType}, Received: val}
	}

	var id uuid.UUID
	switch t := vr.Type(); t {
	case bsontype.String:
		s, err := vr.ReadString()
		if err != nil {
			return err
		}
		if s != "" {
			if id, err = uuid.Parse(s); err != nil {
				return fmt.Errorf("cannot parse uuid %q: %w", s, err)
			}
		}
	case bsontype.Binary:
		data, _, err := vr.ReadBinary()
		if err != nil {
			return err
		}
		if id, err = uuid.FromBytes(data); err != nil {
			return fmt.Errorf("cannot decode uuid bytes: %w", err)
		}
	case bsontype.Null:
		if err := vr.ReadNull(); err != nil {
			return err
		}
	case bsontype.Undefined:
		if err := vr.ReadUndefined(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cannot decode %v into uuid.UUID", t)
	}

	val.Set(reflect.ValueOf(id))
	return nil
}
