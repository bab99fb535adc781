package registrytypes

import (
	"fmt"
	"pairing-hub/internal/lock"
	"reflect"

	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

var PadlockType = reflect.TypeOf(lock.None)

// PadlockEncodeValue stores padlocks by name so the documents stay readable
// when the enum is reordered.
func PadlockEncodeValue(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != PadlockType {
		return bsoncodec.ValueEncoderError{Name: "PadlockEncodeValue", Types: []reflect.Type{PadlockType}, Received: val}
	}
	p := lock.Padlock(val.Int())
	if !p.Valid() {
		return fmt.Errorf("cannot encode invalid padlock %d", val.Int())
	}
	return vw.WriteString(p.String())
}

func PadlockDecodeValue(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != PadlockType {
		return bsoncodec.ValueDecoderError{Name: "PadlockDecodeValue", Types: []reflect.Type{PadlockType}, Received: val}
	}

	switch vr.Type() {
	case bsontype.String:
		name, err := vr.ReadString()
		if err != nil {
			return err
		}
		p, err := lock.ParsePadlock(name)
		if err != nil {
			return err
		}
		val.SetInt(int64(p))
		return nil
	case bsontype.Null:
		val.SetInt(int64(lock.None))
		return vr.ReadNull()
	default:
		return fmt.Errorf("cannot decode %v into a padlock", vr.Type())
	}
}
