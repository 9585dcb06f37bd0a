package schema

import (
	"fmt"
	"io"

	"github.com/dbohdan/memdb/value"
	"github.com/dbohdan/memdb/wire"
)

// Save writes c's on-disk representation: type, name, size, offset, the
// four constraint flags, and then whichever of the autoincrement counter
// or default value the flags say are present.
func (c *Column) Save(w io.Writer) error {
	if err := wire.WriteInt32(w, int32(c.Type)); err != nil {
		return err
	}
	if err := wire.WriteString(w, c.Name); err != nil {
		return err
	}
	if err := wire.WriteUint16(w, c.Size); err != nil {
		return err
	}
	if err := wire.WriteUint16(w, c.Offset); err != nil {
		return err
	}
	if err := wire.WriteBool(w, c.Unique); err != nil {
		return err
	}
	if err := wire.WriteBool(w, c.Auto); err != nil {
		return err
	}
	if err := wire.WriteBool(w, c.Key); err != nil {
		return err
	}
	if err := wire.WriteBool(w, c.HasDefault); err != nil {
		return err
	}
	if c.Auto {
		if err := wire.WriteInt32(w, c.AutoNext); err != nil {
			return err
		}
	}
	if c.HasDefault {
		if err := writeValueByType(w, c.Type, c.Default); err != nil {
			return err
		}
	}
	return nil
}

// LoadColumn reads a Column written by Save.
func LoadColumn(r io.Reader) (Column, error) {
	var c Column

	typ, err := wire.ReadInt32(r)
	if err != nil {
		return c, err
	}
	c.Type = value.Type(typ)

	if c.Name, err = wire.ReadString(r); err != nil {
		return c, err
	}
	if c.Size, err = wire.ReadUint16(r); err != nil {
		return c, err
	}
	if c.Offset, err = wire.ReadUint16(r); err != nil {
		return c, err
	}
	if c.Unique, err = wire.ReadBool(r); err != nil {
		return c, err
	}
	if c.Auto, err = wire.ReadBool(r); err != nil {
		return c, err
	}
	if c.Key, err = wire.ReadBool(r); err != nil {
		return c, err
	}
	if c.HasDefault, err = wire.ReadBool(r); err != nil {
		return c, err
	}
	if c.Auto {
		if c.AutoNext, err = wire.ReadInt32(r); err != nil {
			return c, err
		}
	}
	if c.HasDefault {
		if c.Default, err = readValueByType(r, c.Type); err != nil {
			return c, err
		}
	}
	return c, nil
}

func writeValueByType(w io.Writer, t value.Type, v value.Value) error {
	switch t {
	case value.Int32:
		i, _ := v.Int32()
		return wire.WriteInt32(w, i)
	case value.Bool:
		b, _ := v.Bool()
		return wire.WriteBool(w, b)
	case value.String:
		s, _ := v.Str()
		return wire.WriteString(w, s)
	case value.Bytes:
		b, _ := v.Bs()
		return wire.WriteBytes(w, b)
	default:
		return fmt.Errorf("schema: cannot encode value of type %s", t)
	}
}

func readValueByType(r io.Reader, t value.Type) (value.Value, error) {
	switch t {
	case value.Int32:
		i, err := wire.ReadInt32(r)
		return value.NewInt32(i), err
	case value.Bool:
		b, err := wire.ReadBool(r)
		return value.NewBool(b), err
	case value.String:
		s, err := wire.ReadString(r)
		return value.NewString(s), err
	case value.Bytes:
		b, err := wire.ReadBytes(r)
		return value.NewBytes(b), err
	default:
		return value.Value{}, fmt.Errorf("schema: cannot decode value of type %s", t)
	}
}
