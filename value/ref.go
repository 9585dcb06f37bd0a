package value

// Ref is a borrowed, zero-copy view into a table row's byte arena. It
// never allocates or copies on construction; callers that need an
// independent copy call ToValue.
type Ref struct {
	typ Type
	raw []byte
}

// NewRef wraps a slice of a row's backing array. raw is not copied: it
// must remain valid and unmodified for the lifetime of the Ref.
func NewRef(t Type, raw []byte) Ref { return Ref{typ: t, raw: raw} }

func (r Ref) Kind() Type  { return r.typ }
func (r Ref) Raw() []byte { return r.raw }

// ToValue copies the referenced bytes into an owning Value.
func (r Ref) ToValue() Value { return decodeRaw(r.typ, r.raw) }

func (r Ref) Int32() (int32, error) { return r.ToValue().Int32() }
func (r Ref) Bool() (bool, error)   { return r.ToValue().Bool() }
func (r Ref) Str() (string, error)  { return r.ToValue().Str() }
func (r Ref) Bs() ([]byte, error)   { return r.ToValue().Bs() }
func (r Ref) String() string        { return r.ToValue().String() }
