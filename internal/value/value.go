// Package value implements the tagged Value union that flows through
// Comrade's stacks and key-value stores: opaque bytes, UTF-8 text, and the
// two markers the engine itself produces, success and failure.
package value

import "fmt"

// Kind discriminates the variants of Value.
type Kind int

const (
	// KindBin is opaque bytes with an optional textual hint.
	KindBin Kind = iota
	// KindStr is UTF-8 text with an optional textual hint.
	KindStr
	// KindSuccess is a check-counter snapshot recorded at the moment a
	// check operator accepted its witness. Produced only by the engine.
	KindSuccess
	// KindFailure is a human-readable rejection cause. Produced only by
	// the engine.
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindBin:
		return "Bin"
	case KindStr:
		return "Str"
	case KindSuccess:
		return "Success"
	case KindFailure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// Value is a tagged datum. The zero Value is not meaningful; always
// construct one via Bin, Str, Success, or Failure.
type Value struct {
	kind    Kind
	hint    string
	data    []byte
	text    string
	count   uint64
	message string
}

// Bin wraps opaque bytes with an optional textual hint.
func Bin(hint string, data []byte) Value {
	cp := make([]byte, len(data))
	copy(cp, data)
	return Value{kind: KindBin, hint: hint, data: cp}
}

// Str wraps UTF-8 text with an optional textual hint.
func Str(hint string, text string) Value {
	return Value{kind: KindStr, hint: hint, text: text}
}

// Success produces a success marker carrying the check-counter snapshot at
// the instant of success. Only the engine should call this.
func Success(count uint64) Value {
	return Value{kind: KindSuccess, count: count}
}

// Failure produces a failure marker with a human-readable cause. Only the
// engine should call this.
func Failure(message string) Value {
	return Value{kind: KindFailure, message: message}
}

// FromBytes converts a byte slice into a hint-less Bin value, the ingestion
// coercion spec.md §4.1 describes.
func FromBytes(data []byte) Value { return Bin("", data) }

// FromString converts text into a hint-less Str value.
func FromString(text string) Value { return Str("", text) }

// Kind reports the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsBin reports whether v is a Bin value.
func (v Value) IsBin() bool { return v.kind == KindBin }

// IsStr reports whether v is a Str value.
func (v Value) IsStr() bool { return v.kind == KindStr }

// IsSuccess reports whether v is a Success marker.
func (v Value) IsSuccess() bool { return v.kind == KindSuccess }

// IsFailure reports whether v is a Failure marker.
func (v Value) IsFailure() bool { return v.kind == KindFailure }

// Hint returns the textual hint of a Bin or Str value, or "" otherwise.
func (v Value) Hint() string { return v.hint }

// Bytes returns the data of a Bin value, or nil.
func (v Value) Bytes() []byte {
	if v.kind != KindBin {
		return nil
	}
	cp := make([]byte, len(v.data))
	copy(cp, v.data)
	return cp
}

// Text returns the text of a Str value, or "".
func (v Value) Text() string {
	if v.kind != KindStr {
		return ""
	}
	return v.text
}

// Count returns the check-count snapshot of a Success marker, or 0.
func (v Value) Count() uint64 {
	if v.kind != KindSuccess {
		return 0
	}
	return v.count
}

// Message returns the cause of a Failure marker, or "".
func (v Value) Message() string {
	if v.kind != KindFailure {
		return ""
	}
	return v.message
}

// AsBytes coerces Bin data directly, or Str text via its UTF-8 encoding.
// Any other variant reports ok=false. This is the Bin/Str-to-bytes
// coercion every check operator performs on its witness (spec.md §4.4).
func (v Value) AsBytes() (data []byte, ok bool) {
	switch v.kind {
	case KindBin:
		return v.Bytes(), true
	case KindStr:
		return []byte(v.text), true
	default:
		return nil, false
	}
}

// Equal reports structural equality between two Values.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBin:
		return v.hint == other.hint && bytesEqual(v.data, other.data)
	case KindStr:
		return v.hint == other.hint && v.text == other.text
	case KindSuccess:
		return v.count == other.count
	case KindFailure:
		return v.message == other.message
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders a debug representation, never used for wire encoding.
func (v Value) String() string {
	switch v.kind {
	case KindBin:
		return fmt.Sprintf("Bin{hint:%q, len:%d}", v.hint, len(v.data))
	case KindStr:
		return fmt.Sprintf("Str{hint:%q, text:%q}", v.hint, v.text)
	case KindSuccess:
		return fmt.Sprintf("Success(%d)", v.count)
	case KindFailure:
		return fmt.Sprintf("Failure(%q)", v.message)
	default:
		return "Value(?)"
	}
}
