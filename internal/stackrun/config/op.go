package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Op specifies which stack operation a program step performs.
type Op int

const (
	// OpUndefined means that the step did not name an operation.
	OpUndefined Op = iota

	// OpPush pushes the step value on top of the stack.
	OpPush

	// OpPop removes the top element of the stack.
	OpPop

	// OpTop reads the top element of the stack.
	OpTop

	// OpLen reads the number of elements in the stack.
	OpLen

	// OpCapacity reads the capacity of the stack.
	OpCapacity

	// OpEmpty reports whether the stack is empty.
	OpEmpty

	// OpFull reports whether the stack is full.
	OpFull

	// OpHash reads the hash code of the stack.
	OpHash

	// OpString renders the stack as text.
	OpString

	// OpClone replaces the stack with a clone of itself and reports
	// whether the clone equals the stack it was cloned from.
	OpClone
)

var opNames = map[Op]string{
	OpPush:     "push",
	OpPop:      "pop",
	OpTop:      "top",
	OpLen:      "len",
	OpCapacity: "capacity",
	OpEmpty:    "empty",
	OpFull:     "full",
	OpHash:     "hash",
	OpString:   "string",
	OpClone:    "clone",
}

// IsMutation reports whether the operation may change the stack contents.
func (this Op) IsMutation() bool {
	return this == OpPush || this == OpPop
}

func (this Op) MarshalJSON() ([]byte, error) {
	if this == OpUndefined {
		return json.Marshal(nil)
	}
	s, ok := opNames[this]
	if !ok {
		return nil, fmt.Errorf("unknown op '%s'", this)
	}
	return json.Marshal(s)
}

func (this *Op) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch strings.ToLower(v) {
	case "":
		*this = OpUndefined
	case "push":
		*this = OpPush
	case "pop":
		*this = OpPop
	case "top", "peek":
		*this = OpTop
	case "len", "size":
		*this = OpLen
	case "capacity", "cap":
		*this = OpCapacity
	case "empty", "is-empty":
		*this = OpEmpty
	case "full", "is-full":
		*this = OpFull
	case "hash":
		*this = OpHash
	case "string", "render":
		*this = OpString
	case "clone":
		*this = OpClone
	default:
		return fmt.Errorf("unexpected value '%s' for op", v)
	}
	return nil
}

func (this Op) String() string {
	if this == OpUndefined {
		return ""
	}
	if s, ok := opNames[this]; ok {
		return s
	}
	return fmt.Sprintf("unknown(%d)", int(this))
}
