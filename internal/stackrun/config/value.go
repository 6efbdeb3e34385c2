package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.lepovirta.org/intstack/internal/envsubst"
)

// Value is an integer operand of a program step. In JSON it is either
// a number or a string. Strings may reference environment variables
// using the ${NAME} syntax and are resolved to a number during parsing.
type Value struct {
	raw      string
	value    int
	set      bool
	resolved bool
}

func NewValue(v int) Value {
	return Value{value: v, set: true, resolved: true}
}

func (this Value) IsSet() bool {
	return this.set
}

// Int returns the resolved value. It is zero for unresolved values.
func (this Value) Int() int {
	return this.value
}

func (this Value) String() string {
	if !this.set {
		return ""
	}
	if !this.resolved {
		return this.raw
	}
	return strconv.Itoa(this.value)
}

func (this Value) MarshalJSON() ([]byte, error) {
	if !this.set {
		return json.Marshal(nil)
	}
	if !this.resolved {
		return json.Marshal(this.raw)
	}
	return json.Marshal(this.value)
}

func (this *Value) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case nil:
		*this = Value{}
		return nil
	case float64:
		var i int
		if err := json.Unmarshal(b, &i); err != nil {
			return fmt.Errorf("value %s is not an integer", string(b))
		}
		*this = NewValue(i)
		return nil
	case string:
		*this = Value{raw: value, set: true}
		return nil
	default:
		return errors.New("unexpected type for value")
	}
}

func (this *Value) resolve(envVars map[string]string) error {
	if !this.set || this.resolved {
		return nil
	}
	s, err := envsubst.Replace(this.raw, envVars)
	if err != nil {
		return err
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("'%s' is not an integer", s)
	}
	this.value = i
	this.resolved = true
	return nil
}
