package matcher

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// M matches the textual result of a stack operation, either exactly
// or with a regular expression. The empty matcher matches everything.
type M struct {
	pattern *regexp.Regexp
	spec    string
}

type m struct {
	Spec     string `json:"spec"`
	UseRegex bool   `json:"useRegex"`
}

func FromString(s string) (matcher M, err error) {
	err = matcher.FromString(s)
	return
}

func FromStringOrPanic(s string) (matcher M) {
	if err := matcher.FromString(s); err != nil {
		panic(err)
	}
	return
}

func (this *M) MarshalJSON() ([]byte, error) {
	return json.Marshal(this.String())
}

// UnmarshalJSON accepts a string, where `/.../` denotes a regular
// expression, or an object with the fields spec and useRegex.
func (this *M) UnmarshalJSON(b []byte) error {
	{
		var v string
		err := json.Unmarshal(b, &v)
		if err == nil {
			return this.FromString(v)
		}
		if _, ok := err.(*json.UnmarshalTypeError); !ok {
			return err
		}
	}

	var v m
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	this.spec = v.Spec
	this.pattern = nil
	if v.UseRegex {
		return this.FromPattern(v.Spec)
	}
	return nil
}

func (this *M) FromString(s string) error {
	if len(s) >= 2 && strings.HasPrefix(s, "/") && strings.HasSuffix(s, "/") {
		return this.FromPattern(s[1 : len(s)-1])
	}
	this.spec = s
	this.pattern = nil
	return nil
}

func (this *M) FromPattern(s string) error {
	pattern, err := regexp.Compile(s)
	if err != nil {
		return fmt.Errorf("invalid pattern '%s': %w", s, err)
	}
	this.spec = s
	this.pattern = pattern
	return nil
}

func (this *M) String() string {
	if this.UsesRegex() {
		return fmt.Sprintf("/%s/", this.spec)
	}
	return this.spec
}

func (this *M) IsEmpty() bool {
	return this.pattern == nil && this.spec == ""
}

func (this *M) UsesRegex() bool {
	return this.pattern != nil
}

func (this *M) MatchString(s string) bool {
	if this.IsEmpty() {
		return true
	}
	if this.UsesRegex() {
		return this.pattern.MatchString(s)
	}
	return this.spec == s
}
