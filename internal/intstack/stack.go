package intstack

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const hashMultiplier = 31

// Stack is a LIFO container of integers with a capacity fixed at
// initialisation. The zero value is an empty stack with zero capacity.
//
// Elements in elements[:count] are live, with the top at count-1.
// The rest of the slice is slack and always holds zeroes.
type Stack struct {
	count    int
	elements []int
}

// New creates an empty stack that can hold up to capacity elements.
func New(capacity int) (*Stack, error) {
	stack := &Stack{}
	if err := stack.Init(capacity); err != nil {
		return nil, err
	}
	return stack, nil
}

// FromSlice creates a stack from the first n elements of source.
// The capacity of the stack is the length of source.
func FromSlice(source []int, n int) (*Stack, error) {
	stack := &Stack{}
	if err := stack.InitWithSlice(source, n); err != nil {
		return nil, err
	}
	return stack, nil
}

func (this *Stack) Init(capacity int) error {
	if err := checkCapacity(capacity); err != nil {
		return err
	}
	this.count = 0
	this.elements = make([]int, capacity)
	return nil
}

// InitWithSlice copies source into the stack and marks the first n
// elements as live. The stack never aliases source.
func (this *Stack) InitWithSlice(source []int, n int) error {
	if source == nil {
		return ErrNilSource
	}
	if err := checkCapacity(len(source)); err != nil {
		return err
	}
	if n < 0 || n > len(source) {
		return &ArgumentError{
			name:   "count",
			value:  n,
			reason: "must be between 0 and " + strconv.Itoa(len(source)),
		}
	}
	elements := make([]int, len(source))
	copy(elements, source[:n])
	this.count = n
	this.elements = elements
	return nil
}

func checkCapacity(capacity int) error {
	if capacity < 0 {
		return &ArgumentError{
			name:   "capacity",
			value:  capacity,
			reason: "must not be negative",
		}
	}
	if capacity == math.MaxInt {
		return &ArgumentError{
			name:   "capacity",
			value:  capacity,
			reason: "must be less than " + strconv.Itoa(math.MaxInt),
		}
	}
	return nil
}

func (this *Stack) Capacity() int {
	return len(this.elements)
}

func (this *Stack) Len() int {
	return this.count
}

func (this *Stack) IsEmpty() bool {
	return this.count == 0
}

func (this *Stack) IsFull() bool {
	return this.count == len(this.elements)
}

// Top returns the most recently pushed element.
func (this *Stack) Top() (int, error) {
	if this.IsEmpty() {
		return 0, ErrUnderflow
	}
	return this.elements[this.count-1], nil
}

func (this *Stack) Push(v int) error {
	if this.IsFull() {
		return ErrCapacityExceeded
	}
	this.elements[this.count] = v
	this.count += 1
	return nil
}

// Pop removes the top element and returns it.
func (this *Stack) Pop() (int, error) {
	if this.IsEmpty() {
		return 0, ErrUnderflow
	}
	this.count -= 1
	v := this.elements[this.count]
	this.elements[this.count] = 0
	return v, nil
}

// Elements returns a copy of the live elements from bottom to top.
func (this *Stack) Elements() []int {
	elements := make([]int, this.count)
	copy(elements, this.elements[:this.count])
	return elements
}

// Equal reports whether other is a stack with the same capacity and
// the same live elements in the same order.
func (this *Stack) Equal(other any) bool {
	var that *Stack
	switch o := other.(type) {
	case *Stack:
		that = o
	case Stack:
		that = &o
	default:
		return false
	}
	if that == nil {
		return false
	}
	if this == that {
		return true
	}
	if this.count != that.count || this.Capacity() != that.Capacity() {
		return false
	}
	for i := 0; i < this.count; i++ {
		if this.elements[i] != that.elements[i] {
			return false
		}
	}
	return true
}

func (this *Stack) Hash() int {
	h := this.count*hashMultiplier + this.Capacity()
	for _, e := range this.elements[:this.count] {
		h = h*hashMultiplier + e
	}
	return h
}

func (this *Stack) Clone() *Stack {
	elements := make([]int, len(this.elements))
	copy(elements, this.elements)
	return &Stack{
		count:    this.count,
		elements: elements,
	}
}

func (this *Stack) String() string {
	var b strings.Builder
	_, _ = b.WriteString("IntStack(")
	_, _ = b.WriteString(strconv.Itoa(this.count))
	_ = b.WriteByte('/')
	_, _ = b.WriteString(strconv.Itoa(this.Capacity()))
	_, _ = b.WriteString("):[")
	for i, e := range this.elements[:this.count] {
		if i > 0 {
			_ = b.WriteByte(' ')
		}
		_, _ = b.WriteString(strconv.Itoa(e))
	}
	_ = b.WriteByte(']')
	return b.String()
}

type stackJSON struct {
	Capacity int   `json:"capacity"`
	Elements []int `json:"elements"`
}

func (this *Stack) MarshalJSON() ([]byte, error) {
	return json.Marshal(stackJSON{
		Capacity: this.Capacity(),
		Elements: this.Elements(),
	})
}

func (this *Stack) UnmarshalJSON(b []byte) error {
	var v stackJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if err := checkCapacity(v.Capacity); err != nil {
		return err
	}
	if len(v.Elements) > v.Capacity {
		return &ArgumentError{
			name:   "elements",
			value:  len(v.Elements),
			reason: "must not exceed capacity " + strconv.Itoa(v.Capacity),
		}
	}
	elements := make([]int, v.Capacity)
	copy(elements, v.Elements)
	this.count = len(v.Elements)
	this.elements = elements
	return nil
}
