package authoring

import (
	"errors"
	"fmt"
)

var ErrRowOutOfRange = errors.New("row index out of range")

// MinimumRowsError is returned when a removal would leave a list empty.
type MinimumRowsError struct {
	List string
}

func (e *MinimumRowsError) Error() string {
	return fmt.Sprintf("list %s must keep at least one row", e.List)
}

// Notice is the message shown to the author when the removal is refused.
func (e *MinimumRowsError) Notice() string {
	switch e.List {
	case ListOptions:
		return "You must have at least one option."
	case ListTextInputs:
		return "You must have at least one text input."
	case ListMatchingItems:
		return "You must have at least one matching item."
	default:
		return "You must keep at least one row."
	}
}

const (
	ListOptions       = "question_options"
	ListTextInputs    = "text_inputs"
	ListMatchingItems = "matching_items"
)

// Row is one positioned entry of an OrderedList. Fields maps a field to the
// form field name encoding the row's current index.
type Row[T any] struct {
	Index  int
	Fields map[string]string
	Value  T
}

// OrderedList keeps rows contiguous from zero. Every mutation renumbers the
// rows and rebuilds their field names from the current position.
type OrderedList[T any] struct {
	name   string
	fields []string
	rows   []Row[T]
}

func NewOrderedList[T any](name string, fields []string, values []T) *OrderedList[T] {
	l := &OrderedList[T]{name: name, fields: fields}
	for _, v := range values {
		l.rows = append(l.rows, Row[T]{Value: v})
	}
	l.reindex()
	return l
}

func (l *OrderedList[T]) Name() string { return l.name }

func (l *OrderedList[T]) Len() int { return len(l.rows) }

// Rows returns a copy of the rows in display order.
func (l *OrderedList[T]) Rows() []Row[T] {
	out := make([]Row[T], len(l.rows))
	copy(out, l.rows)
	return out
}

func (l *OrderedList[T]) Values() []T {
	out := make([]T, len(l.rows))
	for i, r := range l.rows {
		out[i] = r.Value
	}
	return out
}

func (l *OrderedList[T]) Get(index int) (T, error) {
	var zero T
	if index < 0 || index >= len(l.rows) {
		return zero, fmt.Errorf("%w: %s[%d]", ErrRowOutOfRange, l.name, index)
	}
	return l.rows[index].Value, nil
}

func (l *OrderedList[T]) Append(v T) {
	l.rows = append(l.rows, Row[T]{Value: v})
	l.reindex()
}

// Insert places v before the row at index. index == Len appends.
func (l *OrderedList[T]) Insert(index int, v T) error {
	if index < 0 || index > len(l.rows) {
		return fmt.Errorf("%w: %s[%d]", ErrRowOutOfRange, l.name, index)
	}
	l.rows = append(l.rows, Row[T]{})
	copy(l.rows[index+1:], l.rows[index:])
	l.rows[index] = Row[T]{Value: v}
	l.reindex()
	return nil
}

// Remove deletes the row at index. Removing the only row is refused with
// a *MinimumRowsError and leaves the list untouched.
func (l *OrderedList[T]) Remove(index int) error {
	if index < 0 || index >= len(l.rows) {
		return fmt.Errorf("%w: %s[%d]", ErrRowOutOfRange, l.name, index)
	}
	if len(l.rows) == 1 {
		return &MinimumRowsError{List: l.name}
	}
	l.rows = append(l.rows[:index], l.rows[index+1:]...)
	l.reindex()
	return nil
}

// Move drags the row at from so that it ends up at position to.
func (l *OrderedList[T]) Move(from, to int) error {
	n := len(l.rows)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: %s move %d->%d", ErrRowOutOfRange, l.name, from, to)
	}
	if from == to {
		return nil
	}
	row := l.rows[from]
	l.rows = append(l.rows[:from], l.rows[from+1:]...)
	l.rows = append(l.rows[:to], append([]Row[T]{row}, l.rows[to:]...)...)
	l.reindex()
	return nil
}

// Update mutates the value at index in place.
func (l *OrderedList[T]) Update(index int, fn func(*T)) error {
	if index < 0 || index >= len(l.rows) {
		return fmt.Errorf("%w: %s[%d]", ErrRowOutOfRange, l.name, index)
	}
	fn(&l.rows[index].Value)
	return nil
}

// FieldName builds the form field name of field at index.
func (l *OrderedList[T]) FieldName(index int, field string) string {
	return fmt.Sprintf("%s[%d][%s]", l.name, index, field)
}

func (l *OrderedList[T]) reindex() {
	for i := range l.rows {
		l.rows[i].Index = i
		names := make(map[string]string, len(l.fields))
		for _, f := range l.fields {
			names[f] = l.FieldName(i, f)
		}
		l.rows[i].Fields = names
	}
}
