package util

// Stack is a LIFO list, used for the screen history of the player.
type Stack[T any] []T

func (s *Stack[T]) Push(item T) {
	*s = append(*s, item)
}

// Pop removes the top item. ok is false when the stack is empty.
func (s *Stack[T]) Pop() (item T, ok bool) {
	n := len(*s)
	if n == 0 {
		return item, false
	}

	item = (*s)[n-1]
	*s = (*s)[:n-1]
	return item, true
}

func (s Stack[T]) Len() int {
	return len(s)
}
