package cronwheel

import "testing"

func TestNewTaskIDIsNonEmptyAndUnique(t *testing.T) {
	a := NewTaskID()
	b := NewTaskID()

	if a == "" || b == "" {
		t.Fatal("NewTaskID returned an empty string")
	}
	if a == b {
		t.Error("two calls to NewTaskID returned the same id")
	}
}
