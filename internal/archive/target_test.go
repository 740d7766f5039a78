package archive

import "testing"

func TestTarget(t *testing.T) {
	if !Unset().IsUnset() {
		t.Error("Expected Unset to be unset")
	}
	if !Declined().IsDeclined() {
		t.Error("Expected Declined to be declined")
	}
	if _, ok := Declined().Directory(); ok {
		t.Error("Expected no directory for a declined target")
	}

	dir := NewOSDirectory("/tmp/posts")
	target := HandleOf(dir)
	got, ok := target.Directory()
	if !ok || got != dir {
		t.Errorf("Expected directory %v, got %v", dir, got)
	}
	if target.String() != "/tmp/posts" {
		t.Errorf("Expected target name '/tmp/posts', got %q", target.String())
	}

	if !HandleOf(nil).IsDeclined() {
		t.Error("Expected a nil handle to be declined")
	}
}
