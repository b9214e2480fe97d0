package cache

import "testing"

func TestList_PushFrontOrdering(t *testing.T) {
	var l list
	a, b, c := &entry{key: "a"}, &entry{key: "b"}, &entry{key: "c"}

	l.pushFront(a)
	l.pushFront(b)
	l.pushFront(c)

	if l.head != c || l.tail != a {
		t.Fatalf("expected head=c tail=a, got head=%v tail=%v", l.head.key, l.tail.key)
	}
	if l.size != 3 {
		t.Fatalf("expected size 3, got %d", l.size)
	}
}

func TestList_MoveToFrontNoopOnHead(t *testing.T) {
	var l list
	a := &entry{key: "a"}
	l.pushFront(a)

	l.moveToFront(a)

	if l.head != a || l.tail != a {
		t.Fatalf("single-element list should be unaffected by moveToFront")
	}
}

func TestList_UnlinkTail(t *testing.T) {
	var l list
	a, b := &entry{key: "a"}, &entry{key: "b"}
	l.pushFront(a)
	l.pushFront(b)

	l.unlink(a) // a is the tail
	if l.tail != b || l.head != b {
		t.Fatalf("expected b to be sole remaining node")
	}
	if l.size != 1 {
		t.Fatalf("expected size 1 after unlink, got %d", l.size)
	}
}
