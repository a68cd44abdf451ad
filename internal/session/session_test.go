package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_Unsaved_NilUntilSourceIsSet(t *testing.T) {
	s := &Session{filename: "/t/a.cpp"}
	assert.Nil(t, s.unsaved())

	s.SetSource([]byte(""))
	unsaved := s.unsaved()
	if assert.Len(t, unsaved, 1) {
		assert.Equal(t, "/t/a.cpp", unsaved[0].Filename)
		assert.Equal(t, "", string(unsaved[0].Contents))
	}
}

func TestSession_SetSource_GrowsBufferWhenContentExceedsCapacity(t *testing.T) {
	s := &Session{filename: "/t/a.cpp"}

	s.SetSource([]byte("int main() {}"))
	assert.Equal(t, "int main() {}", string(s.buffer))
	firstCap := cap(s.buffer)
	assert.GreaterOrEqual(t, firstCap, len("int main() {}"))

	big := make([]byte, firstCap+1)
	for i := range big {
		big[i] = 'x'
	}
	s.SetSource(big)
	assert.Equal(t, len(big), len(s.buffer))
	assert.GreaterOrEqual(t, cap(s.buffer), len(big))
	assert.Equal(t, big, s.buffer)
}

func TestSession_SetSource_ReusesBackingArrayWhenCapacitySuffices(t *testing.T) {
	s := &Session{filename: "/t/a.cpp"}

	s.SetSource(make([]byte, 100))
	reusedCap := cap(s.buffer)

	s.SetSource([]byte("short"))
	assert.Equal(t, "short", string(s.buffer))
	assert.Equal(t, reusedCap, cap(s.buffer))
}
