package ws

// RingBuffer is a fixed-size circular buffer holding the frames replayed
// to clients that join mid-game. O(1) append, oldest frames overwritten.
type RingBuffer struct {
	data [][]byte
	head int // next write position
	size int // current number of elements
	cap  int
}

// NewRingBuffer creates a ring buffer with the given capacity
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{
		data: make([][]byte, capacity),
		cap:  capacity,
	}
}

// Add appends a frame, overwriting the oldest when full
func (rb *RingBuffer) Add(msg []byte) {
	// Copy so later mutation of the caller's slice cannot corrupt history
	copied := make([]byte, len(msg))
	copy(copied, msg)

	rb.data[rb.head] = copied
	rb.head = (rb.head + 1) % rb.cap

	if rb.size < rb.cap {
		rb.size++
	}
}

// GetAll returns the stored frames oldest first
func (rb *RingBuffer) GetAll() [][]byte {
	if rb.size == 0 {
		return nil
	}

	result := make([][]byte, rb.size)
	if rb.size < rb.cap {
		copy(result, rb.data[:rb.size])
	} else {
		// Full buffer, head points at the oldest element
		copy(result, rb.data[rb.head:])
		copy(result[rb.cap-rb.head:], rb.data[:rb.head])
	}
	return result
}

// Len returns the current number of stored frames
func (rb *RingBuffer) Len() int {
	return rb.size
}
