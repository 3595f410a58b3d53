package render

import "io"

// Key is one recognized keyboard command decoded from raw stdin bytes.
type Key uint8

const (
	// KeyNone marks a byte with no binding.
	KeyNone Key = iota
	// KeySpace toggles pause.
	KeySpace
	// KeyQuit is q or Ctrl+C.
	KeyQuit
	// KeySkip is s.
	KeySkip
	// KeyStop is x.
	KeyStop
	// KeyAddRound is a.
	KeyAddRound
	// KeyDropRound is d.
	KeyDropRound
)

const (
	ctrlC = 0x03
	esc   = 0x1b
)

// maxKeyTailBytes bounds the partial escape sequence carried between
// reads so a malformed sequence cannot grow the tail without limit.
const maxKeyTailBytes = 16

// keyBufferSize is the capacity of the pump's key channel. The pump
// drops keys when no listener is consuming, rather than block.
const keyBufferSize = 16

// pump reads raw terminal input and republishes decoded keys on ch.
// A Read blocked on stdin cannot be cancelled, so the pump is started
// once per process and shared by every phase; it exits when the reader
// returns an error.
func pump(r io.Reader, ch chan<- Key) {
	buf := make([]byte, 256)

	var tail []byte

	for {
		n, err := r.Read(buf)

		if n > 0 {
			var keys []Key

			keys, tail = decodeKeys(tail, buf[:n])
			for _, key := range keys {
				select {
				case ch <- key:
				default:
				}
			}
		}

		if err != nil {
			return
		}
	}
}

// decodeKeys translates a chunk of raw input bytes into recognized keys.
// CSI and SS3 escape sequences are consumed and discarded so that arrow
// and function keys never alias onto the letter bindings. A partial
// sequence at the end of the chunk is carried over in the returned tail.
func decodeKeys(tail, chunk []byte) (keys []Key, newTail []byte) {
	combined := make([]byte, 0, len(tail)+len(chunk))
	combined = append(combined, tail...)
	combined = append(combined, chunk...)

	i := 0

	for i < len(combined) {
		if combined[i] != esc {
			if key := keyFor(combined[i]); key != KeyNone {
				keys = append(keys, key)
			}

			i++

			continue
		}

		if i+1 >= len(combined) {
			break
		}

		next := combined[i+1]
		if next == '[' {
			// CSI: skip to the final byte in 0x40..0x7e.
			j := i + 2
			for ; j < len(combined); j++ {
				if combined[j] >= 0x40 && combined[j] <= 0x7e {
					break
				}
			}

			if j >= len(combined) {
				break
			}

			i = j + 1

			continue
		}

		if next == 'O' {
			// SS3: one final byte follows.
			if i+2 >= len(combined) {
				break
			}

			i += 3

			continue
		}

		// Standalone escape; the following byte is ordinary input.
		i++
	}

	rem := combined[i:]
	if len(rem) > maxKeyTailBytes {
		rem = rem[len(rem)-maxKeyTailBytes:]
	}

	newTail = make([]byte, len(rem))
	copy(newTail, rem)

	return keys, newTail
}

func keyFor(b byte) Key {
	switch b {
	case ' ':
		return KeySpace
	case 'q', ctrlC:
		return KeyQuit
	case 's':
		return KeySkip
	case 'x':
		return KeyStop
	case 'a':
		return KeyAddRound
	case 'd':
		return KeyDropRound
	default:
		return KeyNone
	}
}
