package menu

import "bufio"

// Key 是菜单识别的按键。
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyEnter
	KeyBack // Esc 或 q
	KeyInterrupt
	KeyOther
)

func decodeKey(buf []byte) Key {
	if len(buf) == 0 {
		return KeyNone
	}
	switch buf[0] {
	case 0x1b:
		if len(buf) == 3 && buf[1] == '[' {
			switch buf[2] {
			case 'A':
				return KeyUp
			case 'B':
				return KeyDown
			}
			return KeyOther
		}
		if len(buf) == 1 {
			return KeyBack
		}
		return KeyOther
	case '\r', '\n':
		return KeyEnter
	case 'q', 'Q':
		return KeyBack
	case 'k', 'w':
		return KeyUp
	case 'j', 's':
		return KeyDown
	case 3:
		return KeyInterrupt
	}
	return KeyOther
}

// readKey 读取一个按键；方向键是 ESC [ A/B 三个字节。
func readKey(r *bufio.Reader) (Key, error) {
	b, err := r.ReadByte()
	if err != nil {
		return KeyNone, err
	}
	buf := []byte{b}
	if b == 0x1b && r.Buffered() > 0 {
		if next, _ := r.Peek(1); len(next) == 1 && next[0] == '[' {
			seq := make([]byte, 2)
			n, _ := r.Read(seq)
			buf = append(buf, seq[:n]...)
		}
	}
	return decodeKey(buf), nil
}
