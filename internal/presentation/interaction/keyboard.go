package interaction

import (
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// KeyboardReader handles keyboard input in raw mode
type KeyboardReader struct {
	in       io.Reader
	fd       int
	oldState *unix.Termios
	input    chan KeyEvent
	stop     chan struct{}
}

// KeyEvent represents a keyboard event
type KeyEvent struct {
	Key  rune
	Type KeyType
}

// KeyType represents the type of key pressed
type KeyType int

const (
	KeyChar KeyType = iota
	KeyEscape
)

const keyCtrlC = 3

// IsTerminal reports whether stdin is an interactive terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// NewKeyboardReader puts stdin in raw mode and starts reading keys
func NewKeyboardReader() (*KeyboardReader, error) {
	kr := newKeyboardReader(os.Stdin)
	kr.fd = int(os.Stdin.Fd())

	// Set terminal to raw mode
	if err := kr.enableRawMode(); err != nil {
		return nil, err
	}

	go kr.readInput()
	return kr, nil
}

func newKeyboardReader(in io.Reader) *KeyboardReader {
	return &KeyboardReader{
		in:    in,
		fd:    -1,
		input: make(chan KeyEvent, 10),
		stop:  make(chan struct{}),
	}
}

// readInput reads keyboard input until the reader fails or Close is called
func (kr *KeyboardReader) readInput() {
	buf := make([]byte, 3)

	for {
		n, err := kr.in.Read(buf)
		if n > 0 {
			if event := kr.parseInput(buf[:n]); event != nil {
				select {
				case kr.input <- *event:
				case <-kr.stop:
					return
				}
			}
		}
		if err != nil {
			return
		}

		select {
		case <-kr.stop:
			return
		default:
		}
	}
}

// parseInput parses raw keyboard input
func (kr *KeyboardReader) parseInput(buf []byte) *KeyEvent {
	if len(buf) == 0 {
		return nil
	}

	// Handle Ctrl+C
	if buf[0] == keyCtrlC {
		return &KeyEvent{Key: keyCtrlC, Type: KeyChar}
	}

	// Escape sequences (arrows etc.) are ignored; a lone ESC is a key
	if buf[0] == 27 {
		if len(buf) == 1 {
			return &KeyEvent{Key: 27, Type: KeyEscape}
		}
		return nil
	}

	// Handle regular characters, including multi-byte UTF-8 ones
	r, _ := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return nil
	}
	return &KeyEvent{Key: r, Type: KeyChar}
}

// Events returns the keyboard event channel
func (kr *KeyboardReader) Events() <-chan KeyEvent {
	return kr.input
}

// Close stops the keyboard reader and restores terminal
func (kr *KeyboardReader) Close() error {
	close(kr.stop)
	return kr.disableRawMode()
}

// applyRawMode derives the raw-mode settings from the current ones. ISIG
// stays enabled so Ctrl+C still raises SIGINT.
func applyRawMode(state *unix.Termios) unix.Termios {
	raw := *state
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	return raw
}

// enableRawMode sets the terminal to raw mode
func (kr *KeyboardReader) enableRawMode() error {
	oldState, err := unix.IoctlGetTermios(kr.fd, ioctlGetTermios)
	if err != nil {
		return err
	}
	kr.oldState = oldState

	newState := applyRawMode(oldState)
	return unix.IoctlSetTermios(kr.fd, ioctlSetTermios, &newState)
}

// disableRawMode restores the terminal to normal mode
func (kr *KeyboardReader) disableRawMode() error {
	if kr.oldState == nil {
		return nil
	}
	return unix.IoctlSetTermios(kr.fd, ioctlSetTermios, kr.oldState)
}
