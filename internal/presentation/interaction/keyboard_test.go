package interaction

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestParseInput(t *testing.T) {
	kr := newKeyboardReader(strings.NewReader(""))

	tests := []struct {
		name     string
		input    []byte
		expected *KeyEvent
	}{
		{"regular char", []byte{'a'}, &KeyEvent{Key: 'a', Type: KeyChar}},
		{"ctrl+c", []byte{3}, &KeyEvent{Key: 3, Type: KeyChar}},
		{"escape", []byte{27}, &KeyEvent{Key: 27, Type: KeyEscape}},
		{"arrow key", []byte{27, '[', 'A'}, nil},
		{"cyrillic", []byte("к"), &KeyEvent{Key: 'к', Type: KeyChar}},
		{"invalid utf-8", []byte{0xff}, nil},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, kr.parseInput(tt.input))
		})
	}
}

func TestReadInputDeliversKeys(t *testing.T) {
	r, w := io.Pipe()
	kr := newKeyboardReader(r)
	go kr.readInput()

	_, err := w.Write([]byte("r"))
	require.NoError(t, err)

	select {
	case ev := <-kr.Events():
		assert.Equal(t, KeyEvent{Key: 'r', Type: KeyChar}, ev)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for key")
	}

	require.NoError(t, w.Close())
	require.NoError(t, kr.Close(), "no terminal state to restore")
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		event KeyEvent
		want  Action
	}{
		{KeyEvent{Key: 'r'}, ActionReset},
		{KeyEvent{Key: 'R'}, ActionReset},
		{KeyEvent{Key: 'к'}, ActionReset},
		{KeyEvent{Key: 'h'}, ActionHistory},
		{KeyEvent{Key: 'р'}, ActionHistory},
		{KeyEvent{Key: 'q'}, ActionQuit},
		{KeyEvent{Key: 'й'}, ActionQuit},
		{KeyEvent{Key: 3}, ActionQuit},
		{KeyEvent{Key: 27, Type: KeyEscape}, ActionNone},
		{KeyEvent{Key: 'x'}, ActionNone},
	}

	for _, tt := range tests {
		t.Run(string(tt.event.Key)+"->"+tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ActionFor(tt.event))
		})
	}
}

func TestApplyRawMode(t *testing.T) {
	state := unix.Termios{
		Lflag: unix.ECHO | unix.ICANON | unix.ISIG,
		Iflag: unix.ICRNL | unix.IXON,
	}

	raw := applyRawMode(&state)

	assert.Zero(t, raw.Lflag&unix.ECHO)
	assert.Zero(t, raw.Lflag&unix.ICANON)
	assert.NotZero(t, raw.Lflag&unix.ISIG, "Ctrl+C keeps raising SIGINT")
	assert.Zero(t, raw.Iflag&unix.ICRNL)
	assert.EqualValues(t, 1, raw.Cc[unix.VMIN])
	assert.NotZero(t, state.Lflag&unix.ECHO, "input state is not modified")
}
