package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readerOf(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

// pipedStdin makes GetPassword read from the supplied reader.
func pipedStdin(t *testing.T) {
	t.Helper()
	old := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = old })
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(readerOf("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(readerOf("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(readerOf(""), "Name?", &out)
	assert.Error(t, err)
}

func TestGetMultiline_DoubleEnter(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(readerOf("a\nb\n\n\n"), "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)
}

func TestGetPassword_Terminal(t *testing.T) {
	oldTerm, oldRead := isTerminal, readPassword
	t.Cleanup(func() { isTerminal, readPassword = oldTerm, oldRead })
	isTerminal = func(int) bool { return true }

	readPassword = func(int) ([]byte, error) { return []byte("s3cret!"), nil }
	var out bytes.Buffer
	got, err := GetPassword(readerOf(""), "Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret!", got)
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(readerOf(""), "Enter password", &out)
	assert.Error(t, err)
}

func TestGetPassword_Piped(t *testing.T) {
	pipedStdin(t)
	var out bytes.Buffer
	got, err := GetPassword(readerOf("from-pipe\nnext\n"), "Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, "from-pipe", got)
}

func TestGetList(t *testing.T) {
	var out bytes.Buffer
	got, err := GetList(readerOf("ai, llm ,\n"), "Tags", &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"ai", " llm ", ""}, got)

	got, err = GetList(readerOf("\n"), "Tags", &out)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, Confirm(readerOf("y\n"), "Sure?", &out))
	assert.True(t, Confirm(readerOf("YES\n"), "Sure?", &out))
	assert.False(t, Confirm(readerOf("\n"), "Sure?", &out))
	assert.False(t, Confirm(readerOf(""), "Sure?", &out))
}
