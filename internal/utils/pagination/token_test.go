package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeCursor(t *testing.T) {
	token := EncodeCursor(Cursor{Offset: 20, LastID: "txn_020"})
	assert.NotEmpty(t, token, "Token should not be empty")

	c, err := DecodeCursor(token)
	assert.NoError(t, err)
	assert.Equal(t, 20, c.Offset)
	assert.Equal(t, "txn_020", c.LastID)
}

func TestDecodeCursorError(t *testing.T) {
	_, err := DecodeCursor("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	_, err = DecodeCursor(EncodeMultiFieldToken("only-one-field"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, err = DecodeCursor(EncodeMultiFieldToken("-3", "x"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "offset parse")
}

func TestPage(t *testing.T) {
	rows := []string{"a", "b", "c", "d", "e"}
	id := func(s string) string { return s }

	first, next, err := Page(rows, nil, 2, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, first)
	require.NotNil(t, next)

	second, next, err := Page(rows, next, 2, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, second)
	require.NotNil(t, next)

	last, next, err := Page(rows, next, 2, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"e"}, last)
	assert.Nil(t, next)
}

func TestPage_NoLimitReturnsEverything(t *testing.T) {
	rows := []int{1, 2, 3}
	got, next, err := Page(rows, nil, 0, func(i int) string { return "" })
	require.NoError(t, err)
	assert.Equal(t, rows, got)
	assert.Nil(t, next)
}

func TestPage_StaleToken(t *testing.T) {
	rows := []string{"a", "b", "c"}
	stale := EncodeCursor(Cursor{Offset: 2, LastID: "z"})

	_, _, err := Page(rows, &stale, 1, func(s string) string { return s })
	assert.Error(t, err)

	tooFar := EncodeCursor(Cursor{Offset: 9, LastID: "c"})
	_, _, err = Page(rows, &tooFar, 1, func(s string) string { return s })
	assert.Error(t, err)
}

func TestMultiFieldToken(t *testing.T) {
	fields := []string{"field1", "field2", "field3"}
	token := EncodeMultiFieldToken(fields...)

	decoded, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err)
	assert.Equal(t, fields, decoded)
}
