package hashid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashEncode(t *testing.T) {
	asserts := assert.New(t)

	{
		res, err := HashEncode([]int{1, 2, 3})
		asserts.NoError(err)
		asserts.NotEmpty(res)
	}

	{
		res, err := HashEncode([]int{})
		asserts.Error(err)
		asserts.Empty(res)
	}
}

func TestHashDecode(t *testing.T) {
	asserts := assert.New(t)

	res, _ := HashEncode([]int{1, 2, 3})
	decoded, err := HashDecode(res)
	asserts.NoError(err)
	asserts.Equal([]int{1, 2, 3}, decoded)
}

func TestDecodeHashID(t *testing.T) {
	asserts := assert.New(t)

	{
		uid, err := DecodeHashID(HashID(42, UserID), UserID)
		asserts.NoError(err)
		asserts.EqualValues(42, uid)
	}

	// kind mismatch
	{
		uid, err := DecodeHashID(HashID(42, UserID), NotificationID)
		asserts.ErrorIs(err, ErrTypeNotMatch)
		asserts.EqualValues(0, uid)
	}

	// garbage
	{
		_, err := DecodeHashID("not a hash", UserID)
		asserts.Error(err)
	}
}
