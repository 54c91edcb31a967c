package hashid

import (
	"errors"

	"github.com/docfold/docfold/pkg/conf"
	"github.com/speps/go-hashids"
)

// ID kinds, encoded alongside the value so one kind cannot be replayed as another.
const (
	UserID = iota + 1
	NotificationID
	GroupID
)

var (
	// ErrTypeNotMatch the decoded ID belongs to another kind
	ErrTypeNotMatch = errors.New("mismatched ID type")
)

func newCodec() (*hashids.HashID, error) {
	hd := hashids.NewData()
	hd.Salt = conf.SystemConfig.HashIDSalt
	hd.MinLength = 4
	return hashids.NewWithData(hd)
}

// HashEncode encodes v with the configured salt.
func HashEncode(v []int) (string, error) {
	h, err := newCodec()
	if err != nil {
		return "", err
	}

	return h.Encode(v)
}

// HashDecode reverses HashEncode.
func HashDecode(raw string) ([]int, error) {
	h, err := newCodec()
	if err != nil {
		return []int{}, err
	}

	return h.DecodeWithError(raw)
}

// HashID encodes a primary key of kind t.
func HashID(id uint, t int) string {
	v, _ := HashEncode([]int{int(id), t})
	return v
}

// DecodeHashID decodes a key produced by HashID for kind t.
func DecodeHashID(id string, t int) (uint, error) {
	v, _ := HashDecode(id)
	if len(v) != 2 || v[1] != t {
		return 0, ErrTypeNotMatch
	}
	return uint(v[0]), nil
}
