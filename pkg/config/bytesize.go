package config

import (
	"reflect"
	"strings"

	"github.com/arthur-debert/jungle/pkg/errors"
	"github.com/docker/go-units"
	"github.com/go-viper/mapstructure/v2"
)

// ByteSize is a size in bytes that decodes from integers or human sizes
type ByteSize int64

// String renders the size in decimal units, e.g. "1.5GB"
func (b ByteSize) String() string {
	return units.HumanSize(float64(b))
}

// ParseByteSize accepts plain byte counts, decimal sizes ("500MB") and
// binary sizes ("2GiB")
func ParseByteSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	var (
		n   int64
		err error
	)
	if strings.Contains(strings.ToLower(s), "ib") {
		n, err = units.RAMInBytes(s)
	} else {
		n, err = units.FromHumanSize(s)
	}
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrInvalidInput, "invalid size %q", s)
	}
	if n < 0 {
		return 0, errors.Newf(errors.ErrInvalidInput, "invalid size %q: must not be negative", s)
	}
	return n, nil
}

func byteSizeHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(ByteSize(0)) || f.Kind() != reflect.String {
			return data, nil
		}
		n, err := ParseByteSize(data.(string))
		if err != nil {
			return nil, err
		}
		return ByteSize(n), nil
	}
}
