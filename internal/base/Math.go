package base

import (
	"strconv"

	"golang.org/x/exp/constraints"
)

/***************************************
 * Decimal formatting
 ***************************************/

func FormatUnsigned[T constraints.Unsigned](value T) string {
	return strconv.FormatUint(uint64(value), 10)
}

func ParseUnsigned[T constraints.Unsigned](in string, bitSize int) (T, error) {
	value, err := strconv.ParseUint(in, 10, bitSize)
	return T(value), err
}
