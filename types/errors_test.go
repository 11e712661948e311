package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	require.Equal(t, "invalid frame: non-positive dimensions 0x2", ErrInvalidFrame{Width: 0, Height: 2}.Error())
	require.Equal(t, "invalid frame 2x2: got 3 bytes, expected 4", ErrInvalidFrame{Width: 2, Height: 2, Length: 3, Expected: 4}.Error())
	require.Equal(t, "invalid frame: dimensions 70000x70000 are too large", ErrInvalidFrame{Width: 70000, Height: 70000, Expected: -1}.Error())

	cause := fmt.Errorf("out of texture memory")
	err := fmt.Errorf("publish: %w", ErrAllocationFailure{Size: 16, Err: cause})
	var errAlloc ErrAllocationFailure
	require.True(t, errors.As(err, &errAlloc))
	require.Equal(t, 16, errAlloc.Size)
	require.ErrorIs(t, err, cause)

	err = ErrConversionFailure{Err: cause}
	require.ErrorIs(t, err, cause)
	require.Equal(t, "conversion failure", ErrConversionFailure{}.Error())
}
