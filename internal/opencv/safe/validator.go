package safe

import (
	"fmt"

	"gocv.io/x/gocv"
)

// MaxDimension bounds either side of any Mat this package allocates.
const MaxDimension = 32768

func ValidateMatForOperation(mat *Mat, operation string) error {
	if mat == nil {
		return fmt.Errorf("Mat is nil for operation: %s", operation)
	}
	if !mat.IsValid() {
		return fmt.Errorf("Mat is invalid for operation: %s", operation)
	}
	if mat.Empty() {
		return fmt.Errorf("Mat is empty for operation: %s", operation)
	}
	return ValidateDimensions(mat.Cols(), mat.Rows(), operation)
}

// ValidateSingleChannel requires an 8-bit single-channel Mat, the layout of
// every mask and template.
func ValidateSingleChannel(mat *Mat, operation string) error {
	if err := ValidateMatForOperation(mat, operation); err != nil {
		return err
	}
	if mat.Type() != gocv.MatTypeCV8UC1 {
		return fmt.Errorf("%s requires an 8-bit single-channel Mat, got type %d", operation, int(mat.Type()))
	}
	return nil
}

func ValidateSameSize(a, b *Mat, operation string) error {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return fmt.Errorf("size mismatch for operation %s: %dx%d vs %dx%d",
			operation, a.Cols(), a.Rows(), b.Cols(), b.Rows())
	}
	return nil
}

func ValidateDimensions(width, height int, operation string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d for operation: %s", width, height, operation)
	}
	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("dimensions %dx%d exceed maximum size for operation: %s", width, height, operation)
	}
	return nil
}
