package conversion

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"ordinal-complexity/internal/models"
	"ordinal-complexity/internal/opencv/safe"
)

// ConvertToGrayscale converts multi-channel images to single-channel grayscale
// with OpenCV's luminance weights.
func ConvertToGrayscale(src *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "grayscale conversion"); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if src.Channels() == 1 {
		return src.Clone()
	}

	dst, err := safe.Alloc(src.Rows(), src.Cols(), gocv.MatTypeCV8UC1, "gray")
	if err != nil {
		return nil, fmt.Errorf("destination Mat creation failed: %w", err)
	}

	srcMat := src.GetMat()
	dstMat := dst.GetMat()

	switch src.Channels() {
	case 3:
		gocv.CvtColor(srcMat, &dstMat, gocv.ColorBGRToGray)
	case 4:
		gocv.CvtColor(srcMat, &dstMat, gocv.ColorBGRAToGray)
	default:
		dst.Close()
		return nil, fmt.Errorf("unsupported channel count: %d", src.Channels())
	}

	return dst, nil
}

// ImageToMat converts a decoded image to an 8-bit BGR Mat.
func ImageToMat(img image.Image) (*safe.Mat, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if err := safe.ValidateDimensions(width, height, "image to Mat conversion"); err != nil {
		return nil, err
	}

	data := make([]byte, 0, width*height*3)
	switch typed := img.(type) {
	case *image.RGBA:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				p := typed.RGBAAt(x+bounds.Min.X, y+bounds.Min.Y)
				data = append(data, p.B, p.G, p.R)
			}
		}
	case *image.NRGBA:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				p := typed.NRGBAAt(x+bounds.Min.X, y+bounds.Min.Y)
				data = append(data, p.B, p.G, p.R)
			}
		}
	case *image.Gray:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				v := typed.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y
				data = append(data, v, v, v)
			}
		}
	default:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
				data = append(data, uint8(b>>8), uint8(g>>8), uint8(r>>8))
			}
		}
	}

	return fromBytes(height, width, gocv.MatTypeCV8UC3, data, "bgr")
}

// MaskToMat copies a mask into a single-channel Mat.
func MaskToMat(mask *models.Mask) (*safe.Mat, error) {
	if mask == nil {
		return nil, fmt.Errorf("input mask is nil")
	}
	return fromBytes(mask.Height, mask.Width, gocv.MatTypeCV8UC1, mask.Pix, "mask")
}

// MatToMask copies a single-channel Mat into a mask. Any non-zero cell is
// covered.
func MatToMask(src *safe.Mat) (*models.Mask, error) {
	if err := safe.ValidateSingleChannel(src, "Mat to mask conversion"); err != nil {
		return nil, err
	}

	data, err := src.Bytes()
	if err != nil {
		return nil, err
	}

	mask := models.NewMask(src.Cols(), src.Rows())
	if len(data) != len(mask.Pix) {
		return nil, fmt.Errorf("mask buffer has %d bytes, want %d", len(data), len(mask.Pix))
	}
	copy(mask.Pix, data)
	return mask, nil
}

// ResizeNearest resizes src to width x height without blending values, so
// binary masks stay binary.
func ResizeNearest(src *safe.Mat, width, height int) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "Mat resizing"); err != nil {
		return nil, err
	}
	if err := safe.ValidateDimensions(width, height, "Mat resizing"); err != nil {
		return nil, err
	}

	if src.Cols() == width && src.Rows() == height {
		return src.Clone()
	}

	dst, err := safe.Alloc(height, width, src.Type(), src.Tag()+"_resized")
	if err != nil {
		return nil, err
	}

	srcMat := src.GetMat()
	dstMat := dst.GetMat()
	gocv.Resize(srcMat, &dstMat, image.Point{X: width, Y: height}, 0, 0, gocv.InterpolationNearestNeighbor)

	return dst, nil
}

func fromBytes(rows, cols int, matType gocv.MatType, data []byte, tag string) (*safe.Mat, error) {
	tmp, err := gocv.NewMatFromBytes(rows, cols, matType, data)
	if err != nil {
		return nil, fmt.Errorf("Mat creation from %d bytes failed: %w", len(data), err)
	}
	defer tmp.Close()

	return safe.CloneFrom(tmp, tag)
}
