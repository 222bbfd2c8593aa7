package chestconv

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
)

// SinglePath returns the path of the single chest atlas called name.
func SinglePath(folder, name string) string {
	return filepath.Join(folder, name+".png")
}

// DoublePath returns the path of the legacy double chest atlas called name.
func DoublePath(folder, name string) string {
	return filepath.Join(folder, name+"_double.png")
}

// LeftPath returns the path of the left half atlas called name.
func LeftPath(folder, name string) string {
	return filepath.Join(folder, name+"_left.png")
}

// RightPath returns the path of the right half atlas called name.
func RightPath(folder, name string) string {
	return filepath.Join(folder, name+"_right.png")
}

// PreviewPath returns the path of the preview sheet for name.
func PreviewPath(folder, name string) string {
	return filepath.Join(folder, name+"_preview.png")
}

var encoder = png.Encoder{CompressionLevel: png.BestCompression}

// LoadImage opens and decodes the image at path. PNG, JPEG, GIF and BMP
// are supported. Any failure is returned as a *DecodeError.
func LoadImage(path string) (image.Image, error) {
	input, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer input.Close()

	img, _, err := image.Decode(input)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	return img, nil
}

// SaveImage encodes img as a PNG at path. Any failure is returned as an
// *EncodeError.
func SaveImage(path string, img image.Image) error {
	return saveAll([]string{path}, []image.Image{img})
}

func encodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := encoder.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// stage writes data to a temporary file in the folder of path and returns
// the temporary file's name.
func stage(path string, data []byte) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", &EncodeError{Path: path, Err: err}
	}

	_, err = f.Write(data)
	if err == nil {
		err = f.Chmod(0644)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(f.Name())
		return "", &EncodeError{Path: path, Err: err}
	}

	return f.Name(), nil
}

// saveAll encodes and stages every image before moving any of them into
// place. If anything fails, staged files and outputs already moved are
// removed so no partial output remains.
func saveAll(paths []string, imgs []image.Image) error {
	encoded := make([][]byte, len(imgs))
	for i, img := range imgs {
		data, err := encodePNG(img)
		if err != nil {
			return &EncodeError{Path: paths[i], Err: err}
		}
		encoded[i] = data
	}

	temps := make([]string, 0, len(encoded))
	for i, data := range encoded {
		tmp, err := stage(paths[i], data)
		if err != nil {
			removeAll(temps)
			return err
		}
		temps = append(temps, tmp)
	}

	for i, tmp := range temps {
		if err := os.Rename(tmp, paths[i]); err != nil {
			removeAll(paths[:i])
			removeAll(temps[i:])
			return &EncodeError{Path: paths[i], Err: err}
		}
	}

	return nil
}

func removeAll(paths []string) {
	for _, path := range paths {
		os.Remove(path)
	}
}

// ConvertSingleFile converts from/name.png into to/name.png.
func ConvertSingleFile(from, to, name string, opts Options) error {
	_, err := convertSingleFile(from, to, name, opts)
	return err
}

func convertSingleFile(from, to, name string, opts Options) ([]image.Image, error) {
	src, err := LoadImage(SinglePath(from, name))
	if err != nil {
		return nil, err
	}

	single, err := ConvertSingle(src, opts)
	if err != nil {
		return nil, fmt.Errorf("chestconv: %s: %w", SinglePath(from, name), err)
	}

	if err := SaveImage(SinglePath(to, name), single); err != nil {
		return nil, err
	}

	return []image.Image{src, single}, nil
}

// ConvertDoubleFile converts from/name_double.png into to/name_left.png and
// to/name_right.png. Either both outputs are written or neither is.
func ConvertDoubleFile(from, to, name string, opts Options) error {
	_, err := convertDoubleFile(from, to, name, opts)
	return err
}

func convertDoubleFile(from, to, name string, opts Options) ([]image.Image, error) {
	src, err := LoadImage(DoublePath(from, name))
	if err != nil {
		return nil, err
	}

	left, right, err := ConvertDouble(src, opts)
	if err != nil {
		return nil, fmt.Errorf("chestconv: %s: %w", DoublePath(from, name), err)
	}

	err = saveAll([]string{LeftPath(to, name), RightPath(to, name)},
		[]image.Image{left, right})
	if err != nil {
		return nil, err
	}

	return []image.Image{src, left, right}, nil
}

// ConvertBothFiles runs ConvertSingleFile and then ConvertDoubleFile for
// name, stopping at the first failure. If the double conversion fails, the
// single output is removed again.
func ConvertBothFiles(from, to, name string, opts Options) error {
	if err := ConvertSingleFile(from, to, name, opts); err != nil {
		return err
	}
	if err := ConvertDoubleFile(from, to, name, opts); err != nil {
		os.Remove(SinglePath(to, name))
		return err
	}
	return nil
}
