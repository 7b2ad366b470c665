package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/mdouchement/hdr"
	_ "github.com/mdouchement/hdr/codec/rgbe"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Pixels is a decoded 8-bit image, rows top to bottom, Channels bytes per pixel.
type Pixels struct {
	Width    int
	Height   int
	Channels int
	Data     []byte
}

// HDRPixels is a decoded floating-point RGB image, rows bottom to top.
type HDRPixels struct {
	Width  int
	Height int
	Data   []float32
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &TextureDecodeError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &TextureDecodeError{Path: path, Err: err}
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, &TextureDecodeError{Path: path, Err: fmt.Errorf("empty image")}
	}
	return img, nil
}

// DecodeImage decodes an 8-bit image keeping its natural channel count:
// 1 for grayscale, 3 for opaque color, 4 for color with alpha.
func DecodeImage(path string) (*Pixels, error) {
	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	return imagePixels(img), nil
}

func imageChannels(img image.Image) int {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return 1
	case color.YCbCrModel, color.CMYKModel:
		return 3
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}

func imagePixels(img image.Image) *Pixels {
	b := img.Bounds()
	px := &Pixels{Width: b.Dx(), Height: b.Dy(), Channels: imageChannels(img)}

	if px.Channels == 1 {
		gray := image.NewGray(image.Rect(0, 0, px.Width, px.Height))
		draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
		px.Data = gray.Pix
		return px
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, px.Width, px.Height))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	if px.Channels == 4 {
		px.Data = nrgba.Pix
		return px
	}

	px.Data = make([]byte, 0, px.Width*px.Height*3)
	for i := 0; i < len(nrgba.Pix); i += 4 {
		px.Data = append(px.Data, nrgba.Pix[i], nrgba.Pix[i+1], nrgba.Pix[i+2])
	}
	return px
}

// DecodeHDR decodes an environment map to linear float RGB and flips it
// vertically, since image rows start at the top and texture rows at the bottom.
// Radiance files keep their full range; 8-bit files are normalized to [0,1].
func DecodeHDR(path string) (*HDRPixels, error) {
	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	px := &HDRPixels{Width: b.Dx(), Height: b.Dy(), Data: make([]float32, 0, b.Dx()*b.Dy()*3)}

	hdrImg, isHDR := img.(hdr.Image)
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
		for x := b.Min.X; x < b.Max.X; x++ {
			if isHDR {
				r, g, bl, _ := hdrImg.HDRAt(x, y).HDRRGBA()
				px.Data = append(px.Data, float32(r), float32(g), float32(bl))
				continue
			}
			r, g, bl, _ := img.At(x, y).RGBA()
			px.Data = append(px.Data, float32(r)/0xffff, float32(g)/0xffff, float32(bl)/0xffff)
		}
	}
	return px, nil
}

// formatForChannels maps a channel count to the matching GL pixel format.
func formatForChannels(channels int) (int32, error) {
	switch channels {
	case 1:
		return gl.RED, nil
	case 3:
		return gl.RGB, nil
	case 4:
		return gl.RGBA, nil
	}
	return 0, fmt.Errorf("unsupported channel count %d", channels)
}
