package mapview

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	fontOnce      sync.Once
	fontMu        sync.Mutex
	fontFaceCache = make(map[fontKey]font.Face)
	regularFont   *opentype.Font
	boldFont      *opentype.Font
)

type fontKey struct {
	size float64
	bold bool
}

// fontFace returns a cached Go font face, falling back to the fixed bitmap
// face if the embedded TTFs cannot be parsed.
func fontFace(size float64, bold bool) font.Face {
	fontOnce.Do(func() {
		regularFont, _ = opentype.Parse(goregular.TTF)
		boldFont, _ = opentype.Parse(gobold.TTF)
	})

	src := regularFont
	if bold {
		src = boldFont
	}
	if src == nil {
		return basicfont.Face7x13
	}

	fontMu.Lock()
	defer fontMu.Unlock()

	key := fontKey{size: size, bold: bold}
	if face, ok := fontFaceCache[key]; ok {
		return face
	}

	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}

	fontFaceCache[key] = face
	return face
}
