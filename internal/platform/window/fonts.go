package window

import (
	"bytes"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	// Decoders for figure images
	_ "image/jpeg"
	_ "image/png"

	"github.com/vovakirdan/stripsim/internal/platform/assets"
)

// faces are the four text sizes used by the window.
type faces struct {
	normal *text.GoTextFace // 16
	small  *text.GoTextFace // 14
	title  *text.GoTextFace // 20
	tiny   *text.GoTextFace // 12
}

// loadFaces uses the first font found by the resolver and falls back to the
// Go fonts.
func loadFaces(r *assets.Resolver, logger *log.Logger) faces {
	regular := mustSource(goregular.TTF)
	bold := mustSource(gobold.TTF)

	if path, data, err := r.Read(assets.FontNames); err == nil {
		if src, err := text.NewGoTextFaceSource(bytes.NewReader(data)); err == nil {
			logger.Debug("font loaded", "path", path)
			regular, bold = src, src
		} else {
			logger.Warn("could not parse font, using built-in", "path", path, "error", err)
		}
	}

	return faces{
		normal: &text.GoTextFace{Source: regular, Size: 16},
		small:  &text.GoTextFace{Source: regular, Size: 14},
		title:  &text.GoTextFace{Source: bold, Size: 20},
		tiny:   &text.GoTextFace{Source: regular, Size: 12},
	}
}

func mustSource(ttf []byte) *text.GoTextFaceSource {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		panic(err)
	}
	return src
}

// loadFigure returns the scanned drum figure, or nil when none is available
// and the figure is generated instead.
func loadFigure(r *assets.Resolver, logger *log.Logger) *ebiten.Image {
	path, err := r.Resolve(assets.FigureNames)
	if err != nil {
		return nil
	}
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		logger.Warn("could not load figure, generating one", "path", path, "error", err)
		return nil
	}
	logger.Debug("figure loaded", "path", path)
	return img
}
