package service

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/yizeng/geoshapes/internal/artwork"
	"github.com/yizeng/geoshapes/internal/domain"
)

// previewTokenIDs are shown while the wallet holds no selected token.
var previewTokenIDs = []uint64{2, 3, 4, 5}

type TokenView struct {
	ID       domain.TokenID  `json:"token_id"`
	Geometry domain.Geometry `json:"geometry"`
	Size     int             `json:"size"`
}

type ArtworkService struct{}

func NewArtworkService() *ArtworkService {
	return &ArtworkService{}
}

func (s *ArtworkService) View(t domain.TokenID) TokenView {
	return TokenView{
		ID:       t,
		Geometry: domain.DeriveGeometry(t),
		Size:     artwork.ShapeSize(t),
	}
}

// Image returns the SVG for t and its content hash, suitable as an ETag.
func (s *ArtworkService) Image(t domain.TokenID) ([]byte, string) {
	svg := artwork.Render(t, domain.DeriveGeometry(t))

	h := sha3.NewLegacyKeccak256()
	h.Write(svg)

	return svg, `"` + hex.EncodeToString(h.Sum(nil)) + `"`
}

func (s *ArtworkService) Previews() []TokenView {
	views := make([]TokenView, 0, len(previewTokenIDs))
	for _, id := range previewTokenIDs {
		views = append(views, s.View(domain.NewTokenID(id)))
	}

	return views
}
