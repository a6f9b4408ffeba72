package series

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/datavis3d/internal/gradient"
	"github.com/san-kum/datavis3d/internal/scene"
)

// GradientWidth is the texel count of baked gradient textures.
const GradientWidth = 256

// Role picks the base or one of the highlight colours of a style.
type Role int

const (
	RoleBase Role = iota
	RoleSingleHighlight
	RoleMultiHighlight
)

func (s Style) Color(r Role) colorful.Color {
	switch r {
	case RoleSingleHighlight:
		return s.SingleHighlightColor
	case RoleMultiHighlight:
		return s.MultiHighlightColor
	}
	return s.BaseColor
}

func (s Style) Gradient(r Role) gradient.Gradient {
	switch r {
	case RoleSingleHighlight:
		return s.SingleHighlightGradient
	case RoleMultiHighlight:
		return s.MultiHighlightGradient
	}
	return s.BaseGradient
}

// Textures holds the baked gradients of a style, one per Role.
type Textures [3]scene.TextureID

// BakeTextures uploads the three gradients of s. Styles without gradient
// colouring need none.
func BakeTextures(b scene.Backend, s Style) (Textures, error) {
	var t Textures
	if !s.UsesGradient() {
		return t, nil
	}
	for r := RoleBase; r <= RoleMultiHighlight; r++ {
		pix, err := s.Gradient(r).Texture(GradientWidth)
		if err != nil {
			return t, err
		}
		t[r] = b.CreateTexture(scene.Texture{Width: len(pix), Height: 1, Pix: pix})
	}
	return t, nil
}

// ReleaseTextures frees the textures of t on b.
func ReleaseTextures(b scene.Backend, t *Textures) {
	for i, id := range t {
		if id != 0 {
			b.DestroyTexture(id)
			t[i] = 0
		}
	}
}

// Material resolves the colour of an item in role r. gradientPos is the
// range gradient lookup and is ignored by the other colour styles.
func (s Style) Material(r Role, gradientPos float64, tex Textures) scene.Material {
	m := scene.Material{Smooth: s.MeshSmooth}
	switch s.ColorStyle {
	case ColorObjectGradient:
		m.Texture = tex[r]
		m.GradientPosition = 1
		m.Color = s.Gradient(r).RGBA(1)
	case ColorRangeGradient:
		m.Texture = tex[r]
		m.GradientPosition = gradientPos
		m.Color = s.Gradient(r).RGBA(gradientPos)
	default:
		m.Color = gradient.ToRGBA(s.Color(r))
	}
	return m
}
