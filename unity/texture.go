package unity

import (
	"github.com/binzume/autosetup/texture"
)

// TextureMetaWriter writes TextureImporter settings for source textures.
type TextureMetaWriter struct {
	Assets *AssetDB
}

func NewTextureMetaWriter(assets *AssetDB) *TextureMetaWriter {
	return &TextureMetaWriter{Assets: assets}
}

func (w *TextureMetaWriter) WriteTextureMeta(path string, hint texture.ImportHint) error {
	if _, err := w.Assets.GUID(path); err != nil {
		return err
	}
	meta, err := ReadMeta(path)
	if err != nil {
		return err
	}
	ti := meta.Importer("TextureImporter")
	ti = setKey(ti, "sRGBTexture", boolInt(hint.SRGB))
	ti = setKey(ti, "textureType", int(hint.Type))
	ti = setKey(ti, "convertToNormalMap", boolInt(hint.ConvertToNormalMap))
	if hint.ConvertToNormalMap {
		ti = setKey(ti, "heightScale", hint.HeightmapScale)
	}
	ti = setKey(ti, "alphaIsTransparency", boolInt(hint.AlphaIsTransparency))
	if hint.MaxSize > 0 {
		ti = setKey(ti, "maxTextureSize", hint.MaxSize)
	}
	meta.Set("TextureImporter", ti)
	return meta.Save()
}
