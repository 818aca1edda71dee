package imgutil

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
)

// JPEGMIMEType は CompressToJPEG が出力する画像の MIME タイプです。
const JPEGMIMEType = "image/jpeg"

// CompressToJPEG は画像データ（PNG, GIF, JPEG等）をJPEG形式に圧縮します。
// image.Decodeがサポートするフォーマットに対応しています。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CompressPayload は送信ペイロードを JPEG に圧縮し、サイズが小さくなった場合のみ採用します。
// 圧縮できない、または効果がない場合は元のデータと MIME タイプをそのまま返します。
func CompressPayload(data []byte, mimeType string, quality int) ([]byte, string) {
	compressed, err := CompressToJPEG(data, quality)
	if err != nil || len(compressed) >= len(data) {
		return data, mimeType
	}
	return compressed, JPEGMIMEType
}
