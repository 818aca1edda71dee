package imgutil

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	dataURLScheme = "data:"
	base64Marker  = ";base64,"
)

// ErrInvalidDataURL は base64 形式のデータURLとして解釈できない場合のエラーです。
var ErrInvalidDataURL = errors.New("invalid base64 data URL")

// EncodeDataURL はバイト列を data:<mime>;base64,<payload> 形式に変換します。
func EncodeDataURL(mimeType string, data []byte) string {
	return dataURLScheme + mimeType + base64Marker + base64.StdEncoding.EncodeToString(data)
}

// SplitDataURL はデータURLのヘッダーを取り除き、MIMEタイプとbase64ペイロードを返します。
// ペイロード自体のデコードは行いません。
func SplitDataURL(s string) (mimeType, payload string, err error) {
	if !strings.HasPrefix(s, dataURLScheme) {
		return "", "", fmt.Errorf("%w: missing data scheme", ErrInvalidDataURL)
	}
	header, payload, found := strings.Cut(s[len(dataURLScheme):], base64Marker)
	if !found {
		return "", "", fmt.Errorf("%w: not base64 encoded", ErrInvalidDataURL)
	}
	// パラメータ (charset 等) は MIME タイプから除外する
	mimeType, _, _ = strings.Cut(header, ";")
	if mimeType == "" {
		return "", "", fmt.Errorf("%w: empty media type", ErrInvalidDataURL)
	}
	return mimeType, payload, nil
}

// DecodeDataURL はデータURLを MIMEタイプとバイト列に復元します。
func DecodeDataURL(s string) (string, []byte, error) {
	mimeType, payload, err := SplitDataURL(s)
	if err != nil {
		return "", nil, err
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return mimeType, data, nil
}
