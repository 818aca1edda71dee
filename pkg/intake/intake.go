package intake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/shouni/gemini-graffiti-kit/pkg/domain"
	"github.com/shouni/gemini-graffiti-kit/pkg/imgutil"
)

// DefaultMaxBytes は推奨されるアップロードサイズの上限です (10MB)。
// 上限は参考値であり、超えても受け付けます。
const DefaultMaxBytes int64 = 10 << 20

var (
	// ErrEmptyFile はファイルが空の場合のエラーです。
	ErrEmptyFile = errors.New("uploaded file is empty")
	// ErrNotImage は画像以外のファイルが選択された場合のエラーです。
	ErrNotImage = errors.New("uploaded file is not an image")
)

// HTTPClient は、URLから画像データを取得するためのインターフェースです。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Loader はユーザーが選択した画像を UploadedFile に変換します。
type Loader struct {
	httpClient HTTPClient
	maxBytes   int64
}

// NewLoader は Loader を初期化します。
// httpClient が nil の場合、FromURL は利用できません。
func NewLoader(httpClient HTTPClient, maxBytes int64) *Loader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Loader{httpClient: httpClient, maxBytes: maxBytes}
}

// FromBytes は画像データをデータURLに変換した UploadedFile を返します。
// declaredMIME が空の場合はデータの内容から判定します。
func (l *Loader) FromBytes(name, declaredMIME string, data []byte) (domain.UploadedFile, error) {
	if len(data) == 0 {
		return domain.UploadedFile{}, ErrEmptyFile
	}

	mimeType, err := resolveMIMEType(declaredMIME, data)
	if err != nil {
		return domain.UploadedFile{}, fmt.Errorf("%s: %w", name, err)
	}

	size := int64(len(data))
	if size > l.maxBytes {
		slog.Warn("推奨サイズを超える画像が選択されました", "name", name, "size", size, "limit", l.maxBytes)
	}

	return domain.UploadedFile{
		Name:     name,
		MIMEType: mimeType,
		Size:     size,
		Data:     data,
		DataURL:  imgutil.EncodeDataURL(mimeType, data),
	}, nil
}

// FromReader は r をすべて読み込んでから FromBytes に委譲します。
func (l *Loader) FromReader(name, declaredMIME string, r io.Reader) (domain.UploadedFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.UploadedFile{}, fmt.Errorf("画像の読み込みに失敗しました: %w", err)
	}
	return l.FromBytes(name, declaredMIME, data)
}

// FromURL は URL から画像をダウンロードして UploadedFile に変換します。
func (l *Loader) FromURL(ctx context.Context, rawURL string) (domain.UploadedFile, error) {
	if l.httpClient == nil {
		return domain.UploadedFile{}, fmt.Errorf("URL からの取り込みは設定されていません")
	}
	if safe, err := IsSafeURL(rawURL); err != nil || !safe {
		return domain.UploadedFile{}, fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}

	data, err := l.httpClient.FetchBytes(ctx, rawURL)
	if err != nil {
		slog.WarnContext(ctx, "画像のダウンロードに失敗しました", "url", rawURL, "error", err)
		return domain.UploadedFile{}, fmt.Errorf("画像のダウンロードに失敗しました: %w", err)
	}

	return l.FromBytes(fileNameFromURL(rawURL), "", data)
}

// resolveMIMEType は宣言された MIME タイプを正規化し、画像であることを確認します。
func resolveMIMEType(declared string, data []byte) (string, error) {
	// 汎用のバイナリ型は宣言なしとして扱う
	if declared == "application/octet-stream" {
		declared = ""
	}
	if declared != "" {
		mediaType, _, err := mime.ParseMediaType(declared)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotImage, declared)
		}
		if !strings.HasPrefix(mediaType, "image/") {
			return "", fmt.Errorf("%w: %s", ErrNotImage, mediaType)
		}
		return mediaType, nil
	}

	detected := http.DetectContentType(data)
	if !strings.HasPrefix(detected, "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, detected)
	}
	return detected, nil
}

func fileNameFromURL(rawURL string) string {
	u := rawURL
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	name := path.Base(u)
	if name == "." || name == "/" || name == "" {
		return "image"
	}
	return name
}
