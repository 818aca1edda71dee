package generator

import (
	"errors"
	"strings"
)

// GenericFailureMessage はリモートのエラーにメッセージが含まれない場合に使用します。
const GenericFailureMessage = "an error occurred during graffiti generation"

var (
	// ErrNoParts は応答に構造化された結果 (パーツ) が含まれない場合のエラーです。
	ErrNoParts = errors.New("failed to generate content: no parts returned")
	// ErrNoImageData はパーツのいずれにも画像データが含まれない場合のエラーです。
	ErrNoImageData = errors.New("no image data found in the response")
)

// ErrorKind は GenerationError の分類です。
type ErrorKind int

const (
	// KindRemoteCall は通信・認証などサービス呼び出し自体の失敗です。
	KindRemoteCall ErrorKind = iota + 1
	// KindEmptyResponse は応答に結果が含まれない場合です。
	KindEmptyResponse
	// KindNoImageData は結果に画像データが含まれない場合です。
	KindNoImageData
	// KindInvalidInput は送信前の入力が不正な場合です。
	KindInvalidInput
)

func (k ErrorKind) String() string {
	switch k {
	case KindRemoteCall:
		return "remote_call"
	case KindEmptyResponse:
		return "empty_response"
	case KindNoImageData:
		return "no_image_data"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// kindOf はログ出力用にエラーの分類を取り出します。
func kindOf(err error) ErrorKind {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return 0
}

// GenerationError は画像生成の失敗を表します。
// Error() は画面にそのまま表示できるメッセージを返します。
type GenerationError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// newRemoteCallError はサービス側のメッセージをそのまま引き継ぎます。
func newRemoteCallError(err error) *GenerationError {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = GenericFailureMessage
	}
	return &GenerationError{Kind: KindRemoteCall, Message: msg, Err: err}
}

// MessageOf はエラーを画面表示用のメッセージに正規化します。
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) && genErr.Message != "" {
		return genErr.Message
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return GenericFailureMessage
}
