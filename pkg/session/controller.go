package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shouni/gemini-graffiti-kit/pkg/domain"
	"github.com/shouni/gemini-graffiti-kit/pkg/generator"
	"github.com/shouni/gemini-graffiti-kit/pkg/imgutil"
)

var (
	// ErrNoUpload は画像がアップロードされていない状態で生成を要求した場合のエラーです。
	ErrNoUpload = errors.New("no image has been uploaded")
	// ErrAlreadyGenerating は生成中に再度生成を要求した場合のエラーです。状態は変化しません。
	ErrAlreadyGenerating = errors.New("generation is already in progress")
	// ErrSuperseded は生成中に新しい画像がアップロードされ、結果が破棄された場合のエラーです。
	ErrSuperseded = errors.New("result discarded: upload was replaced during generation")
)

// DownloadFilePrefix はダウンロードファイル名の接頭辞です。
const DownloadFilePrefix = "graffiti-render-"

// Download はダウンロード用に組み立てた生成結果です。
type Download struct {
	FileName string
	MIMEType string
	Data     []byte
}

// Controller は1つのブラウザセッションの生成状態を管理します。
// 状態の変更はミューテックスで直列化し、リモート呼び出しはロックの外で行います。
type Controller struct {
	mu      sync.Mutex
	gen     generator.ImageGenerator
	state   domain.GenerationState
	epoch   uint64 // アップロードのたびに進む
	timeout time.Duration
}

// Option は Controller の設定を変更します。
type Option func(*Controller)

// WithTimeout は1回の生成に許容する時間を設定します。
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// NewController は Idle 状態の Controller を作成します。
func NewController(gen generator.ImageGenerator, opts ...Option) (*Controller, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}
	c := &Controller{gen: gen, state: domain.Idle{}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// State は現在の状態を返します。
func (c *Controller) State() domain.GenerationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View は現在の状態を描画用に平坦化して返します。
func (c *Controller) View() domain.StateView {
	return domain.View(c.State())
}

// Upload は選択された画像で状態を Ready にリセットします。
// 生成中でも受け付けますが、処理中のリクエストは中断しません。
func (c *Controller) Upload(file domain.UploadedFile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, generating := c.state.(domain.Generating); generating {
		slog.Info("生成中に新しい画像が選択されました。処理中の結果は破棄されます", "name", file.Name)
	}
	c.epoch++
	c.state = domain.Ready{Upload: file}
}

// Reset は Succeeded または Failed から、アップロードを保持したまま Ready に戻します。
// それ以外の状態では何もしません。
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch st := c.state.(type) {
	case domain.Succeeded:
		c.state = domain.Ready{Upload: st.Upload}
	case domain.Failed:
		c.state = domain.Ready{Upload: st.Upload}
	}
}

// Generate は生成を同期的に実行し、完了後の状態を確定させます。
// 生成中に呼び出した場合は ErrAlreadyGenerating を返し、状態は変化しません。
func (c *Controller) Generate(ctx context.Context) error {
	upload, epoch, err := c.begin()
	if err != nil {
		return err
	}
	return c.run(ctx, upload, epoch)
}

// Start は状態を Generating に移してから、生成をバックグラウンドで実行します。
// 返されるチャネルは生成が完了すると閉じられます。
func (c *Controller) Start(ctx context.Context) (<-chan struct{}, error) {
	upload, epoch, err := c.begin()
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := c.run(ctx, upload, epoch); err != nil {
			slog.DebugContext(ctx, "バックグラウンド生成が失敗しました", "error", err)
		}
	}()
	return done, nil
}

// Result は生成結果を返します。Succeeded 以外では false です。
func (c *Controller) Result() (domain.RenderedImage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if st, ok := c.state.(domain.Succeeded); ok {
		return st.Result, true
	}
	return domain.RenderedImage{}, false
}

// Download は生成結果をタイムスタンプ付きのファイル名とともに返します。
func (c *Controller) Download(now time.Time) (Download, bool) {
	img, ok := c.Result()
	if !ok {
		return Download{}, false
	}
	return Download{
		FileName: fmt.Sprintf("%s%d%s", DownloadFilePrefix, now.UnixMilli(), extensionFor(img.MIMEType)),
		MIMEType: img.MIMEType,
		Data:     img.Data,
	}, true
}

// begin は Ready / Succeeded / Failed から Generating へ遷移させ、送信するアップロードを確定します。
func (c *Controller) begin() (domain.UploadedFile, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state.(type) {
	case domain.Idle:
		return domain.UploadedFile{}, 0, ErrNoUpload
	case domain.Generating:
		return domain.UploadedFile{}, 0, ErrAlreadyGenerating
	}

	upload, _ := domain.UploadOf(c.state)
	c.state = domain.Generating{Upload: upload}
	return upload, c.epoch, nil
}

func (c *Controller) run(ctx context.Context, upload domain.UploadedFile, epoch uint64) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	next, genErr := c.invoke(ctx, upload)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != epoch {
		slog.InfoContext(ctx, "アップロードが差し替えられたため生成結果を破棄しました", "name", upload.Name)
		return ErrSuperseded
	}
	c.state = next
	return genErr
}

// invoke はアップロードのデータURLからヘッダーを除去して生成器に渡し、次の状態を組み立てます。
func (c *Controller) invoke(ctx context.Context, upload domain.UploadedFile) (domain.GenerationState, error) {
	_, payload, err := imgutil.SplitDataURL(upload.DataURL)
	if err != nil {
		return domain.Failed{Upload: upload, Message: err.Error()}, err
	}

	dataURL, err := c.gen.GenerateGraffiti(ctx, payload, upload.MIMEType)
	if err != nil {
		return domain.Failed{Upload: upload, Message: generator.MessageOf(err)}, err
	}

	mimeType, data, err := imgutil.DecodeDataURL(dataURL)
	if err != nil {
		return domain.Failed{Upload: upload, Message: err.Error()}, err
	}

	return domain.Succeeded{
		Upload: upload,
		Result: domain.RenderedImage{DataURL: dataURL, MIMEType: mimeType, Data: data},
	}, nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}
