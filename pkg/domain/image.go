package domain

// UploadedFile はユーザーが選択した画像と、そのデータURL表現です。
// 新しい選択があると丸ごと置き換えられ、部分的に変更されることはありません。
type UploadedFile struct {
	Name     string
	MIMEType string
	Size     int64
	Data     []byte
	DataURL  string // プレビューと送信ペイロードの両方に使う
}

// GenerationRequest は単一の画像変換要求です。
type GenerationRequest struct {
	Prompt       string
	SystemPrompt string
	AspectRatio  string
	ImageBase64  string // データURLのヘッダーを除いた部分
	MIMEType     string
	Seed         *int64
}

// ImageResponse は生成された画像データとそのメタデータです。
type ImageResponse struct {
	Data     []byte
	MimeType string
	UsedSeed int64 // 戻り値は情報欠落を防ぐため int64
}

// RenderedImage は表示・ダウンロード用に保持する生成結果です。
type RenderedImage struct {
	DataURL  string
	MIMEType string
	Data     []byte
}
