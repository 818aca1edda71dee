package generator

const (
	// DefaultModel は画像生成に使用するモデル名です。
	DefaultModel = "gemini-2.5-flash-image"
	// DefaultAspectRatio は出力画像のアスペクト比のヒントです。
	DefaultAspectRatio = "3:4"
	// DefaultResultMIMEType は応答に MIME タイプが含まれない場合に使用します。
	DefaultResultMIMEType = "image/png"

	ImageCompressionQuality = 75
)

// GraffitiPrompt はアップロードされた形状をレンガ壁のグラフィティとして描画させる固定の指示文です。
const GraffitiPrompt = "Create a photorealistic render of the uploaded letterform as if spray-painted on a weathered red brick wall. " +
	"The structure must exactly match the uploaded image. " +
	"The graffiti should have slightly oversprayed edges, visible drip marks, and worn paint layers. " +
	"The brick wall should be detailed with mortar lines, cracks, dirt, and faded posters or tags around it. " +
	"Add ambient shadows and subtle wall lighting from a nearby urban lamp or natural window. " +
	"Background should feel gritty and authentic, like an alley or industrial zone. " +
	"Follow uploaded shape exactly. Graffiti must appear realistically integrated. No stylization or exaggeration."

// ImageOutput は Core の内部解析結果
type ImageOutput struct {
	Data     []byte
	MimeType string
	UsedSeed int64
}
