package domain

// Phase は生成状態の種別です。
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseReady
	PhaseGenerating
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseReady:
		return "ready"
	case PhaseGenerating:
		return "generating"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// GenerationState は生成状態のタグ付きバリアントです。
// 実装は Idle, Ready, Generating, Succeeded, Failed の5つに限られ、
// エラーと結果が同時に存在する状態は表現できません。
type GenerationState interface {
	Phase() Phase
	isGenerationState()
}

// Idle はまだ画像がアップロードされていない状態です。
type Idle struct{}

// Ready は画像がアップロード済みで、生成を開始できる状態です。
type Ready struct {
	Upload UploadedFile
}

// Generating は生成リクエストが処理中の状態です。
type Generating struct {
	Upload UploadedFile
}

// Succeeded は生成が完了し、結果画像を保持している状態です。
type Succeeded struct {
	Upload UploadedFile
	Result RenderedImage
}

// Failed は生成が失敗し、エラーメッセージを保持している状態です。
type Failed struct {
	Upload  UploadedFile
	Message string
}

func (Idle) Phase() Phase       { return PhaseIdle }
func (Ready) Phase() Phase      { return PhaseReady }
func (Generating) Phase() Phase { return PhaseGenerating }
func (Succeeded) Phase() Phase  { return PhaseSucceeded }
func (Failed) Phase() Phase     { return PhaseFailed }

func (Idle) isGenerationState()       {}
func (Ready) isGenerationState()      {}
func (Generating) isGenerationState() {}
func (Succeeded) isGenerationState()  {}
func (Failed) isGenerationState()     {}

// UploadOf は状態が保持しているアップロードを返します。Idle の場合は false です。
func UploadOf(s GenerationState) (UploadedFile, bool) {
	switch st := s.(type) {
	case Ready:
		return st.Upload, true
	case Generating:
		return st.Upload, true
	case Succeeded:
		return st.Upload, true
	case Failed:
		return st.Upload, true
	default:
		return UploadedFile{}, false
	}
}

// StateView は画面描画用に状態を平坦化したものです。
// Error と ResultImage が同時に空でない値を持つことはありません。
type StateView struct {
	Phase        Phase
	HasUpload    bool
	Preview      string
	FileName     string
	IsGenerating bool
	Error        string
	ResultImage  string
}

// View は GenerationState を StateView に変換します。
func View(s GenerationState) StateView {
	v := StateView{Phase: PhaseIdle}
	if s == nil {
		return v
	}
	v.Phase = s.Phase()
	if up, ok := UploadOf(s); ok {
		v.HasUpload = true
		v.Preview = up.DataURL
		v.FileName = up.Name
	}
	switch st := s.(type) {
	case Generating:
		v.IsGenerating = true
	case Succeeded:
		v.ResultImage = st.Result.DataURL
	case Failed:
		v.Error = st.Message
	}
	return v
}
