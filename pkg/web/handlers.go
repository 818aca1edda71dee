package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shouni/gemini-graffiti-kit/pkg/domain"
	"github.com/shouni/gemini-graffiti-kit/pkg/intake"
	"github.com/shouni/gemini-graffiti-kit/pkg/session"
)

const (
	sessionCookieName = "graffiti_session"
	multipartMemory   = 32 << 20
	refreshSeconds    = 2
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Server はブラウザからの操作をセッションの Controller に中継します。
type Server struct {
	store  *SessionStore
	loader *intake.Loader
	now    func() time.Time
}

// NewServer は Server を初期化します。
func NewServer(store *SessionStore, loader *intake.Loader) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if loader == nil {
		return nil, fmt.Errorf("intake loader is required")
	}
	return &Server{store: store, loader: loader, now: time.Now}, nil
}

type pageData struct {
	View           domain.StateView
	Preview        template.URL
	Result         template.URL
	Notice         string
	RefreshSeconds int
}

// Health は死活監視用のエンドポイントです。
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// Index は現在の状態から画面を描画します。
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.session(w, r)
	if !ok {
		return
	}
	s.render(w, r, http.StatusOK, ctrl.View(), "")
}

// Upload はファイル、または URL で指定された画像を取り込み、状態を Ready にします。
func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.session(w, r)
	if !ok {
		return
	}

	upload, err := s.readUpload(r)
	if err != nil {
		slog.WarnContext(r.Context(), "画像の取り込みに失敗しました", "error", err)
		s.render(w, r, http.StatusBadRequest, ctrl.View(), err.Error())
		return
	}

	ctrl.Upload(upload)
	slog.InfoContext(r.Context(), "画像を取り込みました", "name", upload.Name, "mime_type", upload.MIMEType, "size", upload.Size)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Generate は生成をバックグラウンドで開始します。生成中の場合は何もしません。
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.session(w, r)
	if !ok {
		return
	}

	// リクエストの終了で生成を中断しない
	if _, err := ctrl.Start(context.WithoutCancel(r.Context())); err != nil {
		slog.DebugContext(r.Context(), "生成を開始しませんでした", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Reset は結果とエラーをクリアし、アップロードを保持したまま Ready に戻します。
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.session(w, r)
	if !ok {
		return
	}
	ctrl.Reset()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Download は生成結果を添付ファイルとして返します。
func (s *Server) Download(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.session(w, r)
	if !ok {
		return
	}

	dl, ok := ctrl.Download(s.now())
	if !ok {
		http.Error(w, "no rendered image", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", dl.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dl.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(dl.Data)))
	_, _ = w.Write(dl.Data)
}

type stateResponse struct {
	Phase        string  `json:"phase"`
	IsGenerating bool    `json:"isGenerating"`
	Error        *string `json:"error"`
	ResultImage  *string `json:"resultImage"`
}

// State は現在の状態を JSON で返します。
func (s *Server) State(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.session(w, r)
	if !ok {
		return
	}

	v := ctrl.View()
	resp := stateResponse{Phase: v.Phase.String(), IsGenerating: v.IsGenerating}
	if v.Error != "" {
		resp.Error = &v.Error
	}
	if v.ResultImage != "" {
		resp.ResultImage = &v.ResultImage
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.ErrorContext(r.Context(), "状態のエンコードに失敗しました", "error", err)
	}
}

func (s *Server) readUpload(r *http.Request) (domain.UploadedFile, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return domain.UploadedFile{}, fmt.Errorf("フォームの解析に失敗しました: %w", err)
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		return s.loader.FromReader(header.Filename, header.Header.Get("Content-Type"), file)
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		return domain.UploadedFile{}, fmt.Errorf("ファイルの読み込みに失敗しました: %w", err)
	}

	if rawURL := strings.TrimSpace(r.FormValue("url")); rawURL != "" {
		return s.loader.FromURL(r.Context(), rawURL)
	}
	return domain.UploadedFile{}, fmt.Errorf("画像が選択されていません")
}

// session はクッキーからセッションを取得し、なければ作成します。
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Controller, bool) {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		if ctrl, ok := s.store.Get(c.Value); ok {
			return ctrl, true
		}
	}

	id, ctrl, err := s.store.Create()
	if err != nil {
		slog.ErrorContext(r.Context(), "セッションの作成に失敗しました", "error", err)
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return nil, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return ctrl, true
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, v domain.StateView, notice string) {
	data := pageData{
		View: v,
		// 自前で組み立てたデータURLのみを信頼済みとして扱う
		Preview: template.URL(v.Preview),
		Result:  template.URL(v.ResultImage),
		Notice:  notice,
	}
	if v.IsGenerating {
		data.RefreshSeconds = refreshSeconds
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		slog.ErrorContext(r.Context(), "画面の描画に失敗しました", "error", err)
	}
}
